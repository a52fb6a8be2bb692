package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/tripnest/server/internal/core/domain"
	"github.com/tripnest/server/pkg/apperrors"
)

type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	query := `
	INSERT INTO notifications (id, title, body, target_ids, is_read, nav_link, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		n.ID, n.Title, n.Body, pq.Array(uuidStrings(n.TargetIDs)),
		n.IsRead, n.NavLink, n.CreatedAt)
	if err != nil {
		return apperrors.Upstream("failed to insert notification", err)
	}

	return nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, notificationID uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1`, notificationID)
	if err != nil {
		return false, apperrors.Upstream("failed to mark notification read", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Upstream("failed to mark notification read", err)
	}

	return rowsAffected > 0, nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, targetID uuid.UUID) (int64, error) {
	query := `
	UPDATE notifications
	SET is_read = TRUE
	WHERE $1 = ANY(target_ids) AND is_read = FALSE
	`

	result, err := r.db.ExecContext(ctx, query, targetID.String())
	if err != nil {
		return 0, apperrors.Upstream("failed to mark notifications read", err)
	}

	return result.RowsAffected()
}

func (r *NotificationRepository) CountUnread(ctx context.Context, targetID uuid.UUID) (int, error) {
	query := `
	SELECT COUNT(*) FROM notifications
	WHERE $1 = ANY(target_ids) AND is_read = FALSE
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query, targetID.String()).Scan(&count); err != nil {
		return 0, apperrors.Upstream("failed to count notifications", err)
	}

	return count, nil
}

func (r *NotificationRepository) ListUnread(ctx context.Context, targetID uuid.UUID) ([]domain.Notification, error) {
	query := `
	SELECT id, title, body, target_ids, is_read, nav_link, created_at
	FROM notifications
	WHERE $1 = ANY(target_ids) AND is_read = FALSE
	ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, targetID.String())
	if err != nil {
		return nil, apperrors.Upstream("failed to list notifications", err)
	}

	defer rows.Close()

	var out []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var targets pq.StringArray
		if err := rows.Scan(&n.ID, &n.Title, &n.Body, &targets, &n.IsRead, &n.NavLink, &n.CreatedAt); err != nil {
			return nil, apperrors.Upstream("failed to scan notification row", err)
		}
		for _, t := range targets {
			id, err := uuid.Parse(t)
			if err != nil {
				return nil, apperrors.Upstream("corrupt target id in notification", err)
			}
			n.TargetIDs = append(n.TargetIDs, id)
		}
		out = append(out, n)
	}

	return out, rows.Err()
}
