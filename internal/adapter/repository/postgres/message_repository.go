package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/tripnest/server/internal/core/domain"
	"github.com/tripnest/server/pkg/apperrors"
)

type MessageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	query := `
	INSERT INTO messages (id, conversation_id, sender_id, content, created_at)
	VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		msg.ID, msg.ConversationID, msg.SenderID, msg.Content, msg.Timestamp)
	if err != nil {
		return apperrors.Upstream("failed to insert message", err)
	}

	return nil
}

func (r *MessageRepository) ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]domain.Message, error) {
	query := `
	SELECT id, conversation_id, sender_id, content, created_at
	FROM messages
	WHERE conversation_id = $1
	ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, conversationID)
	if err != nil {
		return nil, apperrors.Upstream("failed to list messages", err)
	}

	defer rows.Close()

	var out []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Content, &m.Timestamp); err != nil {
			return nil, apperrors.Upstream("failed to scan message row", err)
		}
		out = append(out, m)
	}

	return out, rows.Err()
}
