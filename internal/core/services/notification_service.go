package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tripnest/server/internal/core/domain"
	"github.com/tripnest/server/internal/core/ports"
	"github.com/tripnest/server/pkg/apperrors"
)

// NotificationService fans a title/body/link out to one or more recipients as
// a single record. Read-state is per record: one target marking it read marks
// it read for every target on the record.
type NotificationService struct {
	repo     ports.NotificationRepository
	adminIDs []string
	logger   *slog.Logger
}

func NewNotificationService(repo ports.NotificationRepository, adminIDs []string, logger *slog.Logger) *NotificationService {
	return &NotificationService{
		repo:     repo,
		adminIDs: adminIDs,
		logger:   logger,
	}
}

func (s *NotificationService) Notify(ctx context.Context, title, body string, targets []uuid.UUID, navLink string) error {
	if title == "" {
		return apperrors.InvalidArg("notification title is required")
	}
	if len(targets) == 0 {
		return apperrors.InvalidArg("notification needs at least one target")
	}
	for _, id := range targets {
		if id == uuid.Nil {
			return apperrors.InvalidArg("invalid target id")
		}
	}

	n := &domain.Notification{
		ID:        uuid.New(),
		Title:     title,
		Body:      body,
		TargetIDs: targets,
		NavLink:   navLink,
		CreatedAt: nowUTC(),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	return nil
}

func (s *NotificationService) NotifyAdmins(ctx context.Context, title, body, navLink string) error {
	if len(s.adminIDs) == 0 {
		return apperrors.Misconfigured("no admin ids configured")
	}

	targets := make([]uuid.UUID, 0, len(s.adminIDs))
	for _, raw := range s.adminIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return apperrors.Misconfigured("invalid admin id: " + raw)
		}
		targets = append(targets, id)
	}

	return s.Notify(ctx, title, body, targets, navLink)
}

// MarkRead is idempotent: marking an already-read notification succeeds.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID uuid.UUID) error {
	found, err := s.repo.MarkRead(ctx, notificationID)
	if err != nil {
		return err
	}
	if !found {
		return apperrors.NotFound("notification not found")
	}
	return nil
}

// MarkAllRead treats zero matching notifications as a valid success.
func (s *NotificationService) MarkAllRead(ctx context.Context, targetID uuid.UUID) error {
	updated, err := s.repo.MarkAllRead(ctx, targetID)
	if err != nil {
		return err
	}

	s.logger.Debug("marked notifications read", "target", targetID, "updated", updated)
	return nil
}

func (s *NotificationService) CountUnread(ctx context.Context, targetID uuid.UUID) (int, error) {
	return s.repo.CountUnread(ctx, targetID)
}

func (s *NotificationService) ListUnread(ctx context.Context, targetID uuid.UUID) ([]domain.Notification, error) {
	return s.repo.ListUnread(ctx, targetID)
}
