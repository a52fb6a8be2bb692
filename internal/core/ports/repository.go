package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tripnest/server/internal/core/domain"
)

type PackageRepository interface {
	Create(ctx context.Context, pkg *domain.Package) error
	GetByID(ctx context.Context, packageID uuid.UUID) (*domain.Package, error)
	// AdjustSlots applies delta to available_slots as a single conditional
	// update bounded by [0, total_slots]. It fails with a CONFLICT error when
	// the bound would be violated and NOT_FOUND when the package is missing.
	AdjustSlots(ctx context.Context, packageID uuid.UUID, delta int) error
	UpdateStatus(ctx context.Context, packageID uuid.UUID, status domain.PackageStatus) error
	Delete(ctx context.Context, packageID uuid.UUID) error
	ListByVendorStatus(ctx context.Context, vendorID uuid.UUID, status domain.PackageStatus) ([]domain.Package, error)
	ListUpcoming(ctx context.Context, vendorID *uuid.UUID, from, to time.Time, page, limit int) ([]domain.Package, error)
	// FindOverdue returns packages whose start date precedes now and whose
	// status is still sweepable.
	FindOverdue(ctx context.Context, now time.Time) ([]domain.Package, error)
	BulkExpire(ctx context.Context, packageIDs []uuid.UUID) (int64, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status domain.BookingStatus) error
	SetPaymentDetails(ctx context.Context, bookingID uuid.UUID, payment domain.PaymentDetails) error
	Delete(ctx context.Context, bookingID uuid.UUID) error
	ExistsActive(ctx context.Context, userID, packageID uuid.UUID) (bool, error)
	BulkExpireByPackages(ctx context.Context, packageIDs []uuid.UUID) (int64, error)
	DeleteByPackage(ctx context.Context, packageID uuid.UUID) (int64, error)
	TrendingDestinations(ctx context.Context, limit int) ([]domain.DestinationCount, error)
}

type ConversationRepository interface {
	GetByID(ctx context.Context, conversationID uuid.UUID) (*domain.Conversation, error)
	// CreateIfAbsent inserts the conversation unless one already exists for
	// its normalized participant pair, and returns the winning row either way.
	CreateIfAbsent(ctx context.Context, conv *domain.Conversation) (*domain.Conversation, error)
	ListByParticipant(ctx context.Context, participantID uuid.UUID) ([]domain.Conversation, error)
	UpdateLastMessage(ctx context.Context, conversationID uuid.UUID, snapshot domain.MessageSnapshot) error
}

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]domain.Message, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	// MarkRead reports false when the notification id is unknown.
	MarkRead(ctx context.Context, notificationID uuid.UUID) (bool, error)
	MarkAllRead(ctx context.Context, targetID uuid.UUID) (int64, error)
	CountUnread(ctx context.Context, targetID uuid.UUID) (int, error)
	ListUnread(ctx context.Context, targetID uuid.UUID) ([]domain.Notification, error)
}

// ParticipantRepository resolves a conversation participant id against the
// user and vendor profiles.
type ParticipantRepository interface {
	Resolve(ctx context.Context, participantID uuid.UUID) (*domain.Participant, error)
}

// Dispatcher sends title/body/link notifications; delivery is best-effort
// relative to the state change that triggered it.
type Dispatcher interface {
	Notify(ctx context.Context, title, body string, targets []uuid.UUID, navLink string) error
	NotifyAdmins(ctx context.Context, title, body, navLink string) error
}

// EventPublisher emits lifecycle events to the message broker. A nil-safe
// no-op implementation is acceptable; publish failures never abort the
// triggering state change.
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}
