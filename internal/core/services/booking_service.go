package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/tripnest/server/internal/core/domain"
	"github.com/tripnest/server/internal/core/ports"
	"github.com/tripnest/server/internal/platform/events"
	"github.com/tripnest/server/pkg/apperrors"
)

type CreateBookingRequest struct {
	UserID          string  `json:"user_id"`
	PackageID       string  `json:"package_id"`
	Seats           int     `json:"seats"`
	SpecialRequests string  `json:"special_requests"`
	TotalAmount     float64 `json:"total_amount"`
}

type ExpiryResult struct {
	PackagesUpdated int64 `json:"packages_updated"`
	BookingsUpdated int64 `json:"bookings_updated"`
}

type BookingService struct {
	bookingRepo ports.BookingRepository
	packageRepo ports.PackageRepository
	dispatcher  ports.Dispatcher
	publisher   ports.EventPublisher
	cache       *redis.Client
	logger      *slog.Logger
}

func NewBookingService(
	bookingRepo ports.BookingRepository,
	packageRepo ports.PackageRepository,
	dispatcher ports.Dispatcher,
	publisher ports.EventPublisher,
	cache *redis.Client,
	logger *slog.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		packageRepo: packageRepo,
		dispatcher:  dispatcher,
		publisher:   publisher,
		cache:       cache,
		logger:      logger,
	}
}

// CreateBooking registers a pending booking. Capacity is not checked or
// reserved here; it is enforced by the atomic decrement at approval time.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, apperrors.InvalidArg("invalid user id")
	}

	packageID, err := uuid.Parse(req.PackageID)
	if err != nil {
		return nil, apperrors.InvalidArg("invalid package id")
	}

	if req.Seats <= 0 {
		return nil, apperrors.InvalidArg("seat count must be positive")
	}
	if req.TotalAmount < 0 {
		return nil, apperrors.InvalidArg("total amount must not be negative")
	}

	exists, err := s.bookingRepo.ExistsActive(ctx, userID, packageID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflict("an active booking already exists for this package")
	}

	pkg, err := s.packageRepo.GetByID(ctx, packageID)
	if err != nil {
		return nil, err
	}
	if !pkg.IsBookable() {
		return nil, apperrors.Conflict("package is not open for booking")
	}

	booking := &domain.Booking{
		ID:              uuid.New(),
		UserID:          userID,
		PackageID:       packageID,
		VendorID:        pkg.VendorID,
		NumberOfSeats:   req.Seats,
		TotalAmount:     req.TotalAmount,
		SpecialRequests: req.SpecialRequests,
		Status:          domain.BookingPending,
		Payment:         domain.PaymentDetails{Status: domain.PaymentUnpaid},
		BookingDate:     nowUTC(),
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.dispatch(ctx, "New booking request",
		fmt.Sprintf("You have a new booking request for %s (%d seats).", pkg.Title, req.Seats),
		[]uuid.UUID{pkg.VendorID},
		"/vendor/bookings")

	s.publish(ctx, events.RKBookingCreated, events.BookingEvent{
		BookingID: booking.ID.String(),
		UserID:    userID.String(),
		PackageID: packageID.String(),
		VendorID:  pkg.VendorID.String(),
		Seats:     req.Seats,
		Amount:    req.TotalAmount,
	})

	return booking, nil
}

// ApproveBooking moves a pending booking to approved and decrements the
// package inventory. The decrement is a single conditional update; it fails
// with CONFLICT before slots can go negative.
func (s *BookingService) ApproveBooking(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.CanTransitionTo(domain.BookingApproved) {
		return nil, apperrors.Conflict("booking is not pending")
	}

	if err := s.packageRepo.AdjustSlots(ctx, booking.PackageID, -booking.NumberOfSeats); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.BookingApproved); err != nil {
		// Give the seats back; the booking never reached approved.
		if restoreErr := s.packageRepo.AdjustSlots(ctx, booking.PackageID, booking.NumberOfSeats); restoreErr != nil {
			s.logger.Error("failed to restore slots after status update failure",
				"booking", bookingID, "err", restoreErr)
		}
		return nil, err
	}

	s.invalidateSlotsCache(ctx, booking.PackageID)

	booking.Status = domain.BookingApproved

	s.dispatch(ctx, "Booking approved",
		"Your booking request has been approved by the vendor.",
		[]uuid.UUID{booking.UserID},
		"/bookings")

	s.publish(ctx, events.RKBookingApproved, events.BookingEvent{
		BookingID: booking.ID.String(),
		UserID:    booking.UserID.String(),
		PackageID: booking.PackageID.String(),
		VendorID:  booking.VendorID.String(),
		Seats:     booking.NumberOfSeats,
	})

	return booking, nil
}

func (s *BookingService) RejectBooking(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.CanTransitionTo(domain.BookingRejected) {
		return nil, apperrors.Conflict("booking is not pending")
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.BookingRejected); err != nil {
		return nil, err
	}

	booking.Status = domain.BookingRejected

	s.dispatch(ctx, "Booking rejected",
		"Your booking request has been rejected by the vendor.",
		[]uuid.UUID{booking.UserID},
		"/bookings")

	s.publish(ctx, events.RKBookingRejected, events.BookingEvent{
		BookingID: booking.ID.String(),
		UserID:    booking.UserID.String(),
		PackageID: booking.PackageID.String(),
		VendorID:  booking.VendorID.String(),
	})

	return booking, nil
}

// CancelBooking deletes the booking. EXPIRED is terminal and cannot be
// cancelled. Seats are restored only when the booking had actually been
// approved; pending and rejected bookings never held inventory.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID uuid.UUID) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if booking.Status == domain.BookingExpired {
		return apperrors.Conflict("booking has expired")
	}

	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		return err
	}

	if booking.Status == domain.BookingApproved {
		if err := s.packageRepo.AdjustSlots(ctx, booking.PackageID, booking.NumberOfSeats); err != nil {
			s.logger.Error("failed to restore slots on cancellation",
				"booking", bookingID, "package", booking.PackageID, "err", err)
		}
		s.invalidateSlotsCache(ctx, booking.PackageID)
	}

	s.publish(ctx, events.RKBookingCancelled, events.BookingEvent{
		BookingID: booking.ID.String(),
		UserID:    booking.UserID.String(),
		PackageID: booking.PackageID.String(),
		VendorID:  booking.VendorID.String(),
		Seats:     booking.NumberOfSeats,
	})

	return nil
}

// RecordPayment stores the payment gateway outcome on the booking. It does
// not move the booking through its state machine.
func (s *BookingService) RecordPayment(ctx context.Context, bookingID uuid.UUID, orderID string, status domain.PaymentStatus) (*domain.Booking, error) {
	if orderID == "" {
		return nil, apperrors.InvalidArg("order id is required")
	}

	switch status {
	case domain.PaymentCaptured, domain.PaymentFailed:
	default:
		return nil, apperrors.InvalidArg("unsupported payment status")
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	payment := domain.PaymentDetails{Status: status, OrderID: orderID}
	if err := s.bookingRepo.SetPaymentDetails(ctx, bookingID, payment); err != nil {
		return nil, err
	}

	booking.Payment = payment

	if status == domain.PaymentCaptured {
		s.publish(ctx, events.RKPaymentCaptured, events.PaymentEvent{
			BookingID: booking.ID.String(),
			OrderID:   orderID,
			Status:    string(status),
		})
	}

	return booking, nil
}

func (s *BookingService) GetBooking(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	return s.bookingRepo.GetByID(ctx, bookingID)
}

func (s *BookingService) TrendingDestinations(ctx context.Context, limit int) ([]domain.DestinationCount, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.bookingRepo.TrendingDestinations(ctx, limit)
}

// dispatch sends a notification fire-and-forget: failures are logged, never
// propagated into the booking state change that triggered them.
func (s *BookingService) dispatch(ctx context.Context, title, body string, targets []uuid.UUID, navLink string) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Notify(ctx, title, body, targets, navLink); err != nil {
		s.logger.Error("notification dispatch failed", "title", title, "err", err)
	}
}

func (s *BookingService) publish(ctx context.Context, key string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishJSON(ctx, key, payload); err != nil {
		s.logger.Error("event publish failed", "key", key, "err", err)
	}
}

func slotsCacheKey(packageID uuid.UUID) string {
	return fmt.Sprintf("package:%s:slots", packageID)
}

func (s *BookingService) invalidateSlotsCache(ctx context.Context, packageID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, slotsCacheKey(packageID)).Err(); err != nil {
		s.logger.Error("failed to invalidate slots cache", "package", packageID, "err", err)
	}
}
