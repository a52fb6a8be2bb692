package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingPending  BookingStatus = "PENDING"
	BookingApproved BookingStatus = "APPROVED"
	BookingRejected BookingStatus = "REJECTED"
	BookingExpired  BookingStatus = "EXPIRED"
)

// activeStatuses block a second booking for the same (user, package) pair.
var activeStatuses = []BookingStatus{BookingPending, BookingApproved}

func ActiveBookingStatuses() []BookingStatus {
	out := make([]BookingStatus, len(activeStatuses))
	copy(out, activeStatuses)
	return out
}

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "UNPAID"
	PaymentCaptured PaymentStatus = "CAPTURED"
	PaymentFailed   PaymentStatus = "FAILED"
)

type PaymentDetails struct {
	Status  PaymentStatus
	OrderID string
}

type Booking struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	PackageID       uuid.UUID
	VendorID        uuid.UUID
	NumberOfSeats   int
	TotalAmount     float64
	SpecialRequests string
	Status          BookingStatus
	Payment         PaymentDetails
	BookingDate     time.Time
}

// CanTransitionTo encodes the lifecycle: pending may be decided by the
// vendor, any non-terminal state may be expired by the sweeper. EXPIRED is
// terminal.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch next {
	case BookingApproved, BookingRejected:
		return b.Status == BookingPending
	case BookingExpired:
		return b.Status != BookingExpired
	default:
		return false
	}
}
