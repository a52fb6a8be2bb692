package domain

import (
	"time"

	"github.com/google/uuid"
)

type PackageStatus string

const (
	PackagePending  PackageStatus = "PENDING"
	PackageApproved PackageStatus = "APPROVED"
	PackageRejected PackageStatus = "REJECTED"
	PackageActive   PackageStatus = "ACTIVE"
	PackageInactive PackageStatus = "INACTIVE"
	PackageExpired  PackageStatus = "EXPIRED"
)

// sweepableStatuses are the states the expiry sweeper moves to EXPIRED once
// the start date has passed. REJECTED and EXPIRED packages are exempt.
var sweepableStatuses = []PackageStatus{
	PackageActive, PackagePending, PackageApproved, PackageInactive,
}

func SweepableStatuses() []PackageStatus {
	out := make([]PackageStatus, len(sweepableStatuses))
	copy(out, sweepableStatuses)
	return out
}

type Package struct {
	ID                 uuid.UUID
	VendorID           uuid.UUID
	Title              string
	Description        string
	Category           string
	Destination        string
	Days               int
	StartDate          time.Time
	Price              float64
	TransportationMode string
	TotalSlots         int
	AvailableSlots     int
	Status             PackageStatus
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (p *Package) IsBookable() bool {
	return p.Status == PackageActive
}

// DestinationCount is one row of the trending-destinations aggregation.
type DestinationCount struct {
	Destination string
	Bookings    int
}
