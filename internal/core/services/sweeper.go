package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tripnest/server/internal/platform/events"
)

// RunExpirySweeper moves packages past their start date (and their bookings)
// into EXPIRED on a fixed interval until ctx is cancelled.
func (s *BookingService) RunExpirySweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("Expiry sweeper started: checking overdue packages every %s...", interval)

	for {
		select {
		case <-ctx.Done():
			log.Println("Expiry sweeper stopped.")
			return
		case <-ticker.C:
			result, err := s.ExpireOverduePackages(ctx, time.Now().UTC())
			if err != nil {
				log.Printf("Error expiring overdue packages: %v", err)
				continue
			}
			if result.PackagesUpdated > 0 {
				log.Printf("Expired %d packages and %d bookings.",
					result.PackagesUpdated, result.BookingsUpdated)
			}
		}
	}
}

// ExpireOverduePackages scans for packages whose start date precedes now,
// bulk-expires them and their bookings by the id list captured at scan time,
// and sends each affected vendor one aggregated notification. Running it
// again immediately is a no-op: expired packages are exempt from the scan.
func (s *BookingService) ExpireOverduePackages(ctx context.Context, now time.Time) (ExpiryResult, error) {
	overdue, err := s.packageRepo.FindOverdue(ctx, now)
	if err != nil {
		return ExpiryResult{}, err
	}

	if len(overdue) == 0 {
		return ExpiryResult{}, nil
	}

	ids := make([]uuid.UUID, 0, len(overdue))
	byVendor := make(map[uuid.UUID][]string)
	for _, pkg := range overdue {
		ids = append(ids, pkg.ID)
		byVendor[pkg.VendorID] = append(byVendor[pkg.VendorID], pkg.Title)
	}

	packagesUpdated, err := s.packageRepo.BulkExpire(ctx, ids)
	if err != nil {
		return ExpiryResult{}, err
	}

	bookingsUpdated, err := s.bookingRepo.BulkExpireByPackages(ctx, ids)
	if err != nil {
		return ExpiryResult{PackagesUpdated: packagesUpdated}, err
	}

	for vendorID, titles := range byVendor {
		s.dispatch(ctx, "Packages expired",
			fmt.Sprintf("The following packages passed their start date and were expired: %s.",
				strings.Join(titles, ", ")),
			[]uuid.UUID{vendorID},
			"/vendor/packages")
	}

	s.publish(ctx, events.RKBookingExpired, events.ExpiryEvent{
		PackageIDs: uuidsToStrings(ids),
		Bookings:   bookingsUpdated,
	})

	return ExpiryResult{
		PackagesUpdated: packagesUpdated,
		BookingsUpdated: bookingsUpdated,
	}, nil
}

func uuidsToStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
