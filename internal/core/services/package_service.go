package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/tripnest/server/internal/core/domain"
	"github.com/tripnest/server/internal/core/ports"
	"github.com/tripnest/server/pkg/apperrors"
)

const (
	upcomingWindow = 10 * 24 * time.Hour
	slotsCacheTTL  = 30 * time.Second
)

// PackageService covers the package side of the marketplace: vendor
// submission, admin moderation, the vendor activation toggle and listings.
// Seat inventory itself is only ever mutated through the booking lifecycle.
type PackageService struct {
	packageRepo ports.PackageRepository
	bookingRepo ports.BookingRepository
	dispatcher  ports.Dispatcher
	cache       *redis.Client
	logger      *slog.Logger
}

func NewPackageService(
	packageRepo ports.PackageRepository,
	bookingRepo ports.BookingRepository,
	dispatcher ports.Dispatcher,
	cache *redis.Client,
	logger *slog.Logger,
) *PackageService {
	return &PackageService{
		packageRepo: packageRepo,
		bookingRepo: bookingRepo,
		dispatcher:  dispatcher,
		cache:       cache,
		logger:      logger,
	}
}

type CreatePackageRequest struct {
	VendorID           string  `json:"vendor_id"`
	Title              string  `json:"title"`
	Description        string  `json:"description"`
	Category           string  `json:"category"`
	Destination        string  `json:"destination"`
	Days               int     `json:"days"`
	StartDate          string  `json:"start_date"`
	Price              float64 `json:"price"`
	TransportationMode string  `json:"transportation_mode"`
	Seats              int     `json:"seats"`
}

// CreatePackage registers a vendor submission in PENDING state and alerts the
// moderation team. Available slots start out equal to total slots.
func (s *PackageService) CreatePackage(ctx context.Context, req CreatePackageRequest) (*domain.Package, error) {
	vendorID, err := uuid.Parse(req.VendorID)
	if err != nil {
		return nil, apperrors.InvalidArg("invalid vendor id")
	}
	if req.Title == "" {
		return nil, apperrors.InvalidArg("title is required")
	}
	if req.Seats <= 0 {
		return nil, apperrors.InvalidArg("seat count must be positive")
	}

	startDate, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		return nil, apperrors.InvalidArg("invalid start date")
	}

	now := nowUTC()
	pkg := &domain.Package{
		ID:                 uuid.New(),
		VendorID:           vendorID,
		Title:              req.Title,
		Description:        req.Description,
		Category:           req.Category,
		Destination:        req.Destination,
		Days:               req.Days,
		StartDate:          startDate,
		Price:              req.Price,
		TransportationMode: req.TransportationMode,
		TotalSlots:         req.Seats,
		AvailableSlots:     req.Seats,
		Status:             domain.PackagePending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.packageRepo.Create(ctx, pkg); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		if err := s.dispatcher.NotifyAdmins(ctx, "New package submitted",
			fmt.Sprintf("%s is waiting for moderation.", pkg.Title),
			"/admin/packages/pending"); err != nil {
			s.logger.Error("admin notification failed", "package", pkg.ID, "err", err)
		}
	}

	return pkg, nil
}

// ApprovePackage moves a pending submission to APPROVED and tells the vendor.
func (s *PackageService) ApprovePackage(ctx context.Context, packageID uuid.UUID) error {
	return s.moderate(ctx, packageID, domain.PackageApproved,
		"Package approved", "Your package has been approved and can now be activated.")
}

func (s *PackageService) RejectPackage(ctx context.Context, packageID uuid.UUID) error {
	return s.moderate(ctx, packageID, domain.PackageRejected,
		"Package rejected", "Your package submission has been rejected.")
}

func (s *PackageService) moderate(ctx context.Context, packageID uuid.UUID, status domain.PackageStatus, title, body string) error {
	pkg, err := s.packageRepo.GetByID(ctx, packageID)
	if err != nil {
		return err
	}

	if pkg.Status != domain.PackagePending {
		return apperrors.Conflict("package is not pending moderation")
	}

	if err := s.packageRepo.UpdateStatus(ctx, packageID, status); err != nil {
		return err
	}

	if s.dispatcher != nil {
		if err := s.dispatcher.Notify(ctx, title,
			fmt.Sprintf("%s: %s", pkg.Title, body),
			[]uuid.UUID{pkg.VendorID}, "/vendor/packages"); err != nil {
			s.logger.Error("vendor notification failed", "package", packageID, "err", err)
		}
	}

	return nil
}

// ActivatePackage / DeactivatePackage are the vendor's visibility toggle.
// They apply only between the APPROVED/ACTIVE/INACTIVE states; expired and
// unmoderated packages cannot be toggled.
func (s *PackageService) ActivatePackage(ctx context.Context, packageID uuid.UUID) error {
	return s.toggle(ctx, packageID, domain.PackageActive)
}

func (s *PackageService) DeactivatePackage(ctx context.Context, packageID uuid.UUID) error {
	return s.toggle(ctx, packageID, domain.PackageInactive)
}

func (s *PackageService) toggle(ctx context.Context, packageID uuid.UUID, status domain.PackageStatus) error {
	pkg, err := s.packageRepo.GetByID(ctx, packageID)
	if err != nil {
		return err
	}

	switch pkg.Status {
	case domain.PackageApproved, domain.PackageActive, domain.PackageInactive:
	default:
		return apperrors.Conflict("package cannot be toggled in its current state")
	}

	return s.packageRepo.UpdateStatus(ctx, packageID, status)
}

// DeletePackage removes the package and cascades to its bookings.
func (s *PackageService) DeletePackage(ctx context.Context, packageID uuid.UUID) error {
	if _, err := s.packageRepo.GetByID(ctx, packageID); err != nil {
		return err
	}

	deleted, err := s.bookingRepo.DeleteByPackage(ctx, packageID)
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.logger.Info("cascaded booking deletion", "package", packageID, "bookings", deleted)
	}

	if err := s.packageRepo.Delete(ctx, packageID); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Del(ctx, slotsCacheKey(packageID)).Err(); err != nil {
			s.logger.Error("failed to drop slots cache", "package", packageID, "err", err)
		}
	}

	return nil
}

func (s *PackageService) GetPackage(ctx context.Context, packageID uuid.UUID) (*domain.Package, error) {
	return s.packageRepo.GetByID(ctx, packageID)
}

func (s *PackageService) ListByVendorStatus(ctx context.Context, vendorID uuid.UUID, status domain.PackageStatus) ([]domain.Package, error) {
	return s.packageRepo.ListByVendorStatus(ctx, vendorID, status)
}

// UpcomingPackages lists active packages starting within the next ten days.
func (s *PackageService) UpcomingPackages(ctx context.Context, vendorID *uuid.UUID, page, limit int) ([]domain.Package, error) {
	if limit <= 0 {
		limit = 20
	}
	now := nowUTC()
	return s.packageRepo.ListUpcoming(ctx, vendorID, now, now.Add(upcomingWindow), page, limit)
}

// AvailableSlots reads the package's remaining capacity through a short-lived
// cache. Booking mutations invalidate the key, so a hit is at worst
// slotsCacheTTL stale after an uncached writer.
func (s *PackageService) AvailableSlots(ctx context.Context, packageID uuid.UUID) (int, error) {
	key := slotsCacheKey(packageID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key).Result(); err == nil {
			if slots, convErr := strconv.Atoi(cached); convErr == nil {
				return slots, nil
			}
		}
	}

	pkg, err := s.packageRepo.GetByID(ctx, packageID)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, strconv.Itoa(pkg.AvailableSlots), slotsCacheTTL).Err(); err != nil {
			s.logger.Error("failed to cache slots", "package", packageID, "err", err)
		}
	}

	return pkg.AvailableSlots, nil
}
