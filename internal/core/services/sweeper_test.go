package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tripnest/server/internal/core/domain"
	"github.com/tripnest/server/internal/core/ports/mocks"
	"github.com/tripnest/server/internal/core/services"
)

func TestExpireOverduePackages_ExpiresPackagesAndBookings(t *testing.T) {
	mockBookingRepo := mocks.NewBookingRepository(t)
	mockPackageRepo := mocks.NewPackageRepository(t)
	mockDispatcher := mocks.NewDispatcher(t)
	mockPublisher := mocks.NewEventPublisher(t)
	db, _ := redismock.NewClientMock()

	service := services.NewBookingService(mockBookingRepo, mockPackageRepo, mockDispatcher, mockPublisher, db, discardLogger())

	ctx := context.Background()
	now := time.Now().UTC()
	vendorID := uuid.New()

	overdue := []domain.Package{
		{ID: uuid.New(), VendorID: vendorID, Title: "Komodo Cruise", Status: domain.PackageActive},
		{ID: uuid.New(), VendorID: vendorID, Title: "Java Highlands", Status: domain.PackagePending},
	}
	ids := []uuid.UUID{overdue[0].ID, overdue[1].ID}

	mockPackageRepo.On("FindOverdue", ctx, now).Return(overdue, nil)
	mockPackageRepo.On("BulkExpire", ctx, ids).Return(int64(2), nil)
	mockBookingRepo.On("BulkExpireByPackages", ctx, ids).Return(int64(3), nil)
	mockDispatcher.On("Notify", ctx, "Packages expired",
		"The following packages passed their start date and were expired: Komodo Cruise, Java Highlands.",
		[]uuid.UUID{vendorID}, "/vendor/packages").Return(nil)
	mockPublisher.On("PublishJSON", ctx, mock.AnythingOfType("string"), mock.Anything).Return(nil)

	result, err := service.ExpireOverduePackages(ctx, now)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), result.PackagesUpdated)
	assert.Equal(t, int64(3), result.BookingsUpdated)
}

func TestExpireOverduePackages_NoOverdueIsNoOp(t *testing.T) {
	mockBookingRepo := mocks.NewBookingRepository(t)
	mockPackageRepo := mocks.NewPackageRepository(t)
	db, _ := redismock.NewClientMock()

	service := services.NewBookingService(mockBookingRepo, mockPackageRepo, nil, nil, db, discardLogger())

	ctx := context.Background()
	now := time.Now().UTC()

	mockPackageRepo.On("FindOverdue", ctx, now).Return([]domain.Package{}, nil)

	result, err := service.ExpireOverduePackages(ctx, now)

	assert.NoError(t, err)
	assert.Zero(t, result.PackagesUpdated)
	assert.Zero(t, result.BookingsUpdated)
	mockPackageRepo.AssertNotCalled(t, "BulkExpire", mock.Anything, mock.Anything)
	mockBookingRepo.AssertNotCalled(t, "BulkExpireByPackages", mock.Anything, mock.Anything)
}

func TestExpireOverduePackages_OneNotificationPerVendor(t *testing.T) {
	mockBookingRepo := mocks.NewBookingRepository(t)
	mockPackageRepo := mocks.NewPackageRepository(t)
	mockDispatcher := mocks.NewDispatcher(t)
	db, _ := redismock.NewClientMock()

	service := services.NewBookingService(mockBookingRepo, mockPackageRepo, mockDispatcher, nil, db, discardLogger())

	ctx := context.Background()
	now := time.Now().UTC()
	vendorA := uuid.New()
	vendorB := uuid.New()

	overdue := []domain.Package{
		{ID: uuid.New(), VendorID: vendorA, Title: "Trip One"},
		{ID: uuid.New(), VendorID: vendorA, Title: "Trip Two"},
		{ID: uuid.New(), VendorID: vendorB, Title: "Trip Three"},
	}
	ids := []uuid.UUID{overdue[0].ID, overdue[1].ID, overdue[2].ID}

	mockPackageRepo.On("FindOverdue", ctx, now).Return(overdue, nil)
	mockPackageRepo.On("BulkExpire", ctx, ids).Return(int64(3), nil)
	mockBookingRepo.On("BulkExpireByPackages", ctx, ids).Return(int64(0), nil)
	mockDispatcher.On("Notify", ctx, "Packages expired", mock.AnythingOfType("string"),
		mock.AnythingOfType("[]uuid.UUID"), "/vendor/packages").Return(nil)

	_, err := service.ExpireOverduePackages(ctx, now)

	assert.NoError(t, err)
	mockDispatcher.AssertNumberOfCalls(t, "Notify", 2)
}
