package services_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tripnest/server/internal/core/domain"
	"github.com/tripnest/server/internal/core/ports/mocks"
	"github.com/tripnest/server/internal/core/services"
	"github.com/tripnest/server/pkg/apperrors"
)

func TestCreatePackage_Success_PendingAndAdminsNotified(t *testing.T) {
	mockPackageRepo := mocks.NewPackageRepository(t)
	mockDispatcher := mocks.NewDispatcher(t)
	db, _ := redismock.NewClientMock()

	service := services.NewPackageService(mockPackageRepo, mocks.NewBookingRepository(t), mockDispatcher, db, discardLogger())

	ctx := context.Background()
	vendorID := uuid.New()

	req := services.CreatePackageRequest{
		VendorID:    vendorID.String(),
		Title:       "Raja Ampat Diving",
		Destination: "Raja Ampat, Indonesia",
		Days:        5,
		StartDate:   time.Now().UTC().Add(30 * 24 * time.Hour).Format(time.RFC3339),
		Price:       1250.0,
		Seats:       12,
	}

	mockPackageRepo.On("Create", ctx, mock.MatchedBy(func(p *domain.Package) bool {
		return p.Status == domain.PackagePending &&
			p.TotalSlots == 12 && p.AvailableSlots == 12 &&
			p.VendorID == vendorID
	})).Return(nil)
	mockDispatcher.On("NotifyAdmins", ctx, "New package submitted", mock.AnythingOfType("string"),
		"/admin/packages/pending").Return(nil)

	pkg, err := service.CreatePackage(ctx, req)

	assert.NoError(t, err)
	if assert.NotNil(t, pkg) {
		assert.Equal(t, domain.PackagePending, pkg.Status)
	}
}

func TestCreatePackage_Fail_BadStartDate(t *testing.T) {
	db, _ := redismock.NewClientMock()
	service := services.NewPackageService(mocks.NewPackageRepository(t), mocks.NewBookingRepository(t), nil, db, discardLogger())

	pkg, err := service.CreatePackage(context.Background(), services.CreatePackageRequest{
		VendorID:  uuid.New().String(),
		Title:     "Trip",
		Seats:     4,
		StartDate: "next tuesday",
	})

	assert.Nil(t, pkg)
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidArgument))
}

func TestApprovePackage_Fail_NotPending(t *testing.T) {
	mockPackageRepo := mocks.NewPackageRepository(t)
	db, _ := redismock.NewClientMock()

	service := services.NewPackageService(mockPackageRepo, mocks.NewBookingRepository(t), nil, db, discardLogger())

	ctx := context.Background()
	packageID := uuid.New()

	mockPackageRepo.On("GetByID", ctx, packageID).
		Return(&domain.Package{ID: packageID, Status: domain.PackageActive}, nil)

	err := service.ApprovePackage(ctx, packageID)

	assert.True(t, apperrors.Is(err, apperrors.CodeConflict))
	mockPackageRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestApprovePackage_Success_NotifiesVendor(t *testing.T) {
	mockPackageRepo := mocks.NewPackageRepository(t)
	mockDispatcher := mocks.NewDispatcher(t)
	db, _ := redismock.NewClientMock()

	service := services.NewPackageService(mockPackageRepo, mocks.NewBookingRepository(t), mockDispatcher, db, discardLogger())

	ctx := context.Background()
	packageID := uuid.New()
	vendorID := uuid.New()

	mockPackageRepo.On("GetByID", ctx, packageID).
		Return(&domain.Package{ID: packageID, VendorID: vendorID, Title: "Bali Getaway", Status: domain.PackagePending}, nil)
	mockPackageRepo.On("UpdateStatus", ctx, packageID, domain.PackageApproved).Return(nil)
	mockDispatcher.On("Notify", ctx, "Package approved", mock.AnythingOfType("string"),
		[]uuid.UUID{vendorID}, "/vendor/packages").Return(nil)

	assert.NoError(t, service.ApprovePackage(ctx, packageID))
}

func TestActivatePackage_Fail_ExpiredCannotBeToggled(t *testing.T) {
	mockPackageRepo := mocks.NewPackageRepository(t)
	db, _ := redismock.NewClientMock()

	service := services.NewPackageService(mockPackageRepo, mocks.NewBookingRepository(t), nil, db, discardLogger())

	ctx := context.Background()
	packageID := uuid.New()

	mockPackageRepo.On("GetByID", ctx, packageID).
		Return(&domain.Package{ID: packageID, Status: domain.PackageExpired}, nil)

	err := service.ActivatePackage(ctx, packageID)

	assert.True(t, apperrors.Is(err, apperrors.CodeConflict))
}

func TestDeletePackage_CascadesToBookings(t *testing.T) {
	mockPackageRepo := mocks.NewPackageRepository(t)
	mockBookingRepo := mocks.NewBookingRepository(t)
	db, mockRedis := redismock.NewClientMock()

	service := services.NewPackageService(mockPackageRepo, mockBookingRepo, nil, db, discardLogger())

	ctx := context.Background()
	packageID := uuid.New()

	mockPackageRepo.On("GetByID", ctx, packageID).
		Return(&domain.Package{ID: packageID, Status: domain.PackageInactive}, nil)
	mockBookingRepo.On("DeleteByPackage", ctx, packageID).Return(int64(2), nil)
	mockPackageRepo.On("Delete", ctx, packageID).Return(nil)

	mockRedis.ExpectDel("package:" + packageID.String() + ":slots").SetVal(0)

	err := service.DeletePackage(ctx, packageID)

	assert.NoError(t, err)
	if err := mockRedis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestAvailableSlots_CacheHitSkipsRepository(t *testing.T) {
	mockPackageRepo := mocks.NewPackageRepository(t)
	db, mockRedis := redismock.NewClientMock()

	service := services.NewPackageService(mockPackageRepo, mocks.NewBookingRepository(t), nil, db, discardLogger())

	ctx := context.Background()
	packageID := uuid.New()
	key := "package:" + packageID.String() + ":slots"

	mockRedis.ExpectGet(key).SetVal("7")

	slots, err := service.AvailableSlots(ctx, packageID)

	assert.NoError(t, err)
	assert.Equal(t, 7, slots)
	mockPackageRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestAvailableSlots_CacheMissReadsAndCaches(t *testing.T) {
	mockPackageRepo := mocks.NewPackageRepository(t)
	db, mockRedis := redismock.NewClientMock()

	service := services.NewPackageService(mockPackageRepo, mocks.NewBookingRepository(t), nil, db, discardLogger())

	ctx := context.Background()
	packageID := uuid.New()
	key := "package:" + packageID.String() + ":slots"

	mockRedis.ExpectGet(key).RedisNil()
	mockRedis.ExpectSet(key, strconv.Itoa(9), 30*time.Second).SetVal("OK")

	mockPackageRepo.On("GetByID", ctx, packageID).
		Return(&domain.Package{ID: packageID, AvailableSlots: 9}, nil)

	slots, err := service.AvailableSlots(ctx, packageID)

	assert.NoError(t, err)
	assert.Equal(t, 9, slots)

	if err := mockRedis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}
