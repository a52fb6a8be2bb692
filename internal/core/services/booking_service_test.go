package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tripnest/server/internal/core/domain"
	"github.com/tripnest/server/internal/core/ports/mocks"
	"github.com/tripnest/server/internal/core/services"
	"github.com/tripnest/server/pkg/apperrors"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreateBooking_Success(t *testing.T) {
	mockBookingRepo := mocks.NewBookingRepository(t)
	mockPackageRepo := mocks.NewPackageRepository(t)
	mockDispatcher := mocks.NewDispatcher(t)
	mockPublisher := mocks.NewEventPublisher(t)
	db, _ := redismock.NewClientMock()

	service := services.NewBookingService(mockBookingRepo, mockPackageRepo, mockDispatcher, mockPublisher, db, discardLogger())

	ctx := context.Background()
	userID := uuid.New()
	packageID := uuid.New()
	vendorID := uuid.New()

	mockPkg := &domain.Package{
		ID:             packageID,
		VendorID:       vendorID,
		Title:          "Bali Getaway",
		Status:         domain.PackageActive,
		TotalSlots:     20,
		AvailableSlots: 20,
	}

	req := services.CreateBookingRequest{
		UserID:      userID.String(),
		PackageID:   packageID.String(),
		Seats:       2,
		TotalAmount: 500.0,
	}

	mockBookingRepo.On("ExistsActive", ctx, userID, packageID).Return(false, nil)
	mockPackageRepo.On("GetByID", ctx, packageID).Return(mockPkg, nil)
	mockBookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)
	mockDispatcher.On("Notify", ctx, "New booking request", mock.AnythingOfType("string"),
		[]uuid.UUID{vendorID}, "/vendor/bookings").Return(nil)
	mockPublisher.On("PublishJSON", ctx, mock.AnythingOfType("string"), mock.Anything).Return(nil)

	booking, err := service.CreateBooking(ctx, req)

	assert.NoError(t, err)
	if assert.NotNil(t, booking) {
		assert.Equal(t, domain.BookingPending, booking.Status)
		assert.Equal(t, vendorID, booking.VendorID)
		assert.Equal(t, domain.PaymentUnpaid, booking.Payment.Status)
	}
}

func TestCreateBooking_Fail_DuplicateActive(t *testing.T) {
	mockBookingRepo := mocks.NewBookingRepository(t)
	mockPackageRepo := mocks.NewPackageRepository(t)
	db, _ := redismock.NewClientMock()

	service := services.NewBookingService(mockBookingRepo, mockPackageRepo, nil, nil, db, discardLogger())

	ctx := context.Background()
	userID := uuid.New()
	packageID := uuid.New()

	mockBookingRepo.On("ExistsActive", ctx, userID, packageID).Return(true, nil)

	booking, err := service.CreateBooking(ctx, services.CreateBookingRequest{
		UserID:    userID.String(),
		PackageID: packageID.String(),
		Seats:     1,
	})

	assert.Nil(t, booking)
	assert.True(t, apperrors.Is(err, apperrors.CodeConflict))
	mockPackageRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestCreateBooking_Fail_PackageNotActive(t *testing.T) {
	mockBookingRepo := mocks.NewBookingRepository(t)
	mockPackageRepo := mocks.NewPackageRepository(t)
	db, _ := redismock.NewClientMock()

	service := services.NewBookingService(mockBookingRepo, mockPackageRepo, nil, nil, db, discardLogger())

	ctx := context.Background()
	userID := uuid.New()
	packageID := uuid.New()

	mockBookingRepo.On("ExistsActive", ctx, userID, packageID).Return(false, nil)
	mockPackageRepo.On("GetByID", ctx, packageID).
		Return(&domain.Package{ID: packageID, Status: domain.PackageInactive}, nil)

	booking, err := service.CreateBooking(ctx, services.CreateBookingRequest{
		UserID:    userID.String(),
		PackageID: packageID.String(),
		Seats:     1,
	})

	assert.Nil(t, booking)
	assert.True(t, apperrors.Is(err, apperrors.CodeConflict))
	mockBookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_Fail_InvalidSeats(t *testing.T) {
	db, _ := redismock.NewClientMock()
	service := services.NewBookingService(mocks.NewBookingRepository(t), mocks.NewPackageRepository(t), nil, nil, db, discardLogger())

	booking, err := service.CreateBooking(context.Background(), services.CreateBookingRequest{
		UserID:    uuid.New().String(),
		PackageID: uuid.New().String(),
		Seats:     0,
	})

	assert.Nil(t, booking)
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidArgument))
}

func TestApproveBooking_Success_DecrementsSlotsAndInvalidatesCache(t *testing.T) {
	mockBookingRepo := mocks.NewBookingRepository(t)
	mockPackageRepo := mocks.NewPackageRepository(t)
	mockDispatcher := mocks.NewDispatcher(t)
	mockPublisher := mocks.NewEventPublisher(t)
	db, mockRedis := redismock.NewClientMock()

	service := services.NewBookingService(mockBookingRepo, mockPackageRepo, mockDispatcher, mockPublisher, db, discardLogger())

	ctx := context.Background()
	bookingID := uuid.New()
	packageID := uuid.New()
	userID := uuid.New()

	pending := &domain.Booking{
		ID:            bookingID,
		UserID:        userID,
		PackageID:     packageID,
		VendorID:      uuid.New(),
		NumberOfSeats: 3,
		Status:        domain.BookingPending,
	}

	mockBookingRepo.On("GetByID", ctx, bookingID).Return(pending, nil)
	mockPackageRepo.On("AdjustSlots", ctx, packageID, -3).Return(nil)
	mockBookingRepo.On("UpdateStatus", ctx, bookingID, domain.BookingApproved).Return(nil)
	mockDispatcher.On("Notify", ctx, "Booking approved", mock.AnythingOfType("string"),
		[]uuid.UUID{userID}, "/bookings").Return(nil)
	mockPublisher.On("PublishJSON", ctx, mock.AnythingOfType("string"), mock.Anything).Return(nil)

	mockRedis.ExpectDel("package:" + packageID.String() + ":slots").SetVal(1)

	booking, err := service.ApproveBooking(ctx, bookingID)

	assert.NoError(t, err)
	if assert.NotNil(t, booking) {
		assert.Equal(t, domain.BookingApproved, booking.Status)
	}

	if err := mockRedis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestApproveBooking_Fail_CapacityExceeded(t *testing.T) {
	mockBookingRepo := mocks.NewBookingRepository(t)
	mockPackageRepo := mocks.NewPackageRepository(t)
	db, _ := redismock.NewClientMock()

	service := services.NewBookingService(mockBookingRepo, mockPackageRepo, nil, nil, db, discardLogger())

	ctx := context.Background()
	bookingID := uuid.New()
	packageID := uuid.New()

	pending := &domain.Booking{
		ID:            bookingID,
		PackageID:     packageID,
		NumberOfSeats: 5,
		Status:        domain.BookingPending,
	}

	mockBookingRepo.On("GetByID", ctx, bookingID).Return(pending, nil)
	mockPackageRepo.On("AdjustSlots", ctx, packageID, -5).
		Return(apperrors.Conflict("not enough available slots"))

	booking, err := service.ApproveBooking(ctx, bookingID)

	assert.Nil(t, booking)
	assert.True(t, apperrors.Is(err, apperrors.CodeConflict))
	mockBookingRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestApproveBooking_Fail_NotPending(t *testing.T) {
	mockBookingRepo := mocks.NewBookingRepository(t)
	mockPackageRepo := mocks.NewPackageRepository(t)
	db, _ := redismock.NewClientMock()

	service := services.NewBookingService(mockBookingRepo, mockPackageRepo, nil, nil, db, discardLogger())

	ctx := context.Background()
	bookingID := uuid.New()

	approved := &domain.Booking{
		ID:            bookingID,
		PackageID:     uuid.New(),
		NumberOfSeats: 2,
		Status:        domain.BookingApproved,
	}

	mockBookingRepo.On("GetByID", ctx, bookingID).Return(approved, nil)

	booking, err := service.ApproveBooking(ctx, bookingID)

	assert.Nil(t, booking)
	assert.True(t, apperrors.Is(err, apperrors.CodeConflict))
	mockPackageRepo.AssertNotCalled(t, "AdjustSlots", mock.Anything, mock.Anything, mock.Anything)
}

func TestApproveBooking_RestoresSlotsWhenStatusUpdateFails(t *testing.T) {
	mockBookingRepo := mocks.NewBookingRepository(t)
	mockPackageRepo := mocks.NewPackageRepository(t)
	db, _ := redismock.NewClientMock()

	service := services.NewBookingService(mockBookingRepo, mockPackageRepo, nil, nil, db, discardLogger())

	ctx := context.Background()
	bookingID := uuid.New()
	packageID := uuid.New()

	pending := &domain.Booking{
		ID:            bookingID,
		PackageID:     packageID,
		NumberOfSeats: 2,
		Status:        domain.BookingPending,
	}

	mockBookingRepo.On("GetByID", ctx, bookingID).Return(pending, nil)
	mockPackageRepo.On("AdjustSlots", ctx, packageID, -2).Return(nil)
	mockBookingRepo.On("UpdateStatus", ctx, bookingID, domain.BookingApproved).
		Return(apperrors.NotFound("booking not found"))
	mockPackageRepo.On("AdjustSlots", ctx, packageID, 2).Return(nil)

	booking, err := service.ApproveBooking(ctx, bookingID)

	assert.Nil(t, booking)
	assert.Error(t, err)
	mockPackageRepo.AssertCalled(t, "AdjustSlots", ctx, packageID, 2)
}

func TestRejectBooking_Success_DoesNotTouchInventory(t *testing.T) {
	mockBookingRepo := mocks.NewBookingRepository(t)
	mockPackageRepo := mocks.NewPackageRepository(t)
	mockDispatcher := mocks.NewDispatcher(t)
	db, _ := redismock.NewClientMock()

	service := services.NewBookingService(mockBookingRepo, mockPackageRepo, mockDispatcher, nil, db, discardLogger())

	ctx := context.Background()
	bookingID := uuid.New()
	userID := uuid.New()

	pending := &domain.Booking{
		ID:            bookingID,
		UserID:        userID,
		PackageID:     uuid.New(),
		NumberOfSeats: 2,
		Status:        domain.BookingPending,
	}

	mockBookingRepo.On("GetByID", ctx, bookingID).Return(pending, nil)
	mockBookingRepo.On("UpdateStatus", ctx, bookingID, domain.BookingRejected).Return(nil)
	mockDispatcher.On("Notify", ctx, "Booking rejected", mock.AnythingOfType("string"),
		[]uuid.UUID{userID}, "/bookings").Return(nil)

	booking, err := service.RejectBooking(ctx, bookingID)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingRejected, booking.Status)
	mockPackageRepo.AssertNotCalled(t, "AdjustSlots", mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelBooking_ApprovedRestoresSlots(t *testing.T) {
	mockBookingRepo := mocks.NewBookingRepository(t)
	mockPackageRepo := mocks.NewPackageRepository(t)
	db, mockRedis := redismock.NewClientMock()

	service := services.NewBookingService(mockBookingRepo, mockPackageRepo, nil, nil, db, discardLogger())

	ctx := context.Background()
	bookingID := uuid.New()
	packageID := uuid.New()

	approved := &domain.Booking{
		ID:            bookingID,
		PackageID:     packageID,
		NumberOfSeats: 4,
		Status:        domain.BookingApproved,
	}

	mockBookingRepo.On("GetByID", ctx, bookingID).Return(approved, nil)
	mockBookingRepo.On("Delete", ctx, bookingID).Return(nil)
	mockPackageRepo.On("AdjustSlots", ctx, packageID, 4).Return(nil)

	mockRedis.ExpectDel("package:" + packageID.String() + ":slots").SetVal(1)

	err := service.CancelBooking(ctx, bookingID)

	assert.NoError(t, err)
	if err := mockRedis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestCancelBooking_PendingLeavesInventoryAlone(t *testing.T) {
	mockBookingRepo := mocks.NewBookingRepository(t)
	mockPackageRepo := mocks.NewPackageRepository(t)
	db, _ := redismock.NewClientMock()

	service := services.NewBookingService(mockBookingRepo, mockPackageRepo, nil, nil, db, discardLogger())

	ctx := context.Background()
	bookingID := uuid.New()

	pending := &domain.Booking{
		ID:            bookingID,
		PackageID:     uuid.New(),
		NumberOfSeats: 2,
		Status:        domain.BookingPending,
	}

	mockBookingRepo.On("GetByID", ctx, bookingID).Return(pending, nil)
	mockBookingRepo.On("Delete", ctx, bookingID).Return(nil)

	err := service.CancelBooking(ctx, bookingID)

	assert.NoError(t, err)
	mockPackageRepo.AssertNotCalled(t, "AdjustSlots", mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelBooking_Fail_ExpiredIsTerminal(t *testing.T) {
	mockBookingRepo := mocks.NewBookingRepository(t)
	mockPackageRepo := mocks.NewPackageRepository(t)
	db, _ := redismock.NewClientMock()

	service := services.NewBookingService(mockBookingRepo, mockPackageRepo, nil, nil, db, discardLogger())

	ctx := context.Background()
	bookingID := uuid.New()

	expired := &domain.Booking{
		ID:            bookingID,
		PackageID:     uuid.New(),
		NumberOfSeats: 2,
		Status:        domain.BookingExpired,
	}

	mockBookingRepo.On("GetByID", ctx, bookingID).Return(expired, nil)

	err := service.CancelBooking(ctx, bookingID)

	assert.True(t, apperrors.Is(err, apperrors.CodeConflict))
	mockBookingRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	mockPackageRepo.AssertNotCalled(t, "AdjustSlots", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordPayment_Fail_UnsupportedStatus(t *testing.T) {
	db, _ := redismock.NewClientMock()
	service := services.NewBookingService(mocks.NewBookingRepository(t), mocks.NewPackageRepository(t), nil, nil, db, discardLogger())

	booking, err := service.RecordPayment(context.Background(), uuid.New(), "order-1", domain.PaymentStatus("PENDING"))

	assert.Nil(t, booking)
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidArgument))
}

func TestRecordPayment_Success(t *testing.T) {
	mockBookingRepo := mocks.NewBookingRepository(t)
	db, _ := redismock.NewClientMock()

	service := services.NewBookingService(mockBookingRepo, mocks.NewPackageRepository(t), nil, nil, db, discardLogger())

	ctx := context.Background()
	bookingID := uuid.New()

	existing := &domain.Booking{
		ID:      bookingID,
		Status:  domain.BookingApproved,
		Payment: domain.PaymentDetails{Status: domain.PaymentUnpaid},
	}

	payment := domain.PaymentDetails{Status: domain.PaymentCaptured, OrderID: "order-42"}

	mockBookingRepo.On("GetByID", ctx, bookingID).Return(existing, nil)
	mockBookingRepo.On("SetPaymentDetails", ctx, bookingID, payment).Return(nil)

	booking, err := service.RecordPayment(ctx, bookingID, "order-42", domain.PaymentCaptured)

	assert.NoError(t, err)
	assert.Equal(t, payment, booking.Payment)
}
