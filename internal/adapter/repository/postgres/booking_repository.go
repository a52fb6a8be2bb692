package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/tripnest/server/internal/core/domain"
	"github.com/tripnest/server/pkg/apperrors"
)

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
	INSERT INTO bookings (
		id, user_id, package_id, vendor_id, number_of_seats, total_amount,
		special_requests, status, payment_status, payment_order_id, booking_date
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		booking.ID, booking.UserID, booking.PackageID, booking.VendorID,
		booking.NumberOfSeats, booking.TotalAmount, booking.SpecialRequests,
		booking.Status, booking.Payment.Status, booking.Payment.OrderID,
		booking.BookingDate,
	)
	if err != nil {
		return apperrors.Upstream("failed to insert booking", err)
	}

	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	query := `
	SELECT id, user_id, package_id, vendor_id, number_of_seats, total_amount,
		special_requests, status, payment_status, payment_order_id, booking_date
	FROM bookings
	WHERE id = $1
	`

	var b domain.Booking
	err := r.db.QueryRowContext(ctx, query, bookingID).Scan(
		&b.ID,
		&b.UserID,
		&b.PackageID,
		&b.VendorID,
		&b.NumberOfSeats,
		&b.TotalAmount,
		&b.SpecialRequests,
		&b.Status,
		&b.Payment.Status,
		&b.Payment.OrderID,
		&b.BookingDate,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFound("booking not found")
		}
		return nil, apperrors.Upstream("failed to load booking", err)
	}

	return &b, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status domain.BookingStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = $2 WHERE id = $1`, bookingID, status)
	if err != nil {
		return apperrors.Upstream("failed to update booking status", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Upstream("failed to update booking status", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("booking not found")
	}

	return nil
}

func (r *BookingRepository) SetPaymentDetails(ctx context.Context, bookingID uuid.UUID, payment domain.PaymentDetails) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET payment_status = $2, payment_order_id = $3 WHERE id = $1`,
		bookingID, payment.Status, payment.OrderID)
	if err != nil {
		return apperrors.Upstream("failed to update payment details", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Upstream("failed to update payment details", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("booking not found")
	}

	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, bookingID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, bookingID)
	if err != nil {
		return apperrors.Upstream("failed to delete booking", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Upstream("failed to delete booking", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("booking not found")
	}

	return nil
}

func (r *BookingRepository) ExistsActive(ctx context.Context, userID, packageID uuid.UUID) (bool, error) {
	statuses := make([]string, 0, 2)
	for _, s := range domain.ActiveBookingStatuses() {
		statuses = append(statuses, string(s))
	}

	query := `
	SELECT EXISTS (
		SELECT 1 FROM bookings
		WHERE user_id = $1 AND package_id = $2 AND status = ANY($3)
	)
	`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, userID, packageID, pq.Array(statuses)).Scan(&exists)
	if err != nil {
		return false, apperrors.Upstream("failed to check booking existence", err)
	}

	return exists, nil
}

func (r *BookingRepository) BulkExpireByPackages(ctx context.Context, packageIDs []uuid.UUID) (int64, error) {
	if len(packageIDs) == 0 {
		return 0, nil
	}

	query := `
	UPDATE bookings
	SET status = $2
	WHERE package_id = ANY($1) AND status <> $2
	`

	result, err := r.db.ExecContext(ctx, query, pq.Array(uuidStrings(packageIDs)), domain.BookingExpired)
	if err != nil {
		return 0, apperrors.Upstream("failed to expire bookings", err)
	}

	return result.RowsAffected()
}

func (r *BookingRepository) DeleteByPackage(ctx context.Context, packageID uuid.UUID) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE package_id = $1`, packageID)
	if err != nil {
		return 0, apperrors.Upstream("failed to delete bookings", err)
	}

	return result.RowsAffected()
}

// TrendingDestinations groups bookings by the leading segment of the package
// destination ("Kochi, Kerala" counts under "Kochi").
func (r *BookingRepository) TrendingDestinations(ctx context.Context, limit int) ([]domain.DestinationCount, error) {
	query := `
	SELECT split_part(p.destination, ',', 1) AS destination, COUNT(b.id) AS bookings
	FROM bookings b
	JOIN packages p ON p.id = b.package_id
	GROUP BY split_part(p.destination, ',', 1)
	ORDER BY bookings DESC
	LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, apperrors.Upstream("failed to aggregate destinations", err)
	}

	defer rows.Close()

	var out []domain.DestinationCount
	for rows.Next() {
		var dc domain.DestinationCount
		if err := rows.Scan(&dc.Destination, &dc.Bookings); err != nil {
			return nil, apperrors.Upstream("failed to scan destination row", err)
		}
		out = append(out, dc)
	}

	return out, rows.Err()
}
