package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/tripnest/server/internal/core/domain"
	"github.com/tripnest/server/pkg/apperrors"
)

type PackageRepository struct {
	db *sql.DB
}

func NewPackageRepository(db *sql.DB) *PackageRepository {
	return &PackageRepository{db: db}
}

const packageColumns = `
	id, vendor_id, title, description, category, destination, days,
	start_date, price, transportation_mode, total_slots, available_slots,
	status, created_at, updated_at
`

func scanPackage(row interface{ Scan(...any) error }) (*domain.Package, error) {
	var p domain.Package
	err := row.Scan(
		&p.ID,
		&p.VendorID,
		&p.Title,
		&p.Description,
		&p.Category,
		&p.Destination,
		&p.Days,
		&p.StartDate,
		&p.Price,
		&p.TransportationMode,
		&p.TotalSlots,
		&p.AvailableSlots,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PackageRepository) Create(ctx context.Context, pkg *domain.Package) error {
	query := `
	INSERT INTO packages (` + packageColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.ExecContext(ctx, query,
		pkg.ID, pkg.VendorID, pkg.Title, pkg.Description, pkg.Category,
		pkg.Destination, pkg.Days, pkg.StartDate, pkg.Price,
		pkg.TransportationMode, pkg.TotalSlots, pkg.AvailableSlots,
		pkg.Status, pkg.CreatedAt, pkg.UpdatedAt,
	)
	if err != nil {
		return apperrors.Upstream("failed to insert package", err)
	}

	return nil
}

func (r *PackageRepository) GetByID(ctx context.Context, packageID uuid.UUID) (*domain.Package, error) {
	query := `SELECT ` + packageColumns + ` FROM packages WHERE id = $1`

	pkg, err := scanPackage(r.db.QueryRowContext(ctx, query, packageID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFound("package not found")
		}
		return nil, apperrors.Upstream("failed to load package", err)
	}

	return pkg, nil
}

// AdjustSlots is the single write path for available_slots. The bound check
// lives in the WHERE clause so concurrent adjustments can never race past it.
func (r *PackageRepository) AdjustSlots(ctx context.Context, packageID uuid.UUID, delta int) error {
	query := `
	UPDATE packages
	SET available_slots = available_slots + $2,
		updated_at = NOW()
	WHERE id = $1
		AND available_slots + $2 >= 0
		AND available_slots + $2 <= total_slots
	`

	result, err := r.db.ExecContext(ctx, query, packageID, delta)
	if err != nil {
		return apperrors.Upstream("failed to adjust slots", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Upstream("failed to adjust slots", err)
	}

	if rowsAffected == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM packages WHERE id = $1)`, packageID,
		).Scan(&exists); err != nil {
			return apperrors.Upstream("failed to adjust slots", err)
		}
		if !exists {
			return apperrors.NotFound("package not found")
		}
		return apperrors.Conflict("not enough available slots")
	}

	return nil
}

func (r *PackageRepository) UpdateStatus(ctx context.Context, packageID uuid.UUID, status domain.PackageStatus) error {
	query := `
	UPDATE packages
	SET status = $2, updated_at = NOW()
	WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, packageID, status)
	if err != nil {
		return apperrors.Upstream("failed to update package status", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Upstream("failed to update package status", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("package not found")
	}

	return nil
}

func (r *PackageRepository) Delete(ctx context.Context, packageID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM packages WHERE id = $1`, packageID)
	if err != nil {
		return apperrors.Upstream("failed to delete package", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Upstream("failed to delete package", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("package not found")
	}

	return nil
}

func (r *PackageRepository) ListByVendorStatus(ctx context.Context, vendorID uuid.UUID, status domain.PackageStatus) ([]domain.Package, error) {
	query := `
	SELECT ` + packageColumns + `
	FROM packages
	WHERE vendor_id = $1 AND status = $2
	ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, vendorID, status)
	if err != nil {
		return nil, apperrors.Upstream("failed to list packages", err)
	}

	defer rows.Close()

	return collectPackages(rows)
}

func (r *PackageRepository) ListUpcoming(ctx context.Context, vendorID *uuid.UUID, from, to time.Time, page, limit int) ([]domain.Package, error) {
	if page < 1 {
		page = 1
	}

	query := `
	SELECT ` + packageColumns + `
	FROM packages
	WHERE status = 'ACTIVE'
		AND start_date >= $1 AND start_date <= $2
		AND ($3::uuid IS NULL OR vendor_id = $3)
	ORDER BY start_date ASC
	OFFSET $4 LIMIT $5
	`

	var vendorArg any
	if vendorID != nil {
		vendorArg = *vendorID
	}

	rows, err := r.db.QueryContext(ctx, query, from, to, vendorArg, (page-1)*limit, limit)
	if err != nil {
		return nil, apperrors.Upstream("failed to list upcoming packages", err)
	}

	defer rows.Close()

	return collectPackages(rows)
}

func (r *PackageRepository) FindOverdue(ctx context.Context, now time.Time) ([]domain.Package, error) {
	statuses := make([]string, 0, 4)
	for _, s := range domain.SweepableStatuses() {
		statuses = append(statuses, string(s))
	}

	query := `
	SELECT ` + packageColumns + `
	FROM packages
	WHERE start_date < $1 AND status = ANY($2)
	`

	rows, err := r.db.QueryContext(ctx, query, now, pq.Array(statuses))
	if err != nil {
		return nil, apperrors.Upstream("failed to scan overdue packages", err)
	}

	defer rows.Close()

	return collectPackages(rows)
}

// BulkExpire is scoped by the explicit id list captured at scan time, not by
// re-evaluating the overdue predicate.
func (r *PackageRepository) BulkExpire(ctx context.Context, packageIDs []uuid.UUID) (int64, error) {
	if len(packageIDs) == 0 {
		return 0, nil
	}

	query := `
	UPDATE packages
	SET status = $2, updated_at = NOW()
	WHERE id = ANY($1) AND status <> $2
	`

	result, err := r.db.ExecContext(ctx, query, pq.Array(uuidStrings(packageIDs)), domain.PackageExpired)
	if err != nil {
		return 0, apperrors.Upstream("failed to expire packages", err)
	}

	return result.RowsAffected()
}

func collectPackages(rows *sql.Rows) ([]domain.Package, error) {
	var packages []domain.Package
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			return nil, apperrors.Upstream("failed to scan package row", err)
		}
		packages = append(packages, *pkg)
	}

	return packages, rows.Err()
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
