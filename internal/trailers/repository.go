package trailers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drivesphere/backend/internal/models"
)

// ErrNotFound is returned when no trailer matches the lookup.
var ErrNotFound = errors.New("trailer not found")

// Repository handles trailer persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a trailers repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const trailerColumns = `id, company_id, trailer_number, trailer_type, make, model, year,
	COALESCE(vin,''), plate_number, COALESCE(length,''), COALESCE(capacity,''),
	last_maintenance, last_inspection, insurance_expiry, assigned_truck_id,
	created_at, updated_at`

func scanTrailer(row pgx.Row) (*models.Trailer, error) {
	var t models.Trailer
	err := row.Scan(&t.ID, &t.CompanyID, &t.TrailerNumber, &t.TrailerType, &t.Make,
		&t.Model, &t.Year, &t.VIN, &t.PlateNumber, &t.Length, &t.Capacity,
		&t.LastMaintenance, &t.LastInspection, &t.InsuranceExpiry,
		&t.AssignedTruckID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Create inserts a trailer.
func (r *Repository) Create(ctx context.Context, t *models.Trailer) error {
	const q = `INSERT INTO trailers (id, company_id, trailer_number, trailer_type, make,
		model, year, vin, plate_number, length, capacity, last_maintenance,
		last_inspection, insurance_expiry, assigned_truck_id)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, NULLIF($7,''), $8,
		 NULLIF($9,''), NULLIF($10,''), $11, $12, $13, $14)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, t.CompanyID, t.TrailerNumber, t.TrailerType, t.Make,
		t.Model, t.Year, t.VIN, t.PlateNumber, t.Length, t.Capacity,
		t.LastMaintenance, t.LastInspection, t.InsuranceExpiry, t.AssignedTruckID).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

// GetByID returns a trailer scoped to a company.
func (r *Repository) GetByID(ctx context.Context, companyID string, id uuid.UUID) (*models.Trailer, error) {
	return scanTrailer(r.pool.QueryRow(ctx,
		`SELECT `+trailerColumns+` FROM trailers WHERE id = $1 AND company_id = $2`, id, companyID))
}

// List returns a company's trailers, newest first.
func (r *Repository) List(ctx context.Context, companyID string) ([]models.Trailer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+trailerColumns+` FROM trailers WHERE company_id = $1 ORDER BY created_at DESC`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Trailer
	for rows.Next() {
		t, err := scanTrailer(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *t)
	}
	return list, rows.Err()
}

// Update edits a trailer.
func (r *Repository) Update(ctx context.Context, t *models.Trailer) error {
	const q = `UPDATE trailers SET trailer_number = $1, trailer_type = $2, make = $3,
		model = $4, year = $5, vin = NULLIF($6,''), plate_number = $7,
		length = NULLIF($8,''), capacity = NULLIF($9,''), last_maintenance = $10,
		last_inspection = $11, insurance_expiry = $12, assigned_truck_id = $13,
		updated_at = NOW()
		WHERE id = $14 AND company_id = $15
		RETURNING updated_at`
	err := r.pool.QueryRow(ctx, q, t.TrailerNumber, t.TrailerType, t.Make, t.Model,
		t.Year, t.VIN, t.PlateNumber, t.Length, t.Capacity, t.LastMaintenance,
		t.LastInspection, t.InsuranceExpiry, t.AssignedTruckID, t.ID, t.CompanyID).
		Scan(&t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// Delete removes a trailer.
func (r *Repository) Delete(ctx context.Context, companyID string, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM trailers WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
