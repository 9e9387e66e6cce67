package trucks

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drivesphere/backend/internal/models"
)

// ErrNotFound is returned when no truck matches the lookup.
var ErrNotFound = errors.New("truck not found")

// Repository handles truck persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a trucks repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const truckColumns = `id, company_id, truck_number, make, model, year, COALESCE(vin,''),
	COALESCE(color,''), mileage, COALESCE(fuel_type,''), plate_number,
	assigned_driver_id, created_at, updated_at`

func scanTruck(row pgx.Row) (*models.Truck, error) {
	var t models.Truck
	err := row.Scan(&t.ID, &t.CompanyID, &t.TruckNumber, &t.Make, &t.Model, &t.Year,
		&t.VIN, &t.Color, &t.Mileage, &t.FuelType, &t.PlateNumber,
		&t.AssignedDriverID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Create inserts a truck.
func (r *Repository) Create(ctx context.Context, t *models.Truck) error {
	const q = `INSERT INTO trucks (id, company_id, truck_number, make, model, year, vin,
		color, mileage, fuel_type, plate_number, assigned_driver_id)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, NULLIF($6,''), NULLIF($7,''),
		 $8, NULLIF($9,''), $10, $11)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, t.CompanyID, t.TruckNumber, t.Make, t.Model, t.Year,
		t.VIN, t.Color, t.Mileage, t.FuelType, t.PlateNumber, t.AssignedDriverID).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

// GetByID returns a truck scoped to a company.
func (r *Repository) GetByID(ctx context.Context, companyID string, id uuid.UUID) (*models.Truck, error) {
	return scanTruck(r.pool.QueryRow(ctx,
		`SELECT `+truckColumns+` FROM trucks WHERE id = $1 AND company_id = $2`, id, companyID))
}

// List returns a company's trucks, newest first.
func (r *Repository) List(ctx context.Context, companyID string) ([]models.Truck, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+truckColumns+` FROM trucks WHERE company_id = $1 ORDER BY created_at DESC`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Truck
	for rows.Next() {
		t, err := scanTruck(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *t)
	}
	return list, rows.Err()
}

// Update edits a truck.
func (r *Repository) Update(ctx context.Context, t *models.Truck) error {
	const q = `UPDATE trucks SET truck_number = $1, make = $2, model = $3, year = $4,
		vin = NULLIF($5,''), color = NULLIF($6,''), mileage = $7, fuel_type = NULLIF($8,''),
		plate_number = $9, assigned_driver_id = $10, updated_at = NOW()
		WHERE id = $11 AND company_id = $12
		RETURNING updated_at`
	err := r.pool.QueryRow(ctx, q, t.TruckNumber, t.Make, t.Model, t.Year, t.VIN,
		t.Color, t.Mileage, t.FuelType, t.PlateNumber, t.AssignedDriverID,
		t.ID, t.CompanyID).Scan(&t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// Delete removes a truck.
func (r *Repository) Delete(ctx context.Context, companyID string, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM trucks WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
