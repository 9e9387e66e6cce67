package trips

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drivesphere/backend/internal/models"
	"github.com/drivesphere/backend/internal/routes"
)

var (
	// ErrNotFound is returned when no trip matches the lookup.
	ErrNotFound = errors.New("trip not found")
	// ErrAlreadyCompleted is returned when a trip already has ending miles.
	ErrAlreadyCompleted = errors.New("trip already completed")
)

// Repository handles trip persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a trips repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const tripColumns = `id, company_id, trip_number, driver_id, truck_id, trailer_id,
	route_id, start_date, end_date, starting_miles, ending_miles,
	total_trip_driven_miles, COALESCE(rate_doc_url,''), created_at, updated_at`

func scanTrip(row pgx.Row) (*models.Trip, error) {
	var t models.Trip
	err := row.Scan(&t.ID, &t.CompanyID, &t.TripNumber, &t.DriverID, &t.TruckID,
		&t.TrailerID, &t.RouteID, &t.StartDate, &t.EndDate, &t.StartingMiles,
		&t.EndingMiles, &t.TotalTripDrivenMiles, &t.RateDocURL,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Create inserts a trip in one transaction. When inlineRoute is non-nil the
// route row is created first and the trip references it; the assigned driver
// is flipped to On Trip in the same commit.
func (r *Repository) Create(ctx context.Context, t *models.Trip, inlineRoute *models.Route) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if inlineRoute != nil {
			if err := routes.InsertRouteTx(ctx, tx, inlineRoute); err != nil {
				return err
			}
			t.RouteID = inlineRoute.ID
		}
		const q = `INSERT INTO trips (id, company_id, trip_number, driver_id, truck_id,
			trailer_id, route_id, start_date, end_date, starting_miles)
			VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id, created_at, updated_at`
		if err := tx.QueryRow(ctx, q, t.CompanyID, t.TripNumber, t.DriverID, t.TruckID,
			t.TrailerID, t.RouteID, t.StartDate, t.EndDate, t.StartingMiles).
			Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return err
		}
		_, err := tx.Exec(ctx,
			`UPDATE drivers SET status = $1, updated_at = NOW() WHERE id = $2 AND company_id = $3`,
			models.DriverStatusOnTrip, t.DriverID, t.CompanyID)
		return err
	})
}

// GetByID returns a trip scoped to a company.
func (r *Repository) GetByID(ctx context.Context, companyID string, id uuid.UUID) (*models.Trip, error) {
	return scanTrip(r.pool.QueryRow(ctx,
		`SELECT `+tripColumns+` FROM trips WHERE id = $1 AND company_id = $2`, id, companyID))
}

// List returns a company's trips, newest first. When driverID is non-nil the
// list is restricted to that driver (driver accounts see only their own trips).
func (r *Repository) List(ctx context.Context, companyID string, driverID *uuid.UUID) ([]models.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips WHERE company_id = $1`
	args := []interface{}{companyID}
	if driverID != nil {
		q += ` AND driver_id = $2`
		args = append(args, *driverID)
	}
	q += ` ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *t)
	}
	return list, rows.Err()
}

// Complete records the ending odometer reading. The derived miles, the trip
// update, the driver's lifetime mileage bump and the status flip back to
// Active commit together. A reading lower than the start aborts before any
// write.
func (r *Repository) Complete(ctx context.Context, companyID string, id uuid.UUID, endingMiles int64) (*models.Trip, error) {
	var updated *models.Trip
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		t, err := scanTrip(tx.QueryRow(ctx,
			`SELECT `+tripColumns+` FROM trips WHERE id = $1 AND company_id = $2 FOR UPDATE`, id, companyID))
		if err != nil {
			return err
		}
		if t.EndingMiles != nil {
			return ErrAlreadyCompleted
		}
		driven, err := models.TripMiles(t.StartingMiles, endingMiles)
		if err != nil {
			return err
		}
		updated, err = scanTrip(tx.QueryRow(ctx,
			`UPDATE trips SET ending_miles = $1, total_trip_driven_miles = $2, updated_at = NOW()
			 WHERE id = $3
			 RETURNING `+tripColumns, endingMiles, driven, id))
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`UPDATE drivers SET total_miles = total_miles + $1, status = $2, updated_at = NOW()
			 WHERE id = $3 AND company_id = $4`,
			driven, models.DriverStatusActive, t.DriverID, companyID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SetRateDocURL stores the uploaded rate confirmation URL.
func (r *Repository) SetRateDocURL(ctx context.Context, companyID string, id uuid.UUID, url string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE trips SET rate_doc_url = $1, updated_at = NOW() WHERE id = $2 AND company_id = $3`,
		url, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a trip.
func (r *Repository) Delete(ctx context.Context, companyID string, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM trips WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
