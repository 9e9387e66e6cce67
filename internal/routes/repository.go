package routes

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drivesphere/backend/internal/models"
)

// ErrNotFound is returned when no route matches the lookup.
var ErrNotFound = errors.New("route not found")

// Repository handles route persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a routes repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const routeColumns = `id, company_id, route_name, COALESCE(pickup_address,''),
	pickup_city, pickup_state, COALESCE(dropoff_address,''), dropoff_city,
	dropoff_state, created_at, updated_at`

func scanRoute(row pgx.Row) (*models.Route, error) {
	var rt models.Route
	err := row.Scan(&rt.ID, &rt.CompanyID, &rt.RouteName, &rt.PickupAddress,
		&rt.PickupCity, &rt.PickupState, &rt.DropoffAddress, &rt.DropoffCity,
		&rt.DropoffState, &rt.CreatedAt, &rt.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rt, nil
}

const insertRouteQuery = `INSERT INTO routes (id, company_id, route_name, pickup_address,
	pickup_city, pickup_state, dropoff_address, dropoff_city, dropoff_state)
	VALUES (gen_random_uuid(), $1, $2, NULLIF($3,''), $4, $5, NULLIF($6,''), $7, $8)
	RETURNING id, created_at, updated_at`

// Create inserts a route.
func (r *Repository) Create(ctx context.Context, rt *models.Route) error {
	return r.pool.QueryRow(ctx, insertRouteQuery, rt.CompanyID, rt.RouteName,
		rt.PickupAddress, rt.PickupCity, rt.PickupState,
		rt.DropoffAddress, rt.DropoffCity, rt.DropoffState).
		Scan(&rt.ID, &rt.CreatedAt, &rt.UpdatedAt)
}

// InsertRouteTx inserts a route inside an existing transaction. The trips
// repository uses it for inline route creation.
func InsertRouteTx(ctx context.Context, tx pgx.Tx, rt *models.Route) error {
	return tx.QueryRow(ctx, insertRouteQuery, rt.CompanyID, rt.RouteName,
		rt.PickupAddress, rt.PickupCity, rt.PickupState,
		rt.DropoffAddress, rt.DropoffCity, rt.DropoffState).
		Scan(&rt.ID, &rt.CreatedAt, &rt.UpdatedAt)
}

// GetByID returns a route scoped to a company.
func (r *Repository) GetByID(ctx context.Context, companyID string, id uuid.UUID) (*models.Route, error) {
	return scanRoute(r.pool.QueryRow(ctx,
		`SELECT `+routeColumns+` FROM routes WHERE id = $1 AND company_id = $2`, id, companyID))
}

// List returns a company's routes, newest first.
func (r *Repository) List(ctx context.Context, companyID string) ([]models.Route, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+routeColumns+` FROM routes WHERE company_id = $1 ORDER BY created_at DESC`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Route
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *rt)
	}
	return list, rows.Err()
}

// Update edits a route.
func (r *Repository) Update(ctx context.Context, rt *models.Route) error {
	const q = `UPDATE routes SET route_name = $1, pickup_address = NULLIF($2,''),
		pickup_city = $3, pickup_state = $4, dropoff_address = NULLIF($5,''),
		dropoff_city = $6, dropoff_state = $7, updated_at = NOW()
		WHERE id = $8 AND company_id = $9
		RETURNING updated_at`
	err := r.pool.QueryRow(ctx, q, rt.RouteName, rt.PickupAddress, rt.PickupCity,
		rt.PickupState, rt.DropoffAddress, rt.DropoffCity, rt.DropoffState,
		rt.ID, rt.CompanyID).Scan(&rt.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// Delete removes a route.
func (r *Repository) Delete(ctx context.Context, companyID string, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM routes WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
