package requests

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drivesphere/backend/internal/models"
)

var (
	// ErrNotFound is returned when no request matches the lookup.
	ErrNotFound = errors.New("company request not found")
	// ErrBadTransition is returned for a state change the pipeline forbids.
	ErrBadTransition = errors.New("invalid status transition")
)

// Repository handles company request persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a company requests repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const requestColumns = `id, company_name, COALESCE(dot_number,''), COALESCE(ein,''),
	num_employees, COALESCE(street,''), COALESCE(city,''), COALESCE(state,''),
	COALESCE(zip,''), contact_first_name, COALESCE(contact_last_name,''),
	contact_email, COALESCE(contact_phone,''), status, created_at, updated_at`

func scanRequest(row pgx.Row) (*models.CompanyRequest, error) {
	var cr models.CompanyRequest
	err := row.Scan(&cr.ID, &cr.CompanyName, &cr.DOTNumber, &cr.EIN,
		&cr.NumEmployees, &cr.Street, &cr.City, &cr.State, &cr.Zip,
		&cr.RequestedBy.FirstName, &cr.RequestedBy.LastName,
		&cr.RequestedBy.Email, &cr.RequestedBy.Phone,
		&cr.Status, &cr.CreatedAt, &cr.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cr, nil
}

// Create inserts a new request with status pending.
func (r *Repository) Create(ctx context.Context, cr *models.CompanyRequest) error {
	const q = `INSERT INTO company_requests
		(id, company_name, dot_number, ein, num_employees, street, city, state, zip,
		 contact_first_name, contact_last_name, contact_email, contact_phone, status)
		VALUES (gen_random_uuid(), $1, NULLIF($2,''), NULLIF($3,''), $4, NULLIF($5,''),
		 NULLIF($6,''), NULLIF($7,''), NULLIF($8,''), $9, NULLIF($10,''), $11, NULLIF($12,''), $13)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, cr.CompanyName, cr.DOTNumber, cr.EIN,
		cr.NumEmployees, cr.Street, cr.City, cr.State, cr.Zip,
		cr.RequestedBy.FirstName, cr.RequestedBy.LastName,
		cr.RequestedBy.Email, cr.RequestedBy.Phone, string(cr.Status)).
		Scan(&cr.ID, &cr.CreatedAt, &cr.UpdatedAt)
}

// GetByID returns a request by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.CompanyRequest, error) {
	return scanRequest(r.pool.QueryRow(ctx,
		`SELECT `+requestColumns+` FROM company_requests WHERE id = $1`, id))
}

// List returns requests, optionally filtered by status, newest first.
func (r *Repository) List(ctx context.Context, status string) ([]models.CompanyRequest, error) {
	q := `SELECT ` + requestColumns + ` FROM company_requests`
	var args []interface{}
	if status != "" {
		q += ` WHERE status = $1`
		args = append(args, status)
	}
	q += ` ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.CompanyRequest
	for rows.Next() {
		cr, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *cr)
	}
	return list, rows.Err()
}

// Update edits the request's details without touching its status.
func (r *Repository) Update(ctx context.Context, cr *models.CompanyRequest) error {
	const q = `UPDATE company_requests SET company_name = $1, dot_number = NULLIF($2,''),
		ein = NULLIF($3,''), num_employees = $4, street = NULLIF($5,''),
		city = NULLIF($6,''), state = NULLIF($7,''), zip = NULLIF($8,''),
		contact_first_name = $9, contact_last_name = NULLIF($10,''),
		contact_email = $11, contact_phone = NULLIF($12,''), updated_at = NOW()
		WHERE id = $13
		RETURNING updated_at`
	err := r.pool.QueryRow(ctx, q, cr.CompanyName, cr.DOTNumber, cr.EIN,
		cr.NumEmployees, cr.Street, cr.City, cr.State, cr.Zip,
		cr.RequestedBy.FirstName, cr.RequestedBy.LastName,
		cr.RequestedBy.Email, cr.RequestedBy.Phone, cr.ID).
		Scan(&cr.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// Advance moves a request to the next status. The transition check and the
// write happen against the same row version: the UPDATE matches only when the
// stored status still allows the move, so concurrent advances cannot skip or
// reverse a step.
func (r *Repository) Advance(ctx context.Context, id uuid.UUID, next models.RequestStatus) (*models.CompanyRequest, error) {
	var updated *models.CompanyRequest
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		cur, err := scanRequest(tx.QueryRow(ctx,
			`SELECT `+requestColumns+` FROM company_requests WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return err
		}
		if !cur.Status.CanTransition(next) {
			return ErrBadTransition
		}
		updated, err = scanRequest(tx.QueryRow(ctx,
			`UPDATE company_requests SET status = $1, updated_at = NOW()
			 WHERE id = $2 AND status = $3
			 RETURNING `+requestColumns, string(next), id, string(cur.Status)))
		if errors.Is(err, ErrNotFound) {
			return ErrBadTransition
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
