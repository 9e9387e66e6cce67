package companies

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drivesphere/backend/internal/auth"
	"github.com/drivesphere/backend/internal/models"
)

var (
	// ErrNotFound is returned when no company matches the lookup.
	ErrNotFound = errors.New("company not found")
	// ErrEmailInUse is returned when the signup email already has an account.
	ErrEmailInUse = errors.New("email already in use")
)

// Repository handles company persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a companies repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const companyColumns = `id, name, COALESCE(email,''), COALESCE(dot_number,''),
	COALESCE(ein,''), num_employees, COALESCE(street,''), COALESCE(city,''),
	COALESCE(state,''), COALESCE(zip,''), created_by, created_at, updated_at`

func scanCompany(row pgx.Row) (*models.Company, error) {
	var co models.Company
	err := row.Scan(&co.ID, &co.Name, &co.Email, &co.DOTNumber, &co.EIN,
		&co.NumEmployees, &co.Street, &co.City, &co.State, &co.Zip,
		&co.CreatedBy, &co.CreatedAt, &co.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &co, nil
}

// GetByID returns a company by its code.
func (r *Repository) GetByID(ctx context.Context, id string) (*models.Company, error) {
	return scanCompany(r.pool.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
}

// List returns all companies, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Company, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+companyColumns+` FROM companies ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Company
	for rows.Next() {
		co, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *co)
	}
	return list, rows.Err()
}

// Update edits the company profile fields.
func (r *Repository) Update(ctx context.Context, co *models.Company) error {
	const q = `UPDATE companies SET name = $1, email = NULLIF($2,''),
		dot_number = NULLIF($3,''), ein = NULLIF($4,''), num_employees = $5,
		street = NULLIF($6,''), city = NULLIF($7,''), state = NULLIF($8,''),
		zip = NULLIF($9,''), updated_at = NOW()
		WHERE id = $10
		RETURNING updated_at`
	err := r.pool.QueryRow(ctx, q, co.Name, co.Email, co.DOTNumber, co.EIN,
		co.NumEmployees, co.Street, co.City, co.State, co.Zip, co.ID).
		Scan(&co.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// SignupAdmin creates the company and its admin account in one transaction.
// A duplicate signup email aborts the whole thing, so no company row is left
// behind without an owner.
func (r *Repository) SignupAdmin(ctx context.Context, co *models.Company, email, passwordHash, firstName, lastName, phone string) (*models.User, error) {
	var user *models.User
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		const q = `INSERT INTO companies (id, name, email, dot_number, ein, num_employees, street, city, state, zip)
			VALUES ($1, $2, NULLIF($3,''), NULLIF($4,''), NULLIF($5,''), $6, NULLIF($7,''), NULLIF($8,''), NULLIF($9,''), NULLIF($10,''))
			RETURNING created_at, updated_at`
		if err := tx.QueryRow(ctx, q, co.ID, co.Name, co.Email, co.DOTNumber, co.EIN,
			co.NumEmployees, co.Street, co.City, co.State, co.Zip).
			Scan(&co.CreatedAt, &co.UpdatedAt); err != nil {
			return err
		}

		u, err := auth.InsertUserTx(ctx, tx, email, passwordHash, firstName, lastName, phone, models.RoleAdmin, &co.ID)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return ErrEmailInUse
			}
			return err
		}
		user = u

		const ownerQ = `UPDATE companies SET created_by = $1 WHERE id = $2`
		_, err = tx.Exec(ctx, ownerQ, u.ID, co.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
