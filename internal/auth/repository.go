package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drivesphere/backend/internal/models"
)

// ErrNotFound is returned when no user matches the lookup.
var ErrNotFound = errors.New("user not found")

// Repository handles user persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an auth repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const userColumns = `id, email, password_hash, first_name, last_name,
	COALESCE(phone,''), role, company_id, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName,
		&u.Phone, &u.Role, &u.CompanyID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByID returns a user by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetByEmail returns a user by email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// UpdateContact updates the user's editable profile fields.
func (r *Repository) UpdateContact(ctx context.Context, id uuid.UUID, firstName, lastName, phone string) error {
	const q = `UPDATE users SET first_name = $1, last_name = $2, phone = NULLIF($3,''), updated_at = NOW() WHERE id = $4`
	_, err := r.pool.Exec(ctx, q, firstName, lastName, phone, id)
	return err
}

// InsertUserTx inserts a user inside an existing transaction. Used by the
// signup and redemption flows so the account commits together with its
// profile record and invitation update.
func InsertUserTx(ctx context.Context, tx pgx.Tx, email, passwordHash, firstName, lastName, phone string, role models.Role, companyID *string) (*models.User, error) {
	const q = `INSERT INTO users (id, email, password_hash, first_name, last_name, phone, role, company_id)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, NULLIF($5,''), $6, $7)
		RETURNING ` + userColumns
	return scanUser(tx.QueryRow(ctx, q, email, passwordHash, firstName, lastName, phone, string(role), companyID))
}
