package drivers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drivesphere/backend/internal/models"
)

// ErrNotFound is returned when no driver matches the lookup.
var ErrNotFound = errors.New("driver not found")

// Repository handles driver persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a drivers repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const driverColumns = `id, company_id, full_name, COALESCE(phone,''), COALESCE(email,''),
	COALESCE(address,''), COALESCE(ssn,''), license_number, license_expiry, hire_date,
	total_miles, status, COALESCE(driver_photo_url,''), COALESCE(license_front_url,''),
	COALESCE(license_back_url,''), user_id, invited_by, created_at, updated_at`

func scanDriver(row pgx.Row) (*models.Driver, error) {
	var d models.Driver
	err := row.Scan(&d.ID, &d.CompanyID, &d.FullName, &d.Phone, &d.Email,
		&d.Address, &d.SSN, &d.LicenseNumber, &d.LicenseExpiry, &d.HireDate,
		&d.TotalMiles, &d.Status, &d.DriverPhotoURL, &d.LicenseFrontURL,
		&d.LicenseBackURL, &d.UserID, &d.InvitedBy, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// Create inserts a driver.
func (r *Repository) Create(ctx context.Context, d *models.Driver) error {
	const q = `INSERT INTO drivers (id, company_id, full_name, phone, email, address, ssn,
		license_number, license_expiry, hire_date, total_miles, status)
		VALUES (gen_random_uuid(), $1, $2, NULLIF($3,''), NULLIF($4,''), NULLIF($5,''),
		 NULLIF($6,''), $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, d.CompanyID, d.FullName, d.Phone, d.Email,
		d.Address, d.SSN, d.LicenseNumber, d.LicenseExpiry, d.HireDate,
		d.TotalMiles, d.Status).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

// GetByID returns a driver scoped to a company.
func (r *Repository) GetByID(ctx context.Context, companyID string, id uuid.UUID) (*models.Driver, error) {
	return scanDriver(r.pool.QueryRow(ctx,
		`SELECT `+driverColumns+` FROM drivers WHERE id = $1 AND company_id = $2`, id, companyID))
}

// GetByUserID returns the driver profile linked to a console account.
func (r *Repository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Driver, error) {
	return scanDriver(r.pool.QueryRow(ctx,
		`SELECT `+driverColumns+` FROM drivers WHERE user_id = $1`, userID))
}

// List returns a company's drivers, newest first.
func (r *Repository) List(ctx context.Context, companyID string) ([]models.Driver, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+driverColumns+` FROM drivers WHERE company_id = $1 ORDER BY created_at DESC`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *d)
	}
	return list, rows.Err()
}

// Update edits a driver's profile fields.
func (r *Repository) Update(ctx context.Context, d *models.Driver) error {
	const q = `UPDATE drivers SET full_name = $1, phone = NULLIF($2,''), email = NULLIF($3,''),
		address = NULLIF($4,''), ssn = NULLIF($5,''), license_number = $6,
		license_expiry = $7, hire_date = $8, total_miles = $9, status = $10, updated_at = NOW()
		WHERE id = $11 AND company_id = $12
		RETURNING updated_at`
	err := r.pool.QueryRow(ctx, q, d.FullName, d.Phone, d.Email, d.Address, d.SSN,
		d.LicenseNumber, d.LicenseExpiry, d.HireDate, d.TotalMiles, d.Status,
		d.ID, d.CompanyID).Scan(&d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// SetDocumentURL stores an uploaded document URL on the driver row.
func (r *Repository) SetDocumentURL(ctx context.Context, companyID string, id uuid.UUID, column, url string) error {
	var q string
	switch column {
	case "driver_photo_url", "license_front_url", "license_back_url":
		q = `UPDATE drivers SET ` + column + ` = $1, updated_at = NOW() WHERE id = $2 AND company_id = $3`
	default:
		return errors.New("unknown document column")
	}
	tag, err := r.pool.Exec(ctx, q, url, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a driver.
func (r *Repository) Delete(ctx context.Context, companyID string, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM drivers WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
