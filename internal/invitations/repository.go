package invitations

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drivesphere/backend/internal/auth"
	"github.com/drivesphere/backend/internal/models"
)

var (
	// ErrNotFound is returned when no invitation matches the token.
	ErrNotFound = errors.New("invitation not found")
	// ErrAlreadyUsed is returned when the token was already redeemed.
	ErrAlreadyUsed = errors.New("invitation already used")
	// ErrEmailInUse is returned when the signup email already has an account.
	ErrEmailInUse = errors.New("email already in use")
	// ErrNotFailed is returned when a resend targets an invitation whose
	// dispatch has not failed.
	ErrNotFailed = errors.New("invitation dispatch has not failed")
)

// Repository handles invitation persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an invitations repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const invitationColumns = `id, token, email, company_id, role,
	COALESCE(custom_message,''), COALESCE(package_id,''), status,
	COALESCE(error_message,''), invited_by, created_at, used_at, used_by`

func scanInvitation(row pgx.Row) (*models.Invitation, error) {
	var inv models.Invitation
	err := row.Scan(&inv.ID, &inv.Token, &inv.Email, &inv.CompanyID, &inv.Role,
		&inv.CustomMessage, &inv.PackageID, &inv.Status,
		&inv.ErrorMessage, &inv.InvitedBy, &inv.CreatedAt, &inv.UsedAt, &inv.UsedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// IssueCompanyInvite creates the company record and its admin invitation in
// a single transaction, so a dispatch or insert failure never leaves an
// orphaned company behind.
func (r *Repository) IssueCompanyInvite(ctx context.Context, company *models.Company, inv *models.Invitation) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		const companyQ = `INSERT INTO companies (id, name, email, created_by)
			VALUES ($1, $2, NULLIF($3,''), $4)
			RETURNING created_at, updated_at`
		if err := tx.QueryRow(ctx, companyQ, company.ID, company.Name, company.Email, company.CreatedBy).
			Scan(&company.CreatedAt, &company.UpdatedAt); err != nil {
			return err
		}
		return insertInvitation(ctx, tx, inv)
	})
}

// Create inserts an invitation that targets an existing company (driver
// invites) or no company at all (superadmin invites).
func (r *Repository) Create(ctx context.Context, inv *models.Invitation) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		return insertInvitation(ctx, tx, inv)
	})
}

func insertInvitation(ctx context.Context, tx pgx.Tx, inv *models.Invitation) error {
	const q = `INSERT INTO invitations (id, token, email, company_id, role, custom_message, package_id, status, invited_by)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, NULLIF($5,''), NULLIF($6,''), $7, $8)
		RETURNING id, created_at`
	return tx.QueryRow(ctx, q, inv.Token, inv.Email, inv.CompanyID, string(inv.Role),
		inv.CustomMessage, inv.PackageID, inv.Status, inv.InvitedBy).
		Scan(&inv.ID, &inv.CreatedAt)
}

// GetByToken returns an invitation by its token. Reading has no side effects.
func (r *Repository) GetByToken(ctx context.Context, token string) (*models.Invitation, error) {
	return scanInvitation(r.pool.QueryRow(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE token = $1`, token))
}

// GetByID returns an invitation by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Invitation, error) {
	return scanInvitation(r.pool.QueryRow(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE id = $1`, id))
}

// List returns invitations, optionally filtered by status, newest first.
func (r *Repository) List(ctx context.Context, status string) ([]models.Invitation, error) {
	q := `SELECT ` + invitationColumns + ` FROM invitations`
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
	var list []models.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *inv)
	}
	return list, rows.Err()
}

// MarkSent flips a pending invitation to sent after dispatch succeeds.
func (r *Repository) MarkSent(ctx context.Context, id uuid.UUID) error {
	const q = `UPDATE invitations SET status = $1 WHERE id = $2 AND status = $3`
	_, err := r.pool.Exec(ctx, q, models.InvitationStatusSent, id, models.InvitationStatusPending)
	return err
}

// MarkFailed records a dispatch failure and its error message.
func (r *Repository) MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error {
	const q = `UPDATE invitations SET status = $1, error_message = $2 WHERE id = $3 AND status = $4`
	_, err := r.pool.Exec(ctx, q, models.InvitationStatusFailed, errMsg, id, models.InvitationStatusPending)
	return err
}

// ResetPending puts a failed invitation back to pending ahead of a resend.
// Pending and sent invitations are left alone so a delivered invite cannot be
// re-queued, and a used token is never reset.
func (r *Repository) ResetPending(ctx context.Context, id uuid.UUID) error {
	const q = `UPDATE invitations SET status = $1, error_message = NULL
		WHERE id = $2 AND status = $3`
	tag, err := r.pool.Exec(ctx, q, models.InvitationStatusPending, id, models.InvitationStatusFailed)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	var status string
	err = r.pool.QueryRow(ctx, `SELECT status FROM invitations WHERE id = $1`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if status == models.InvitationStatusUsed {
		return ErrAlreadyUsed
	}
	return ErrNotFailed
}

// CompanyName returns the display name for a company id.
func (r *Repository) CompanyName(ctx context.Context, id string) (string, error) {
	var name string
	err := r.pool.QueryRow(ctx, `SELECT name FROM companies WHERE id = $1`, id).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return name, nil
}

// RedeemResult carries the outcome of a successful redemption.
type RedeemResult struct {
	User       *models.User
	Invitation *models.Invitation
}

// Redeem converts a valid token into an account. Everything runs in one
// transaction: the user insert, the role profile write, and the token claim.
// The claim is a single conditional UPDATE ("mark used only if currently
// unused"), so two concurrent redemptions of the same token cannot both
// succeed: the loser's UPDATE matches zero rows and the whole transaction
// rolls back, including its user insert.
func (r *Repository) Redeem(ctx context.Context, token, email, passwordHash, firstName, lastName, phone string) (*RedeemResult, error) {
	var result RedeemResult
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		inv, err := scanInvitation(tx.QueryRow(ctx,
			`SELECT `+invitationColumns+` FROM invitations WHERE token = $1`, token))
		if err != nil {
			return err
		}
		if !inv.Redeemable() {
			return ErrAlreadyUsed
		}

		user, err := auth.InsertUserTx(ctx, tx, email, passwordHash, firstName, lastName, phone, inv.Role, inv.CompanyID)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrEmailInUse
			}
			return err
		}

		if inv.Role == models.RoleDriver && inv.CompanyID != nil {
			const driverQ = `INSERT INTO drivers (id, company_id, full_name, email, license_number, status, user_id, invited_by)
				VALUES (gen_random_uuid(), $1, $2, $3, '', $4, $5, $6)`
			driverName := firstName
			if lastName != "" {
				driverName += " " + lastName
			}
			if _, err := tx.Exec(ctx, driverQ, *inv.CompanyID, driverName, email,
				models.DriverStatusActive, user.ID, inv.InvitedBy); err != nil {
				return err
			}
		}

		claimed, err := scanInvitation(tx.QueryRow(ctx,
			`UPDATE invitations SET status = $1, used_at = NOW(), used_by = $2
			 WHERE token = $3 AND status <> $1
			 RETURNING `+invitationColumns, models.InvitationStatusUsed, user.ID, token))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				// Lost the race: another redemption claimed the token first.
				return ErrAlreadyUsed
			}
			return err
		}

		result.User = user
		result.Invitation = claimed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
