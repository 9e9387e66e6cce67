package emaillogs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drivesphere/backend/internal/models"
)

// Repository handles email_logs persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an email logs repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const logColumns = `id, invitation_id, company_id, email_type, recipient_email,
	COALESCE(subject,''), status, sent_at, COALESCE(error_message,''), created_at`

func scanLog(row pgx.Row) (*models.EmailLog, error) {
	var el models.EmailLog
	err := row.Scan(&el.ID, &el.InvitationID, &el.CompanyID, &el.EmailType,
		&el.RecipientEmail, &el.Subject, &el.Status, &el.SentAt,
		&el.ErrorMessage, &el.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &el, nil
}

// Record inserts a log row for a dispatch outcome.
func (r *Repository) Record(ctx context.Context, el *models.EmailLog) error {
	const q = `INSERT INTO email_logs (id, invitation_id, company_id, email_type,
		recipient_email, subject, status, sent_at, error_message)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, NULLIF($5,''), $6, $7, NULLIF($8,''))
		RETURNING id, created_at`
	var sentAt *time.Time
	if el.Status == models.EmailLogStatusSent {
		now := time.Now()
		sentAt = &now
		el.SentAt = sentAt
	}
	return r.pool.QueryRow(ctx, q, el.InvitationID, el.CompanyID, el.EmailType,
		el.RecipientEmail, el.Subject, el.Status, sentAt, el.ErrorMessage).
		Scan(&el.ID, &el.CreatedAt)
}

// ListByCompany returns email logs for one company, newest first.
func (r *Repository) ListByCompany(ctx context.Context, companyID string) ([]*models.EmailLog, error) {
	return r.list(ctx, `SELECT `+logColumns+` FROM email_logs WHERE company_id = $1 ORDER BY created_at DESC`, companyID)
}

// ListAll returns all email logs, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]*models.EmailLog, error) {
	return r.list(ctx, `SELECT `+logColumns+` FROM email_logs ORDER BY created_at DESC`)
}

// ListByInvitation returns logs for one invitation, newest first.
func (r *Repository) ListByInvitation(ctx context.Context, invitationID uuid.UUID) ([]*models.EmailLog, error) {
	return r.list(ctx, `SELECT `+logColumns+` FROM email_logs WHERE invitation_id = $1 ORDER BY created_at DESC`, invitationID)
}

func (r *Repository) list(ctx context.Context, q string, args ...interface{}) ([]*models.EmailLog, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*models.EmailLog
	for rows.Next() {
		el, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, el)
	}
	return list, rows.Err()
}
