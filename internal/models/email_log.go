package models

import (
	"time"

	"github.com/google/uuid"
)

// EmailType identifies what kind of invite email was dispatched.
const (
	EmailTypeCompanyInvite    = "company_invite"
	EmailTypeDriverInvite     = "driver_invite"
	EmailTypeSuperadminInvite = "superadmin_invite"
)

// EmailLogStatus for delivery.
const (
	EmailLogStatusPending = "pending"
	EmailLogStatusSent    = "sent"
	EmailLogStatusFailed  = "failed"
)

// EmailLog records invite emails dispatched by the worker.
type EmailLog struct {
	ID             uuid.UUID  `json:"id"`
	InvitationID   *uuid.UUID `json:"invitation_id,omitempty"`
	CompanyID      *string    `json:"company_id,omitempty"`
	EmailType      string     `json:"email_type"`
	RecipientEmail string     `json:"recipient_email"`
	Subject        string     `json:"subject,omitempty"`
	Status         string     `json:"status"`
	SentAt         *time.Time `json:"sent_at,omitempty"`
	ErrorMessage   string     `json:"error_message,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
