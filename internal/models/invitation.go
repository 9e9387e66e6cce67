package models

import (
	"time"

	"github.com/google/uuid"
)

// InvitationStatus tracks an invitation from issue through redemption.
const (
	InvitationStatusPending = "pending"
	InvitationStatusSent    = "sent"
	InvitationStatusFailed  = "failed"
	InvitationStatusUsed    = "used"
)

// Invitation is a single-use token-bearing record granting signup rights
// for a role, and (for admin/driver invites) a company. Superadmin invites
// carry a package id instead of a company.
type Invitation struct {
	ID            uuid.UUID  `json:"id"`
	Token         string     `json:"token"`
	Email         string     `json:"email"`
	CompanyID     *string    `json:"company_id,omitempty"`
	Role          Role       `json:"role"`
	CustomMessage string     `json:"custom_message,omitempty"`
	PackageID     string     `json:"package_id,omitempty"`
	Status        string     `json:"status"`
	ErrorMessage  string     `json:"error_message,omitempty"`
	InvitedBy     *uuid.UUID `json:"invited_by,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UsedAt        *time.Time `json:"used_at,omitempty"`
	UsedBy        *uuid.UUID `json:"used_by,omitempty"`
}

// Redeemable reports whether the invitation can still be redeemed.
// Dispatch state does not gate redemption: a recipient who got the link
// can sign up even if the status update to "sent" failed.
func (i *Invitation) Redeemable() bool {
	return i.Status != InvitationStatusUsed
}
