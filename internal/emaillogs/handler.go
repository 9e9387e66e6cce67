package emaillogs

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/drivesphere/backend/internal/invitations"
	"github.com/drivesphere/backend/internal/models"
	"github.com/drivesphere/backend/pkg/queue"
	"github.com/drivesphere/backend/pkg/response"
)

// Handler handles email log HTTP endpoints.
type Handler struct {
	repo          *Repository
	invites       *invitations.Repository
	queue         *queue.Queue
	signupBaseURL string
	logger        *zap.Logger
}

// NewHandler creates an email logs handler.
func NewHandler(repo *Repository, invites *invitations.Repository, q *queue.Queue, signupBaseURL string, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, invites: invites, queue: q, signupBaseURL: signupBaseURL, logger: logger}
}

// ListByCompany handles GET /companies/:id/emails.
func (h *Handler) ListByCompany(c *gin.Context) {
	logs, err := h.repo.ListByCompany(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("email log list failed", zap.Error(err))
		response.Internal(c, "failed to load email logs")
		return
	}
	if logs == nil {
		logs = []*models.EmailLog{}
	}
	response.OK(c, logs)
}

// ListAll handles GET /emails. Superadmin only.
func (h *Handler) ListAll(c *gin.Context) {
	logs, err := h.repo.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("email log list failed", zap.Error(err))
		response.Internal(c, "failed to load email logs")
		return
	}
	if logs == nil {
		logs = []*models.EmailLog{}
	}
	response.OK(c, logs)
}

// ResendRequest is the body for POST /emails/resend.
type ResendRequest struct {
	InvitationID string `json:"invitation_id" binding:"required,uuid"`
}

// Resend handles POST /emails/resend. Superadmin only. Re-enqueues the invite
// email for an invitation whose dispatch failed; a used token cannot be resent.
func (h *Handler) Resend(c *gin.Context) {
	var body ResendRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invitation_id required")
		return
	}
	invitationID, err := uuid.Parse(body.InvitationID)
	if err != nil {
		response.BadRequest(c, "invalid invitation id")
		return
	}

	ctx := c.Request.Context()
	inv, err := h.invites.GetByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, invitations.ErrNotFound) {
			response.NotFound(c, "Invitation not found")
			return
		}
		response.Internal(c, "failed to load invitation")
		return
	}
	if err := h.invites.ResetPending(ctx, inv.ID); err != nil {
		switch {
		case errors.Is(err, invitations.ErrAlreadyUsed):
			response.Conflict(c, "This invite has already been used")
		case errors.Is(err, invitations.ErrNotFailed):
			response.Conflict(c, "Only failed invitations can be resent")
		case errors.Is(err, invitations.ErrNotFound):
			response.NotFound(c, "Invitation not found")
		default:
			response.Internal(c, "failed to reset invitation")
		}
		return
	}

	payload := queue.InviteEmailPayload{
		InvitationID:  inv.ID,
		Email:         inv.Email,
		CustomMessage: inv.CustomMessage,
		Token:         inv.Token,
	}
	switch inv.Role {
	case models.RoleAdmin:
		payload.EmailType = models.EmailTypeCompanyInvite
		if inv.CompanyID != nil {
			name, err := h.invites.CompanyName(ctx, *inv.CompanyID)
			if err == nil {
				payload.CompanyName = name
			}
			payload.InviteLink = invitations.CompanySignupLink(h.signupBaseURL, *inv.CompanyID, inv.Token)
		}
	case models.RoleDriver:
		payload.EmailType = models.EmailTypeDriverInvite
		if inv.CompanyID != nil {
			name, err := h.invites.CompanyName(ctx, *inv.CompanyID)
			if err == nil {
				payload.CompanyName = name
			}
		}
		payload.InviteLink = invitations.DriverSignupLink(h.signupBaseURL, inv.Token)
	case models.RoleSuperadmin:
		payload.EmailType = models.EmailTypeSuperadminInvite
		payload.PackageID = inv.PackageID
		payload.SignupURL = invitations.SuperadminSignupLink(h.signupBaseURL, inv.Token)
	}

	if err := h.queue.EnqueueInviteEmail(ctx, payload); err != nil {
		h.logger.Error("resend enqueue failed", zap.Error(err), zap.String("invitation_id", inv.ID.String()))
		response.Internal(c, "failed to queue email")
		return
	}
	response.OK(c, gin.H{"message": "resend queued"})
}
