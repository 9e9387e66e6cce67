package invitations

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/drivesphere/backend/internal/auth"
	"github.com/drivesphere/backend/internal/middleware"
	"github.com/drivesphere/backend/internal/models"
	"github.com/drivesphere/backend/pkg/queue"
	"github.com/drivesphere/backend/pkg/response"
	"github.com/drivesphere/backend/pkg/utils"
)

// Handler handles invitation HTTP endpoints.
type Handler struct {
	repo          *Repository
	queue         *queue.Queue
	jwt           *auth.JWTService
	signupBaseURL string
	logger        *zap.Logger
}

// NewHandler creates an invitations handler.
func NewHandler(repo *Repository, q *queue.Queue, jwt *auth.JWTService, signupBaseURL string, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, queue: q, jwt: jwt, signupBaseURL: signupBaseURL, logger: logger}
}

// CompanySignupLink builds the admin signup URL embedded in company invites.
func CompanySignupLink(base, companyID, token string) string {
	return base + "/signup?companyId=" + url.QueryEscape(companyID) + "&token=" + url.QueryEscape(token)
}

// DriverSignupLink builds the driver signup URL.
func DriverSignupLink(base, token string) string {
	return base + "/driver-signup?token=" + url.QueryEscape(token)
}

// SuperadminSignupLink builds the superadmin signup URL.
func SuperadminSignupLink(base, token string) string {
	return base + "/superadmin-signup?token=" + url.QueryEscape(token)
}

// IssueCompanyRequest is the body for POST /invitations.
type IssueCompanyRequest struct {
	CompanyName   string `json:"company_name" binding:"required"`
	Email         string `json:"email" binding:"required"`
	CustomMessage string `json:"custom_message"`
}

// IssueCompany handles POST /invitations. Superadmin only. Creates the
// company and its admin invitation atomically, then queues the invite email.
func (h *Handler) IssueCompany(c *gin.Context) {
	var req IssueCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if !utils.IsValidEmail(req.Email) {
		response.BadRequest(c, "Please Enter a valid email address")
		return
	}

	issuer := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	companyID, err := models.NewCompanyID()
	if err != nil {
		response.Internal(c, "failed to generate company id")
		return
	}
	company := &models.Company{
		ID:        companyID,
		Name:      req.CompanyName,
		CreatedBy: &issuer,
	}
	inv := &models.Invitation{
		Token:         uuid.New().String(),
		Email:         req.Email,
		CompanyID:     &company.ID,
		Role:          models.RoleAdmin,
		CustomMessage: req.CustomMessage,
		Status:        models.InvitationStatusPending,
		InvitedBy:     &issuer,
	}
	if err := h.repo.IssueCompanyInvite(c.Request.Context(), company, inv); err != nil {
		h.logger.Error("company invite insert failed", zap.Error(err))
		response.Internal(c, "failed to create invitation")
		return
	}

	h.dispatch(c, inv, queue.InviteEmailPayload{
		InvitationID:  inv.ID,
		EmailType:     models.EmailTypeCompanyInvite,
		Email:         inv.Email,
		CompanyName:   company.Name,
		InviteLink:    CompanySignupLink(h.signupBaseURL, company.ID, inv.Token),
		CustomMessage: inv.CustomMessage,
		Token:         inv.Token,
	})

	response.Created(c, gin.H{"invitation": inv, "company": company})
}

// IssueDriverRequest is the body for POST /driver-invites.
type IssueDriverRequest struct {
	Email         string `json:"email" binding:"required"`
	CustomMessage string `json:"custom_message"`
}

// IssueDriver handles POST /driver-invites. Admin only; the invite is scoped
// to the caller's own company.
func (h *Handler) IssueDriver(c *gin.Context) {
	var req IssueDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if !utils.IsValidEmail(req.Email) {
		response.BadRequest(c, "Please Enter a valid email address")
		return
	}

	companyID := c.GetString(middleware.ContextCompanyID)
	if companyID == "" {
		response.Forbidden(c, "caller has no company")
		return
	}
	companyName, err := h.repo.CompanyName(c.Request.Context(), companyID)
	if err != nil {
		response.Internal(c, "failed to load company")
		return
	}

	issuer := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	inv := &models.Invitation{
		Token:         uuid.New().String(),
		Email:         req.Email,
		CompanyID:     &companyID,
		Role:          models.RoleDriver,
		CustomMessage: req.CustomMessage,
		Status:        models.InvitationStatusPending,
		InvitedBy:     &issuer,
	}
	if err := h.repo.Create(c.Request.Context(), inv); err != nil {
		h.logger.Error("driver invite insert failed", zap.Error(err))
		response.Internal(c, "failed to create invitation")
		return
	}

	h.dispatch(c, inv, queue.InviteEmailPayload{
		InvitationID:  inv.ID,
		EmailType:     models.EmailTypeDriverInvite,
		Email:         inv.Email,
		CompanyName:   companyName,
		InviteLink:    DriverSignupLink(h.signupBaseURL, inv.Token),
		CustomMessage: inv.CustomMessage,
		Token:         inv.Token,
	})

	response.Created(c, inv)
}

// IssueSuperadminRequest is the body for POST /superadmin-invites.
type IssueSuperadminRequest struct {
	Email     string `json:"email" binding:"required"`
	PackageID string `json:"package_id" binding:"required"`
}

// IssueSuperadmin handles POST /superadmin-invites. Superadmin only.
func (h *Handler) IssueSuperadmin(c *gin.Context) {
	var req IssueSuperadminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if !utils.IsValidEmail(req.Email) {
		response.BadRequest(c, "Please Enter a valid email address")
		return
	}

	issuer := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	inv := &models.Invitation{
		Token:     uuid.New().String(),
		Email:     req.Email,
		Role:      models.RoleSuperadmin,
		PackageID: req.PackageID,
		Status:    models.InvitationStatusPending,
		InvitedBy: &issuer,
	}
	if err := h.repo.Create(c.Request.Context(), inv); err != nil {
		h.logger.Error("superadmin invite insert failed", zap.Error(err))
		response.Internal(c, "failed to create invitation")
		return
	}

	signupURL := SuperadminSignupLink(h.signupBaseURL, inv.Token)
	h.dispatch(c, inv, queue.InviteEmailPayload{
		InvitationID: inv.ID,
		EmailType:    models.EmailTypeSuperadminInvite,
		Email:        inv.Email,
		PackageID:    inv.PackageID,
		SignupURL:    signupURL,
		Token:        inv.Token,
	})

	response.Created(c, gin.H{"invitation": inv, "signup_url": signupURL})
}

// List handles GET /invitations. Optional ?status= filter.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.logger.Error("invitation list failed", zap.Error(err))
		response.Internal(c, "failed to list invitations")
		return
	}
	if list == nil {
		list = []models.Invitation{}
	}
	response.OK(c, list)
}

// Load handles GET /invitations/:token. Public: the signup page calls this to
// prefill email and company before the user submits. Loading never consumes
// the token.
func (h *Handler) Load(c *gin.Context) {
	inv, err := h.repo.GetByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Invalid or expired invite")
			return
		}
		response.Internal(c, "failed to load invitation")
		return
	}
	if !inv.Redeemable() {
		response.Conflict(c, "This invite has already been used")
		return
	}
	body := gin.H{
		"email": inv.Email,
		"role":  inv.Role,
	}
	if inv.CompanyID != nil {
		body["company_id"] = *inv.CompanyID
	}
	if inv.PackageID != "" {
		body["package_id"] = inv.PackageID
	}
	response.OK(c, body)
}

// RedeemRequest is the body for POST /invitations/:token/redeem.
type RedeemRequest struct {
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone"`
}

// Redeem handles POST /invitations/:token/redeem. Public. Creates the account
// for the invited email, claims the token, and returns a session token so the
// new user lands signed in.
func (h *Handler) Redeem(c *gin.Context) {
	token := c.Param("token")
	var req RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if !utils.IsValidPassword(req.Password) {
		response.BadRequest(c, "Password must be at least 6 characters")
		return
	}
	if req.Phone != "" && !utils.IsValidPhone(req.Phone) {
		response.BadRequest(c, "Please Enter a valid phone number")
		return
	}

	inv, err := h.repo.GetByToken(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Invalid or expired invite")
			return
		}
		response.Internal(c, "failed to load invitation")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		response.Internal(c, "failed to process password")
		return
	}

	result, err := h.repo.Redeem(c.Request.Context(), token, inv.Email, hash, req.FirstName, req.LastName, req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadyUsed):
			response.Conflict(c, "This invite has already been used")
		case errors.Is(err, ErrEmailInUse):
			response.Conflict(c, "An account with this email already exists")
		case errors.Is(err, ErrNotFound):
			response.NotFound(c, "Invalid or expired invite")
		default:
			h.logger.Error("invitation redeem failed", zap.Error(err), zap.String("token", token))
			response.Internal(c, "failed to redeem invitation")
		}
		return
	}

	user := result.User
	session, err := h.jwt.Generate(user.ID, user.Email, string(user.Role), user.CompanyID)
	if err != nil {
		// The account exists; let the user log in normally rather than failing
		// the whole signup.
		h.logger.Error("post-redeem token generation failed", zap.Error(err))
		response.Created(c, gin.H{"user": user.ToPublic()})
		return
	}
	c.JSON(http.StatusCreated, response.Body{Success: true, Data: auth.TokenResponse{Token: session, User: user.ToPublic()}})
}

// dispatch enqueues the invite email and flips the invitation to failed when
// the enqueue itself cannot happen. The worker owns the sent/failed flip for
// delivery.
func (h *Handler) dispatch(c *gin.Context, inv *models.Invitation, payload queue.InviteEmailPayload) {
	if err := h.queue.EnqueueInviteEmail(c.Request.Context(), payload); err != nil {
		h.logger.Error("invite email enqueue failed", zap.Error(err),
			zap.String("invitation_id", inv.ID.String()))
		if markErr := h.repo.MarkFailed(c.Request.Context(), inv.ID, "enqueue failed: "+err.Error()); markErr != nil {
			h.logger.Error("invitation status update failed", zap.Error(markErr))
		}
		inv.Status = models.InvitationStatusFailed
	}
}
