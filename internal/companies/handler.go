package companies

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/drivesphere/backend/internal/auth"
	"github.com/drivesphere/backend/internal/middleware"
	"github.com/drivesphere/backend/internal/models"
	"github.com/drivesphere/backend/pkg/response"
	"github.com/drivesphere/backend/pkg/utils"
)

// Handler handles company HTTP endpoints.
type Handler struct {
	repo   *Repository
	jwt    *auth.JWTService
	logger *zap.Logger
}

// NewHandler creates a companies handler.
func NewHandler(repo *Repository, jwt *auth.JWTService, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, jwt: jwt, logger: logger}
}

// SignupAdminRequest is the body for POST /signup/admin.
type SignupAdminRequest struct {
	CompanyName  string `json:"company_name" binding:"required"`
	DOTNumber    string `json:"dot_number"`
	EIN          string `json:"employer_identification_number"`
	NumEmployees *int   `json:"num_employees"`
	Street       string `json:"street"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	Email        string `json:"email" binding:"required"`
	Phone        string `json:"phone"`
	Password     string `json:"password" binding:"required"`
}

// SignupAdmin handles POST /signup/admin. Public self-serve onboarding:
// creates the company and its admin account together, then returns a session
// token so the new admin lands signed in.
func (h *Handler) SignupAdmin(c *gin.Context) {
	var req SignupAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if strings.TrimSpace(req.CompanyName) == "" {
		response.BadRequest(c, "Company name is required")
		return
	}
	if !utils.IsValidEmail(req.Email) {
		response.BadRequest(c, "Please Enter a valid email address")
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
	if req.NumEmployees != nil && *req.NumEmployees < 0 {
		response.BadRequest(c, "Number of employees must be a whole number")
		return
	}

	companyID, err := models.NewCompanyID()
	if err != nil {
		response.Internal(c, "failed to generate company id")
		return
	}
	co := &models.Company{
		ID:           companyID,
		Name:         strings.TrimSpace(req.CompanyName),
		Email:        req.Email,
		DOTNumber:    req.DOTNumber,
		EIN:          req.EIN,
		NumEmployees: req.NumEmployees,
		Street:       req.Street,
		City:         req.City,
		State:        req.State,
		Zip:          req.Zip,
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		response.Internal(c, "failed to process password")
		return
	}

	user, err := h.repo.SignupAdmin(c.Request.Context(), co, req.Email, hash, req.FirstName, req.LastName, req.Phone)
	if err != nil {
		if errors.Is(err, ErrEmailInUse) {
			response.Conflict(c, "An account with this email already exists")
			return
		}
		h.logger.Error("admin signup failed", zap.Error(err))
		response.Internal(c, "failed to create account")
		return
	}

	token, err := h.jwt.Generate(user.ID, user.Email, string(user.Role), user.CompanyID)
	if err != nil {
		h.logger.Error("post-signup token generation failed", zap.Error(err))
		response.Created(c, gin.H{"user": user.ToPublic(), "company": co})
		return
	}
	response.Created(c, gin.H{"token": token, "user": user.ToPublic(), "company": co})
}

// List handles GET /companies. Superadmin only.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.logger.Error("company list failed", zap.Error(err))
		response.Internal(c, "failed to list companies")
		return
	}
	if list == nil {
		list = []models.Company{}
	}
	response.OK(c, list)
}

// Get handles GET /companies/:id. Superadmins see any company; admins and
// drivers only their own.
func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if !callerCanAccess(c, id) {
		response.Forbidden(c, "not authorized for this company")
		return
	}
	co, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Company not found")
			return
		}
		response.Internal(c, "failed to load company")
		return
	}
	response.OK(c, co)
}

// UpdateRequest is the body for PATCH /companies/:id.
type UpdateRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email"`
	DOTNumber    string `json:"dot_number"`
	EIN          string `json:"employer_identification_number"`
	NumEmployees *int   `json:"num_employees"`
	Street       string `json:"street"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
}

// Update handles PATCH /companies/:id. Admin (own company) or superadmin.
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if !callerCanAccess(c, id) {
		response.Forbidden(c, "not authorized for this company")
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.Email != "" && !utils.IsValidEmail(req.Email) {
		response.BadRequest(c, "Please Enter a valid email address")
		return
	}
	co := &models.Company{
		ID:           id,
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		DOTNumber:    req.DOTNumber,
		EIN:          req.EIN,
		NumEmployees: req.NumEmployees,
		Street:       req.Street,
		City:         req.City,
		State:        req.State,
		Zip:          req.Zip,
	}
	if err := h.repo.Update(c.Request.Context(), co); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Company not found")
			return
		}
		h.logger.Error("company update failed", zap.Error(err))
		response.Internal(c, "failed to update company")
		return
	}
	updated, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Internal(c, "failed to load company")
		return
	}
	response.OK(c, updated)
}

// callerCanAccess reports whether the caller may touch the company: superadmins
// always, everyone else only within their own company scope.
func callerCanAccess(c *gin.Context, companyID string) bool {
	if c.GetString(middleware.ContextUserRole) == string(models.RoleSuperadmin) {
		return true
	}
	return c.GetString(middleware.ContextCompanyID) == companyID
}
