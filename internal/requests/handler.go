package requests

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/drivesphere/backend/internal/models"
	"github.com/drivesphere/backend/pkg/response"
	"github.com/drivesphere/backend/pkg/utils"
)

// Handler handles company request HTTP endpoints.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates a company requests handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// CreateRequest is the body for POST /company-requests.
type CreateRequest struct {
	CompanyName  string `json:"company_name" binding:"required"`
	DOTNumber    string `json:"dot_number"`
	EIN          string `json:"employer_identification_number"`
	NumEmployees *int   `json:"num_employees"`
	Street       string `json:"street"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name"`
	Email        string `json:"email" binding:"required"`
	Phone        string `json:"phone"`
}

// Create handles POST /company-requests. Public: a prospect asks to be
// onboarded; the request enters the review pipeline as pending.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
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
	if req.Phone != "" && !utils.IsValidPhone(req.Phone) {
		response.BadRequest(c, "Please Enter a valid phone number")
		return
	}
	if req.NumEmployees != nil && *req.NumEmployees < 0 {
		response.BadRequest(c, "Number of employees must be a whole number")
		return
	}

	cr := &models.CompanyRequest{
		CompanyName:  strings.TrimSpace(req.CompanyName),
		DOTNumber:    req.DOTNumber,
		EIN:          req.EIN,
		NumEmployees: req.NumEmployees,
		Street:       req.Street,
		City:         req.City,
		State:        req.State,
		Zip:          req.Zip,
		RequestedBy: models.RequestContact{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Phone:     req.Phone,
		},
		Status: models.RequestStatusPending,
	}
	if err := h.repo.Create(c.Request.Context(), cr); err != nil {
		h.logger.Error("company request insert failed", zap.Error(err))
		response.Internal(c, "failed to submit request")
		return
	}
	response.Created(c, cr)
}

// List handles GET /company-requests. Superadmin only; optional ?status= filter.
func (h *Handler) List(c *gin.Context) {
	status := c.Query("status")
	if status != "" {
		if _, ok := models.ParseRequestStatus(status); !ok {
			response.BadRequest(c, "unknown status filter")
			return
		}
	}
	list, err := h.repo.List(c.Request.Context(), status)
	if err != nil {
		h.logger.Error("company request list failed", zap.Error(err))
		response.Internal(c, "failed to list requests")
		return
	}
	if list == nil {
		list = []models.CompanyRequest{}
	}
	response.OK(c, list)
}

// Update handles PATCH /company-requests/:id. Superadmin only; edits the
// request's details, never its status.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid request id")
		return
	}
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if !utils.IsValidEmail(req.Email) {
		response.BadRequest(c, "Please Enter a valid email address")
		return
	}

	cr, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Request not found")
			return
		}
		response.Internal(c, "failed to load request")
		return
	}
	cr.CompanyName = strings.TrimSpace(req.CompanyName)
	cr.DOTNumber = req.DOTNumber
	cr.EIN = req.EIN
	cr.NumEmployees = req.NumEmployees
	cr.Street = req.Street
	cr.City = req.City
	cr.State = req.State
	cr.Zip = req.Zip
	cr.RequestedBy = models.RequestContact{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}
	if err := h.repo.Update(c.Request.Context(), cr); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Request not found")
			return
		}
		h.logger.Error("company request update failed", zap.Error(err))
		response.Internal(c, "failed to update request")
		return
	}
	response.OK(c, cr)
}

// AdvanceRequest is the body for POST /company-requests/:id/advance.
type AdvanceRequest struct {
	Status string `json:"status" binding:"required"`
}

// Advance handles POST /company-requests/:id/advance. Superadmin only. Moves
// the request forward through the review pipeline; backward or skipping
// transitions are rejected.
func (h *Handler) Advance(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid request id")
		return
	}
	var req AdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	next, ok := models.ParseRequestStatus(req.Status)
	if !ok {
		response.BadRequest(c, "unknown status")
		return
	}
	cr, err := h.repo.Advance(c.Request.Context(), id, next)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(c, "Request not found")
		case errors.Is(err, ErrBadTransition):
			response.BadRequest(c, "invalid status transition")
		default:
			h.logger.Error("company request advance failed", zap.Error(err))
			response.Internal(c, "failed to advance request")
		}
		return
	}
	response.OK(c, cr)
}
