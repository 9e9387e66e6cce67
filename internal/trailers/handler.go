package trailers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/drivesphere/backend/internal/models"
	"github.com/drivesphere/backend/pkg/response"
	"github.com/drivesphere/backend/pkg/utils"
)

// Handler handles trailer HTTP endpoints.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates a trailers handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// TrailerRequest is the body for create and update.
type TrailerRequest struct {
	TrailerNumber   string     `json:"trailer_number" binding:"required"`
	TrailerType     string     `json:"trailer_type" binding:"required"`
	Make            string     `json:"make" binding:"required"`
	Model           string     `json:"model" binding:"required"`
	Year            int        `json:"year" binding:"required"`
	VIN             string     `json:"vin"`
	PlateNumber     string     `json:"plate_number" binding:"required"`
	Length          string     `json:"length"`
	Capacity        string     `json:"capacity"`
	LastMaintenance *time.Time `json:"last_maintenance"`
	LastInspection  *time.Time `json:"last_inspection"`
	InsuranceExpiry *time.Time `json:"insurance_expiry"`
	AssignedTruckID *uuid.UUID `json:"assigned_truck_id"`
}

// validate checks field formats and the date windows: maintenance and
// inspection must not be in the future, insurance must not be expired.
func (req *TrailerRequest) validate() string {
	if !utils.IsValidYear(req.Year) {
		return "Year must be a 4 digit year"
	}
	today := time.Now().Truncate(24 * time.Hour)
	if req.LastMaintenance != nil && req.LastMaintenance.After(time.Now()) {
		return "Last maintenance date cannot be in the future"
	}
	if req.LastInspection != nil && req.LastInspection.After(time.Now()) {
		return "Last inspection date cannot be in the future"
	}
	if req.InsuranceExpiry != nil && req.InsuranceExpiry.Before(today) {
		return "Insurance expiry date cannot be in the past"
	}
	return ""
}

// Create handles POST /companies/:id/trailers.
func (h *Handler) Create(c *gin.Context) {
	var req TrailerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		response.BadRequest(c, msg)
		return
	}
	t := &models.Trailer{
		CompanyID:       c.Param("id"),
		TrailerNumber:   req.TrailerNumber,
		TrailerType:     req.TrailerType,
		Make:            req.Make,
		Model:           req.Model,
		Year:            req.Year,
		VIN:             req.VIN,
		PlateNumber:     req.PlateNumber,
		Length:          req.Length,
		Capacity:        req.Capacity,
		LastMaintenance: req.LastMaintenance,
		LastInspection:  req.LastInspection,
		InsuranceExpiry: req.InsuranceExpiry,
		AssignedTruckID: req.AssignedTruckID,
	}
	if err := h.repo.Create(c.Request.Context(), t); err != nil {
		h.logger.Error("trailer insert failed", zap.Error(err))
		response.Internal(c, "failed to create trailer")
		return
	}
	response.Created(c, t)
}

// List handles GET /companies/:id/trailers.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("trailer list failed", zap.Error(err))
		response.Internal(c, "failed to list trailers")
		return
	}
	if list == nil {
		list = []models.Trailer{}
	}
	response.OK(c, list)
}

// Get handles GET /companies/:id/trailers/:trailerId.
func (h *Handler) Get(c *gin.Context) {
	trailerID, err := uuid.Parse(c.Param("trailerId"))
	if err != nil {
		response.BadRequest(c, "invalid trailer id")
		return
	}
	t, err := h.repo.GetByID(c.Request.Context(), c.Param("id"), trailerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Trailer not found")
			return
		}
		response.Internal(c, "failed to load trailer")
		return
	}
	response.OK(c, t)
}

// Update handles PUT /companies/:id/trailers/:trailerId.
func (h *Handler) Update(c *gin.Context) {
	trailerID, err := uuid.Parse(c.Param("trailerId"))
	if err != nil {
		response.BadRequest(c, "invalid trailer id")
		return
	}
	var req TrailerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		response.BadRequest(c, msg)
		return
	}
	t := &models.Trailer{
		ID:              trailerID,
		CompanyID:       c.Param("id"),
		TrailerNumber:   req.TrailerNumber,
		TrailerType:     req.TrailerType,
		Make:            req.Make,
		Model:           req.Model,
		Year:            req.Year,
		VIN:             req.VIN,
		PlateNumber:     req.PlateNumber,
		Length:          req.Length,
		Capacity:        req.Capacity,
		LastMaintenance: req.LastMaintenance,
		LastInspection:  req.LastInspection,
		InsuranceExpiry: req.InsuranceExpiry,
		AssignedTruckID: req.AssignedTruckID,
	}
	if err := h.repo.Update(c.Request.Context(), t); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Trailer not found")
			return
		}
		h.logger.Error("trailer update failed", zap.Error(err))
		response.Internal(c, "failed to update trailer")
		return
	}
	response.OK(c, t)
}

// Delete handles DELETE /companies/:id/trailers/:trailerId.
func (h *Handler) Delete(c *gin.Context) {
	trailerID, err := uuid.Parse(c.Param("trailerId"))
	if err != nil {
		response.BadRequest(c, "invalid trailer id")
		return
	}
	if err := h.repo.Delete(c.Request.Context(), c.Param("id"), trailerID); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Trailer not found")
			return
		}
		h.logger.Error("trailer delete failed", zap.Error(err))
		response.Internal(c, "failed to delete trailer")
		return
	}
	response.NoContent(c)
}
