package trucks

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/drivesphere/backend/internal/models"
	"github.com/drivesphere/backend/pkg/response"
	"github.com/drivesphere/backend/pkg/utils"
)

// Handler handles truck HTTP endpoints.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates a trucks handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// TruckRequest is the body for create and update.
type TruckRequest struct {
	TruckNumber      string     `json:"truck_number" binding:"required"`
	Make             string     `json:"make" binding:"required"`
	Model            string     `json:"model" binding:"required"`
	Year             int        `json:"year" binding:"required"`
	VIN              string     `json:"vin"`
	Color            string     `json:"color"`
	Mileage          int64      `json:"mileage"`
	FuelType         string     `json:"fuel_type"`
	PlateNumber      string     `json:"plate_number" binding:"required"`
	AssignedDriverID *uuid.UUID `json:"assigned_driver_id"`
}

func (req *TruckRequest) validate() string {
	if !utils.IsValidYear(req.Year) {
		return "Year must be a 4 digit year"
	}
	if req.Mileage < 0 {
		return "Mileage must be a whole number"
	}
	return ""
}

// Create handles POST /companies/:id/trucks.
func (h *Handler) Create(c *gin.Context) {
	var req TruckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		response.BadRequest(c, msg)
		return
	}
	t := &models.Truck{
		CompanyID:        c.Param("id"),
		TruckNumber:      req.TruckNumber,
		Make:             req.Make,
		Model:            req.Model,
		Year:             req.Year,
		VIN:              req.VIN,
		Color:            req.Color,
		Mileage:          req.Mileage,
		FuelType:         req.FuelType,
		PlateNumber:      req.PlateNumber,
		AssignedDriverID: req.AssignedDriverID,
	}
	if err := h.repo.Create(c.Request.Context(), t); err != nil {
		h.logger.Error("truck insert failed", zap.Error(err))
		response.Internal(c, "failed to create truck")
		return
	}
	response.Created(c, t)
}

// List handles GET /companies/:id/trucks.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("truck list failed", zap.Error(err))
		response.Internal(c, "failed to list trucks")
		return
	}
	if list == nil {
		list = []models.Truck{}
	}
	response.OK(c, list)
}

// Get handles GET /companies/:id/trucks/:truckId.
func (h *Handler) Get(c *gin.Context) {
	truckID, err := uuid.Parse(c.Param("truckId"))
	if err != nil {
		response.BadRequest(c, "invalid truck id")
		return
	}
	t, err := h.repo.GetByID(c.Request.Context(), c.Param("id"), truckID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Truck not found")
			return
		}
		response.Internal(c, "failed to load truck")
		return
	}
	response.OK(c, t)
}

// Update handles PUT /companies/:id/trucks/:truckId.
func (h *Handler) Update(c *gin.Context) {
	truckID, err := uuid.Parse(c.Param("truckId"))
	if err != nil {
		response.BadRequest(c, "invalid truck id")
		return
	}
	var req TruckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		response.BadRequest(c, msg)
		return
	}
	t := &models.Truck{
		ID:               truckID,
		CompanyID:        c.Param("id"),
		TruckNumber:      req.TruckNumber,
		Make:             req.Make,
		Model:            req.Model,
		Year:             req.Year,
		VIN:              req.VIN,
		Color:            req.Color,
		Mileage:          req.Mileage,
		FuelType:         req.FuelType,
		PlateNumber:      req.PlateNumber,
		AssignedDriverID: req.AssignedDriverID,
	}
	if err := h.repo.Update(c.Request.Context(), t); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Truck not found")
			return
		}
		h.logger.Error("truck update failed", zap.Error(err))
		response.Internal(c, "failed to update truck")
		return
	}
	response.OK(c, t)
}

// Delete handles DELETE /companies/:id/trucks/:truckId.
func (h *Handler) Delete(c *gin.Context) {
	truckID, err := uuid.Parse(c.Param("truckId"))
	if err != nil {
		response.BadRequest(c, "invalid truck id")
		return
	}
	if err := h.repo.Delete(c.Request.Context(), c.Param("id"), truckID); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Truck not found")
			return
		}
		h.logger.Error("truck delete failed", zap.Error(err))
		response.Internal(c, "failed to delete truck")
		return
	}
	response.NoContent(c)
}
