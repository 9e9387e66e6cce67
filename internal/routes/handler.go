package routes

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/drivesphere/backend/internal/models"
	"github.com/drivesphere/backend/pkg/response"
)

// Handler handles route HTTP endpoints.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates a routes handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// RouteRequest is the body for create and update. RouteName is optional;
// when empty it defaults to "<pickup city> → <dropoff city>".
type RouteRequest struct {
	RouteName      string `json:"route_name"`
	PickupAddress  string `json:"pickup_address"`
	PickupCity     string `json:"pickup_city" binding:"required"`
	PickupState    string `json:"pickup_state" binding:"required"`
	DropoffAddress string `json:"dropoff_address"`
	DropoffCity    string `json:"dropoff_city" binding:"required"`
	DropoffState   string `json:"dropoff_state" binding:"required"`
}

func (req *RouteRequest) toModel(companyID string) *models.Route {
	name := strings.TrimSpace(req.RouteName)
	if name == "" {
		name = models.DefaultRouteName(req.PickupCity, req.DropoffCity)
	}
	return &models.Route{
		CompanyID:      companyID,
		RouteName:      name,
		PickupAddress:  req.PickupAddress,
		PickupCity:     req.PickupCity,
		PickupState:    req.PickupState,
		DropoffAddress: req.DropoffAddress,
		DropoffCity:    req.DropoffCity,
		DropoffState:   req.DropoffState,
	}
}

// Create handles POST /companies/:id/routes.
func (h *Handler) Create(c *gin.Context) {
	var req RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	rt := req.toModel(c.Param("id"))
	if err := h.repo.Create(c.Request.Context(), rt); err != nil {
		h.logger.Error("route insert failed", zap.Error(err))
		response.Internal(c, "failed to create route")
		return
	}
	response.Created(c, rt)
}

// List handles GET /companies/:id/routes.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("route list failed", zap.Error(err))
		response.Internal(c, "failed to list routes")
		return
	}
	if list == nil {
		list = []models.Route{}
	}
	response.OK(c, list)
}

// Get handles GET /companies/:id/routes/:routeId.
func (h *Handler) Get(c *gin.Context) {
	routeID, err := uuid.Parse(c.Param("routeId"))
	if err != nil {
		response.BadRequest(c, "invalid route id")
		return
	}
	rt, err := h.repo.GetByID(c.Request.Context(), c.Param("id"), routeID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Route not found")
			return
		}
		response.Internal(c, "failed to load route")
		return
	}
	response.OK(c, rt)
}

// Update handles PUT /companies/:id/routes/:routeId.
func (h *Handler) Update(c *gin.Context) {
	routeID, err := uuid.Parse(c.Param("routeId"))
	if err != nil {
		response.BadRequest(c, "invalid route id")
		return
	}
	var req RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	rt := req.toModel(c.Param("id"))
	rt.ID = routeID
	if err := h.repo.Update(c.Request.Context(), rt); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Route not found")
			return
		}
		h.logger.Error("route update failed", zap.Error(err))
		response.Internal(c, "failed to update route")
		return
	}
	response.OK(c, rt)
}

// Delete handles DELETE /companies/:id/routes/:routeId.
func (h *Handler) Delete(c *gin.Context) {
	routeID, err := uuid.Parse(c.Param("routeId"))
	if err != nil {
		response.BadRequest(c, "invalid route id")
		return
	}
	if err := h.repo.Delete(c.Request.Context(), c.Param("id"), routeID); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Route not found")
			return
		}
		h.logger.Error("route delete failed", zap.Error(err))
		response.Internal(c, "failed to delete route")
		return
	}
	response.NoContent(c)
}
