package trips

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/drivesphere/backend/internal/drivers"
	"github.com/drivesphere/backend/internal/middleware"
	"github.com/drivesphere/backend/internal/models"
	"github.com/drivesphere/backend/pkg/response"
	"github.com/drivesphere/backend/pkg/storage"
)

// Handler handles trip HTTP endpoints.
type Handler struct {
	repo       *Repository
	driverRepo *drivers.Repository
	s3         *storage.S3
	logger     *zap.Logger
}

// NewHandler creates a trips handler. s3 may be nil when document storage is
// not configured; upload endpoints then return 503.
func NewHandler(repo *Repository, driverRepo *drivers.Repository, s3 *storage.S3, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, driverRepo: driverRepo, s3: s3, logger: logger}
}

// InlineRoute describes a route created together with the trip, for loads
// that don't reuse an existing lane.
type InlineRoute struct {
	RouteName      string `json:"route_name"`
	PickupAddress  string `json:"pickup_address"`
	PickupCity     string `json:"pickup_city" binding:"required"`
	PickupState    string `json:"pickup_state" binding:"required"`
	DropoffAddress string `json:"dropoff_address"`
	DropoffCity    string `json:"dropoff_city" binding:"required"`
	DropoffState   string `json:"dropoff_state" binding:"required"`
}

// CreateTripRequest is the body for POST /companies/:id/trips. Exactly one of
// RouteID and Route must be set.
type CreateTripRequest struct {
	TripNumber    string       `json:"trip_number" binding:"required"`
	DriverID      uuid.UUID    `json:"driver_id" binding:"required"`
	TruckID       uuid.UUID    `json:"truck_id" binding:"required"`
	TrailerID     *uuid.UUID   `json:"trailer_id"`
	RouteID       *uuid.UUID   `json:"route_id"`
	Route         *InlineRoute `json:"route"`
	StartDate     time.Time    `json:"start_date" binding:"required"`
	EndDate       time.Time    `json:"end_date" binding:"required"`
	StartingMiles *int64       `json:"starting_miles" binding:"required"`
}

// Create handles POST /companies/:id/trips.
func (h *Handler) Create(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if (req.RouteID == nil) == (req.Route == nil) {
		response.BadRequest(c, "exactly one of route_id and route is required")
		return
	}
	if req.EndDate.Before(req.StartDate) {
		response.BadRequest(c, "End date cannot be before start date")
		return
	}
	if *req.StartingMiles < 0 {
		response.BadRequest(c, "Starting miles must be a whole number")
		return
	}

	companyID := c.Param("id")
	t := &models.Trip{
		CompanyID:     companyID,
		TripNumber:    req.TripNumber,
		DriverID:      req.DriverID,
		TruckID:       req.TruckID,
		TrailerID:     req.TrailerID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		StartingMiles: *req.StartingMiles,
	}
	var inline *models.Route
	if req.Route != nil {
		name := strings.TrimSpace(req.Route.RouteName)
		if name == "" {
			name = models.DefaultRouteName(req.Route.PickupCity, req.Route.DropoffCity)
		}
		inline = &models.Route{
			CompanyID:      companyID,
			RouteName:      name,
			PickupAddress:  req.Route.PickupAddress,
			PickupCity:     req.Route.PickupCity,
			PickupState:    req.Route.PickupState,
			DropoffAddress: req.Route.DropoffAddress,
			DropoffCity:    req.Route.DropoffCity,
			DropoffState:   req.Route.DropoffState,
		}
	} else {
		t.RouteID = *req.RouteID
	}

	if err := h.repo.Create(c.Request.Context(), t, inline); err != nil {
		h.logger.Error("trip insert failed", zap.Error(err))
		response.Internal(c, "failed to create trip")
		return
	}
	response.Created(c, t)
}

// List handles GET /companies/:id/trips. Admins see the whole company; a
// driver account is restricted to its own trips.
func (h *Handler) List(c *gin.Context) {
	var driverFilter *uuid.UUID
	if c.GetString(middleware.ContextUserRole) == string(models.RoleDriver) {
		userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
		d, err := h.driverRepo.GetByUserID(c.Request.Context(), userID)
		if err != nil {
			// An account without a driver profile has no trips to see.
			response.OK(c, []models.Trip{})
			return
		}
		driverFilter = &d.ID
	}
	list, err := h.repo.List(c.Request.Context(), c.Param("id"), driverFilter)
	if err != nil {
		h.logger.Error("trip list failed", zap.Error(err))
		response.Internal(c, "failed to list trips")
		return
	}
	if list == nil {
		list = []models.Trip{}
	}
	response.OK(c, list)
}

// Get handles GET /companies/:id/trips/:tripId.
func (h *Handler) Get(c *gin.Context) {
	tripID, err := uuid.Parse(c.Param("tripId"))
	if err != nil {
		response.BadRequest(c, "invalid trip id")
		return
	}
	t, err := h.repo.GetByID(c.Request.Context(), c.Param("id"), tripID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Trip not found")
			return
		}
		response.Internal(c, "failed to load trip")
		return
	}
	response.OK(c, t)
}

// OdometerRequest is the body for POST /companies/:id/trips/:tripId/odometer.
type OdometerRequest struct {
	EndingMiles *int64 `json:"ending_miles" binding:"required"`
}

// Odometer handles POST /companies/:id/trips/:tripId/odometer. Records the
// ending reading and the derived driven miles. A reading lower than the start
// is rejected and nothing is stored.
func (h *Handler) Odometer(c *gin.Context) {
	tripID, err := uuid.Parse(c.Param("tripId"))
	if err != nil {
		response.BadRequest(c, "invalid trip id")
		return
	}
	var req OdometerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	t, err := h.repo.Complete(c.Request.Context(), c.Param("id"), tripID, *req.EndingMiles)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(c, "Trip not found")
		case errors.Is(err, ErrAlreadyCompleted):
			response.Conflict(c, "Trip already has an ending odometer reading")
		case errors.Is(err, models.ErrOdometerBackwards):
			response.BadRequest(c, "End odometer reading must be greater than the start reading")
		default:
			h.logger.Error("trip completion failed", zap.Error(err))
			response.Internal(c, "failed to record odometer reading")
		}
		return
	}
	response.OK(c, t)
}

// UploadRateConfirmation handles POST /companies/:id/trips/:tripId/rate-confirmation.
// Multipart upload of the rate confirmation document.
func (h *Handler) UploadRateConfirmation(c *gin.Context) {
	if h.s3 == nil {
		response.ServiceUnavailable(c, "document storage not configured")
		return
	}
	tripID, err := uuid.Parse(c.Param("tripId"))
	if err != nil {
		response.BadRequest(c, "invalid trip id")
		return
	}
	t, err := h.repo.GetByID(c.Request.Context(), c.Param("id"), tripID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Trip not found")
			return
		}
		response.Internal(c, "failed to load trip")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}
	defer file.Close()
	if header.Size > storage.MaxDocFileSize {
		response.BadRequest(c, "file too large")
		return
	}
	contentType := header.Header.Get("Content-Type")
	if !storage.ValidateDocFileType(contentType, header.Filename) {
		response.BadRequest(c, "unsupported file type")
		return
	}
	if contentType == "" {
		contentType = storage.ContentTypeForFilename(header.Filename)
	}

	key := storage.TripDocKey(t.CompanyID, t.TripNumber, storage.DocRateConfirmation)
	url, err := h.s3.Upload(c.Request.Context(), key, contentType, file, header.Size)
	if err != nil {
		h.logger.Error("rate confirmation upload failed", zap.Error(err), zap.String("key", key))
		response.Internal(c, "failed to upload document")
		return
	}
	if err := h.repo.SetRateDocURL(c.Request.Context(), t.CompanyID, t.ID, url); err != nil {
		response.Internal(c, "failed to record document")
		return
	}
	response.OK(c, gin.H{"url": url, "key": key})
}

// DownloadRateConfirmation handles GET /companies/:id/trips/:tripId/rate-confirmation.
func (h *Handler) DownloadRateConfirmation(c *gin.Context) {
	if h.s3 == nil {
		response.ServiceUnavailable(c, "document storage not configured")
		return
	}
	tripID, err := uuid.Parse(c.Param("tripId"))
	if err != nil {
		response.BadRequest(c, "invalid trip id")
		return
	}
	t, err := h.repo.GetByID(c.Request.Context(), c.Param("id"), tripID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Trip not found")
			return
		}
		response.Internal(c, "failed to load trip")
		return
	}
	key := storage.TripDocKey(t.CompanyID, t.TripNumber, storage.DocRateConfirmation)
	url, err := h.s3.GeneratePresignedDownloadURL(c.Request.Context(), key, h.s3.PresignExpire())
	if err != nil {
		h.logger.Error("presign failed", zap.Error(err), zap.String("key", key))
		response.Internal(c, "failed to generate download link")
		return
	}
	response.OK(c, gin.H{"url": url})
}

// Delete handles DELETE /companies/:id/trips/:tripId. An uploaded rate
// confirmation is removed from storage along with the row.
func (h *Handler) Delete(c *gin.Context) {
	tripID, err := uuid.Parse(c.Param("tripId"))
	if err != nil {
		response.BadRequest(c, "invalid trip id")
		return
	}
	t, err := h.repo.GetByID(c.Request.Context(), c.Param("id"), tripID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Trip not found")
			return
		}
		response.Internal(c, "failed to load trip")
		return
	}
	if err := h.repo.Delete(c.Request.Context(), t.CompanyID, t.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Trip not found")
			return
		}
		h.logger.Error("trip delete failed", zap.Error(err))
		response.Internal(c, "failed to delete trip")
		return
	}
	if h.s3 != nil && t.RateDocURL != "" {
		key := storage.TripDocKey(t.CompanyID, t.TripNumber, storage.DocRateConfirmation)
		if err := h.s3.DeleteObject(c.Request.Context(), key); err != nil {
			h.logger.Warn("rate confirmation cleanup failed", zap.Error(err), zap.String("key", key))
		}
	}
	response.NoContent(c)
}
