package drivers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/drivesphere/backend/internal/models"
	"github.com/drivesphere/backend/pkg/response"
	"github.com/drivesphere/backend/pkg/storage"
	"github.com/drivesphere/backend/pkg/utils"
)

// Handler handles driver HTTP endpoints.
type Handler struct {
	repo   *Repository
	s3     *storage.S3
	logger *zap.Logger
}

// NewHandler creates a drivers handler. s3 may be nil when document storage
// is not configured; upload endpoints then return 503.
func NewHandler(repo *Repository, s3 *storage.S3, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, s3: s3, logger: logger}
}

// DriverRequest is the body for create and update.
type DriverRequest struct {
	FullName      string     `json:"full_name" binding:"required"`
	Phone         string     `json:"phone"`
	Email         string     `json:"email"`
	Address       string     `json:"address"`
	SSN           string     `json:"ssn"`
	LicenseNumber string     `json:"license_number" binding:"required"`
	LicenseExpiry *time.Time `json:"license_expiry"`
	HireDate      *time.Time `json:"hire_date"`
	TotalMiles    int64      `json:"total_miles"`
	Status        string     `json:"status"`
}

func (req *DriverRequest) validate() string {
	if !utils.IsValidLicenseNumber(req.LicenseNumber) {
		return "License number must be uppercase letters and digits"
	}
	if req.SSN != "" && !utils.IsValidSSN(req.SSN) {
		return "SSN must be in the format XXX-XX-XXXX"
	}
	if req.Email != "" && !utils.IsValidEmail(req.Email) {
		return "Please Enter a valid email address"
	}
	if req.Phone != "" && !utils.IsValidPhone(req.Phone) {
		return "Please Enter a valid phone number"
	}
	if req.Status != "" && !models.ValidDriverStatus(req.Status) {
		return "Status must be Active, On Trip or Inactive"
	}
	if req.TotalMiles < 0 {
		return "Total miles must be a whole number"
	}
	return ""
}

// Create handles POST /companies/:id/drivers.
func (h *Handler) Create(c *gin.Context) {
	var req DriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		response.BadRequest(c, msg)
		return
	}
	if req.Status == "" {
		req.Status = models.DriverStatusActive
	}
	d := &models.Driver{
		CompanyID:     c.Param("id"),
		FullName:      req.FullName,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		SSN:           req.SSN,
		LicenseNumber: req.LicenseNumber,
		LicenseExpiry: req.LicenseExpiry,
		HireDate:      req.HireDate,
		TotalMiles:    req.TotalMiles,
		Status:        req.Status,
	}
	if err := h.repo.Create(c.Request.Context(), d); err != nil {
		h.logger.Error("driver insert failed", zap.Error(err))
		response.Internal(c, "failed to create driver")
		return
	}
	response.Created(c, d)
}

// List handles GET /companies/:id/drivers.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("driver list failed", zap.Error(err))
		response.Internal(c, "failed to list drivers")
		return
	}
	if list == nil {
		list = []models.Driver{}
	}
	response.OK(c, list)
}

// Get handles GET /companies/:id/drivers/:driverId.
func (h *Handler) Get(c *gin.Context) {
	driverID, err := uuid.Parse(c.Param("driverId"))
	if err != nil {
		response.BadRequest(c, "invalid driver id")
		return
	}
	d, err := h.repo.GetByID(c.Request.Context(), c.Param("id"), driverID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Driver not found")
			return
		}
		response.Internal(c, "failed to load driver")
		return
	}
	response.OK(c, d)
}

// Update handles PUT /companies/:id/drivers/:driverId.
func (h *Handler) Update(c *gin.Context) {
	driverID, err := uuid.Parse(c.Param("driverId"))
	if err != nil {
		response.BadRequest(c, "invalid driver id")
		return
	}
	var req DriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		response.BadRequest(c, msg)
		return
	}
	d, err := h.repo.GetByID(c.Request.Context(), c.Param("id"), driverID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Driver not found")
			return
		}
		response.Internal(c, "failed to load driver")
		return
	}
	d.FullName = req.FullName
	d.Phone = req.Phone
	d.Email = req.Email
	d.Address = req.Address
	if req.SSN != "" {
		d.SSN = req.SSN
	}
	d.LicenseNumber = req.LicenseNumber
	d.LicenseExpiry = req.LicenseExpiry
	d.HireDate = req.HireDate
	d.TotalMiles = req.TotalMiles
	if req.Status != "" {
		d.Status = req.Status
	}
	if err := h.repo.Update(c.Request.Context(), d); err != nil {
		h.logger.Error("driver update failed", zap.Error(err))
		response.Internal(c, "failed to update driver")
		return
	}
	response.OK(c, d)
}

// Delete handles DELETE /companies/:id/drivers/:driverId. Uploaded documents
// are removed from storage along with the row.
func (h *Handler) Delete(c *gin.Context) {
	driverID, err := uuid.Parse(c.Param("driverId"))
	if err != nil {
		response.BadRequest(c, "invalid driver id")
		return
	}
	d, err := h.repo.GetByID(c.Request.Context(), c.Param("id"), driverID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Driver not found")
			return
		}
		response.Internal(c, "failed to load driver")
		return
	}
	if err := h.repo.Delete(c.Request.Context(), d.CompanyID, d.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Driver not found")
			return
		}
		h.logger.Error("driver delete failed", zap.Error(err))
		response.Internal(c, "failed to delete driver")
		return
	}
	if h.s3 != nil {
		for _, key := range storedDocKeys(d) {
			if err := h.s3.DeleteObject(c.Request.Context(), key); err != nil {
				h.logger.Warn("driver document cleanup failed", zap.Error(err), zap.String("key", key))
			}
		}
	}
	response.NoContent(c)
}

// storedDocKeys returns the object keys for the documents a driver has on file.
func storedDocKeys(d *models.Driver) []string {
	var keys []string
	if d.DriverPhotoURL != "" {
		keys = append(keys, storage.DriverDocKey(d.CompanyID, d.LicenseNumber, storage.DocDriverPhoto))
	}
	if d.LicenseFrontURL != "" {
		keys = append(keys, storage.DriverDocKey(d.CompanyID, d.LicenseNumber, storage.DocLicenseFront))
	}
	if d.LicenseBackURL != "" {
		keys = append(keys, storage.DriverDocKey(d.CompanyID, d.LicenseNumber, storage.DocLicenseBack))
	}
	return keys
}

// docKindColumn maps an upload kind to the driver column that stores its URL.
func docKindColumn(kind string) (string, bool) {
	switch kind {
	case storage.DocDriverPhoto:
		return "driver_photo_url", true
	case storage.DocLicenseFront:
		return "license_front_url", true
	case storage.DocLicenseBack:
		return "license_back_url", true
	}
	return "", false
}

// UploadDocument handles POST /companies/:id/drivers/:driverId/documents/:kind.
// Multipart upload of the driver photo or a license scan.
func (h *Handler) UploadDocument(c *gin.Context) {
	if h.s3 == nil {
		response.ServiceUnavailable(c, "document storage not configured")
		return
	}
	driverID, err := uuid.Parse(c.Param("driverId"))
	if err != nil {
		response.BadRequest(c, "invalid driver id")
		return
	}
	kind := c.Param("kind")
	column, ok := docKindColumn(kind)
	if !ok {
		response.BadRequest(c, "unknown document kind")
		return
	}

	d, err := h.repo.GetByID(c.Request.Context(), c.Param("id"), driverID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Driver not found")
			return
		}
		response.Internal(c, "failed to load driver")
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

	key := storage.DriverDocKey(d.CompanyID, d.LicenseNumber, kind)
	url, err := h.s3.Upload(c.Request.Context(), key, contentType, file, header.Size)
	if err != nil {
		h.logger.Error("driver document upload failed", zap.Error(err), zap.String("key", key))
		response.Internal(c, "failed to upload document")
		return
	}
	if err := h.repo.SetDocumentURL(c.Request.Context(), d.CompanyID, d.ID, column, url); err != nil {
		response.Internal(c, "failed to record document")
		return
	}
	response.OK(c, gin.H{"url": url, "key": key})
}

// DownloadDocument handles GET /companies/:id/drivers/:driverId/documents/:kind.
// Returns a presigned URL so the browser fetches the object directly;
// ?inline=true streams the document through the API instead, for clients
// that cannot follow S3 links.
func (h *Handler) DownloadDocument(c *gin.Context) {
	if h.s3 == nil {
		response.ServiceUnavailable(c, "document storage not configured")
		return
	}
	driverID, err := uuid.Parse(c.Param("driverId"))
	if err != nil {
		response.BadRequest(c, "invalid driver id")
		return
	}
	kind := c.Param("kind")
	if _, ok := docKindColumn(kind); !ok {
		response.BadRequest(c, "unknown document kind")
		return
	}
	d, err := h.repo.GetByID(c.Request.Context(), c.Param("id"), driverID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Driver not found")
			return
		}
		response.Internal(c, "failed to load driver")
		return
	}
	key := storage.DriverDocKey(d.CompanyID, d.LicenseNumber, kind)
	if c.Query("inline") == "true" {
		body, contentType, err := h.s3.GetObjectStream(c.Request.Context(), key)
		if err != nil {
			h.logger.Error("document stream failed", zap.Error(err), zap.String("key", key))
			response.Internal(c, "failed to load document")
			return
		}
		defer body.Close()
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		c.DataFromReader(http.StatusOK, -1, contentType, body, nil)
		return
	}
	url, err := h.s3.GeneratePresignedDownloadURL(c.Request.Context(), key, h.s3.PresignExpire())
	if err != nil {
		h.logger.Error("presign failed", zap.Error(err), zap.String("key", key))
		response.Internal(c, "failed to generate download link")
		return
	}
	response.OK(c, gin.H{"url": url})
}
