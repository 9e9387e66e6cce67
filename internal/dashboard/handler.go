package dashboard

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/drivesphere/backend/internal/models"
	"github.com/drivesphere/backend/pkg/response"
)

// Handler handles dashboard count endpoints.
type Handler struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewHandler creates a dashboard handler.
func NewHandler(pool *pgxpool.Pool, logger *zap.Logger) *Handler {
	return &Handler{pool: pool, logger: logger}
}

// CompanySummary is the JSON shape for a company dashboard.
type CompanySummary struct {
	Drivers       int `json:"drivers"`
	ActiveDrivers int `json:"active_drivers"`
	Trucks        int `json:"trucks"`
	Trailers      int `json:"trailers"`
	Routes        int `json:"routes"`
	Trips         int `json:"trips"`
	ActiveTrips   int `json:"active_trips"`
}

// GetCompany handles GET /companies/:id/dashboard. Counts for one tenant;
// active trips are those without an ending odometer reading yet.
func (h *Handler) GetCompany(c *gin.Context) {
	companyID := c.Param("id")
	ctx := c.Request.Context()

	const q = `SELECT
		(SELECT COUNT(*) FROM drivers WHERE company_id = $1),
		(SELECT COUNT(*) FROM drivers WHERE company_id = $1 AND status <> $2),
		(SELECT COUNT(*) FROM trucks WHERE company_id = $1),
		(SELECT COUNT(*) FROM trailers WHERE company_id = $1),
		(SELECT COUNT(*) FROM routes WHERE company_id = $1),
		(SELECT COUNT(*) FROM trips WHERE company_id = $1),
		(SELECT COUNT(*) FROM trips WHERE company_id = $1 AND ending_miles IS NULL)`

	var out CompanySummary
	err := h.pool.QueryRow(ctx, q, companyID, models.DriverStatusInactive).Scan(
		&out.Drivers, &out.ActiveDrivers, &out.Trucks, &out.Trailers,
		&out.Routes, &out.Trips, &out.ActiveTrips)
	if err != nil {
		h.logger.Error("company dashboard query failed", zap.Error(err))
		response.Internal(c, "failed to load dashboard")
		return
	}
	response.OK(c, out)
}

// PlatformSummary is the JSON shape for the superadmin dashboard.
type PlatformSummary struct {
	Companies       int            `json:"companies"`
	PendingRequests int            `json:"pending_requests"`
	Invitations     map[string]int `json:"invitations"`
}

// GetPlatform handles GET /dashboard. Superadmin only.
func (h *Handler) GetPlatform(c *gin.Context) {
	ctx := c.Request.Context()
	var out PlatformSummary

	const q = `SELECT
		(SELECT COUNT(*) FROM companies),
		(SELECT COUNT(*) FROM company_requests WHERE status = $1)`
	if err := h.pool.QueryRow(ctx, q, string(models.RequestStatusPending)).
		Scan(&out.Companies, &out.PendingRequests); err != nil {
		h.logger.Error("platform dashboard query failed", zap.Error(err))
		response.Internal(c, "failed to load dashboard")
		return
	}

	out.Invitations = map[string]int{}
	rows, err := h.pool.Query(ctx, `SELECT status, COUNT(*) FROM invitations GROUP BY status`)
	if err != nil {
		h.logger.Error("invitation counts query failed", zap.Error(err))
		response.Internal(c, "failed to load dashboard")
		return
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			response.Internal(c, "failed to load dashboard")
			return
		}
		out.Invitations[status] = n
	}
	if err := rows.Err(); err != nil {
		response.Internal(c, "failed to load dashboard")
		return
	}

	response.OK(c, out)
}
