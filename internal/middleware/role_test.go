package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func doRequest(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

// setClaims fakes what the JWT middleware would set on the context.
func setClaims(role, companyID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextUserRole, role)
		if companyID != "" {
			c.Set(ContextCompanyID, companyID)
		}
		c.Next()
	}
}

func TestRequireRole(t *testing.T) {
	newRouter := func(role string) *gin.Engine {
		r := gin.New()
		r.GET("/admin-only", setClaims(role, ""), RequireRole("admin", "superadmin"), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return r
	}

	t.Run("allowed role passes", func(t *testing.T) {
		w := doRequest(newRouter("admin"), "/admin-only")
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("disallowed role forbidden", func(t *testing.T) {
		w := doRequest(newRouter("driver"), "/admin-only")
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing claims unauthorized", func(t *testing.T) {
		r := gin.New()
		r.GET("/admin-only", RequireRole("admin"), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		w := doRequest(r, "/admin-only")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestCompanyScope(t *testing.T) {
	newRouter := func(role, companyID string) *gin.Engine {
		r := gin.New()
		r.GET("/companies/:id/drivers", setClaims(role, companyID), CompanyScope(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return r
	}

	t.Run("admin of same company passes", func(t *testing.T) {
		w := doRequest(newRouter("admin", "company_123456"), "/companies/company_123456/drivers")
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("admin of other company forbidden", func(t *testing.T) {
		w := doRequest(newRouter("admin", "company_123456"), "/companies/company_999999/drivers")
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("superadmin passes for any company", func(t *testing.T) {
		w := doRequest(newRouter("superadmin", ""), "/companies/company_999999/drivers")
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing company scope forbidden", func(t *testing.T) {
		w := doRequest(newRouter("driver", ""), "/companies/company_123456/drivers")
		require.Equal(t, http.StatusForbidden, w.Code)
	})
}
