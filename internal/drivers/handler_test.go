package drivers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/drivesphere/backend/internal/models"
)

func TestStoredDocKeys(t *testing.T) {
	t.Run("only uploaded documents", func(t *testing.T) {
		d := &models.Driver{
			CompanyID:       "company_123456",
			LicenseNumber:   "D1234567",
			DriverPhotoURL:  "https://bucket.s3.us-east-1.amazonaws.com/company_123456/drivers/D1234567/driverPhoto",
			LicenseFrontURL: "https://bucket.s3.us-east-1.amazonaws.com/company_123456/drivers/D1234567/licenseFront",
		}
		require.Equal(t, []string{
			"company_123456/drivers/D1234567/driverPhoto",
			"company_123456/drivers/D1234567/licenseFront",
		}, storedDocKeys(d))
	})

	t.Run("no documents on file", func(t *testing.T) {
		d := &models.Driver{CompanyID: "company_123456", LicenseNumber: "D1234567"}
		require.Empty(t, storedDocKeys(d))
	})
}
