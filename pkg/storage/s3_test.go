package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDocKeys(t *testing.T) {
	require.Equal(t, "company_123456/drivers/D1234567/licenseFront",
		DriverDocKey("company_123456", "D1234567", DocLicenseFront))
	require.Equal(t, "company_123456/drivers/D1234567/driverPhoto",
		DriverDocKey("company_123456", "D1234567", DocDriverPhoto))
	require.Equal(t, "company_123456/trips/TRIP-0042/rateConfirmation",
		TripDocKey("company_123456", "TRIP-0042", DocRateConfirmation))
}

func TestValidateDocFileType(t *testing.T) {
	t.Run("by content type", func(t *testing.T) {
		require.True(t, ValidateDocFileType("image/jpeg", "scan"))
		require.True(t, ValidateDocFileType("application/pdf", "rate"))
		require.False(t, ValidateDocFileType("video/mp4", "clip"))
	})

	t.Run("by extension when content type missing", func(t *testing.T) {
		require.True(t, ValidateDocFileType("", "license.png"))
		require.True(t, ValidateDocFileType("", "rate.PDF"))
		require.False(t, ValidateDocFileType("", "notes.txt"))
	})
}

func TestContentTypeForFilename(t *testing.T) {
	require.Equal(t, "image/jpeg", ContentTypeForFilename("photo.jpg"))
	require.Equal(t, "application/pdf", ContentTypeForFilename("rate.pdf"))
	require.Equal(t, "application/octet-stream", ContentTypeForFilename("unknown.bin"))
}
