package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTripMiles(t *testing.T) {
	t.Run("normal trip", func(t *testing.T) {
		miles, err := TripMiles(1000, 1450)
		require.NoError(t, err)
		require.Equal(t, int64(450), miles)
	})

	t.Run("zero length trip", func(t *testing.T) {
		miles, err := TripMiles(500, 500)
		require.NoError(t, err)
		require.Equal(t, int64(0), miles)
	})

	t.Run("backwards odometer rejected", func(t *testing.T) {
		_, err := TripMiles(1450, 1000)
		require.ErrorIs(t, err, ErrOdometerBackwards)
	})
}

func TestDefaultRouteName(t *testing.T) {
	require.Equal(t, "Dallas → Memphis", DefaultRouteName("Dallas", "Memphis"))
}

func TestValidDriverStatus(t *testing.T) {
	require.True(t, ValidDriverStatus(DriverStatusActive))
	require.True(t, ValidDriverStatus(DriverStatusOnTrip))
	require.True(t, ValidDriverStatus(DriverStatusInactive))
	require.False(t, ValidDriverStatus("active"))
	require.False(t, ValidDriverStatus(""))
}
