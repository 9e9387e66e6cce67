package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidEmail(t *testing.T) {
	t.Run("accepts", func(t *testing.T) {
		require.True(t, IsValidEmail("dispatch@fleet.example.com"))
		require.True(t, IsValidEmail("a@b.co"))
		require.True(t, IsValidEmail("first.last+tag@sub.domain.io"))
	})
	t.Run("rejects", func(t *testing.T) {
		require.False(t, IsValidEmail("no-at-sign.com"))
		require.False(t, IsValidEmail("user@nodot"))
		require.False(t, IsValidEmail("spaces in@mail.com"))
		require.False(t, IsValidEmail(""))
	})
}

func TestIsValidLicenseNumber(t *testing.T) {
	require.True(t, IsValidLicenseNumber("D1234567"))
	require.True(t, IsValidLicenseNumber("ABC999"))
	require.False(t, IsValidLicenseNumber("d1234567"))
	require.False(t, IsValidLicenseNumber("AB-1234"))
	require.False(t, IsValidLicenseNumber(""))
}

func TestIsValidSSN(t *testing.T) {
	require.True(t, IsValidSSN("123-45-6789"))
	require.False(t, IsValidSSN("123456789"))
	require.False(t, IsValidSSN("123-456-789"))
	require.False(t, IsValidSSN("12-345-6789"))
}

func TestIsValidPhone(t *testing.T) {
	require.True(t, IsValidPhone("+1 (555) 123-4567"))
	require.True(t, IsValidPhone("5551234567"))
	require.False(t, IsValidPhone("555-12"))
	require.False(t, IsValidPhone("call me"))
}

func TestIsValidYear(t *testing.T) {
	require.True(t, IsValidYear(2019))
	require.True(t, IsValidYear(1999))
	require.False(t, IsValidYear(99))
	require.False(t, IsValidYear(20199))
}

func TestIsValidPassword(t *testing.T) {
	require.True(t, IsValidPassword("secret"))
	require.False(t, IsValidPassword("12345"))
	require.False(t, IsValidPassword(""))
}
