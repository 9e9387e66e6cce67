package models

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCompanyID(t *testing.T) {
	pattern := regexp.MustCompile(`^company_[1-9]\d{5}$`)
	for i := 0; i < 100; i++ {
		id, err := NewCompanyID()
		require.NoError(t, err)
		require.Regexp(t, pattern, id)
	}
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole("driver")
	require.True(t, ok)
	require.Equal(t, RoleDriver, r)

	_, ok = ParseRole("owner")
	require.False(t, ok)
}
