package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestJWTGenerateAndValidate(t *testing.T) {
	svc := NewJWTService("test-secret", 1)
	userID := uuid.New()
	companyID := "company_123456"

	t.Run("company scoped token", func(t *testing.T) {
		token, err := svc.Generate(userID, "admin@fleet.example.com", "admin", &companyID)
		require.NoError(t, err)

		claims, err := svc.Validate(token)
		require.NoError(t, err)
		require.Equal(t, userID, claims.UserID)
		require.Equal(t, "admin@fleet.example.com", claims.Email)
		require.Equal(t, "admin", claims.Role)
		require.NotNil(t, claims.CompanyID)
		require.Equal(t, companyID, *claims.CompanyID)
	})

	t.Run("superadmin token has no company", func(t *testing.T) {
		token, err := svc.Generate(userID, "root@fleet.example.com", "superadmin", nil)
		require.NoError(t, err)

		claims, err := svc.Validate(token)
		require.NoError(t, err)
		require.Nil(t, claims.CompanyID)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		token, err := svc.Generate(userID, "admin@fleet.example.com", "admin", nil)
		require.NoError(t, err)

		other := NewJWTService("different-secret", 1)
		_, err = other.Validate(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := svc.Validate("not.a.jwt")
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}
