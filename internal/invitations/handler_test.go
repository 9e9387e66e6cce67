package invitations

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignupLinks(t *testing.T) {
	base := "https://app.drivesphere.example"

	t.Run("company", func(t *testing.T) {
		link := CompanySignupLink(base, "company_123456", "tok-1")
		require.Equal(t, base+"/signup?companyId=company_123456&token=tok-1", link)
	})

	t.Run("driver", func(t *testing.T) {
		link := DriverSignupLink(base, "tok-2")
		require.Equal(t, base+"/driver-signup?token=tok-2", link)
	})

	t.Run("superadmin", func(t *testing.T) {
		link := SuperadminSignupLink(base, "tok-3")
		require.Equal(t, base+"/superadmin-signup?token=tok-3", link)
	})

	t.Run("token is query escaped", func(t *testing.T) {
		link := DriverSignupLink(base, "a b&c")
		require.Equal(t, base+"/driver-signup?token=a+b%26c", link)
	})
}
