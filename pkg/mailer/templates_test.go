package mailer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/drivesphere/backend/pkg/queue"
)

func TestRenderInvite(t *testing.T) {
	t.Run("company invite", func(t *testing.T) {
		msg := RenderInvite(queue.InviteEmailPayload{
			EmailType:     "company_invite",
			Email:         "owner@fleet.example.com",
			CompanyName:   "Acme Freight",
			InviteLink:    "https://app.drivesphere.example/signup?companyId=company_123456&token=abc",
			CustomMessage: "Welcome aboard",
		})
		require.Equal(t, InviteSubject, msg.Subject)
		require.Contains(t, msg.HTML, "Acme Freight")
		require.Contains(t, msg.HTML, "Welcome aboard")
		require.Contains(t, msg.HTML, "https://app.drivesphere.example/signup?companyId=company_123456&amp;token=abc")
		require.Contains(t, msg.HTML, "Accept Invitation")
	})

	t.Run("driver invite omits empty sections", func(t *testing.T) {
		msg := RenderInvite(queue.InviteEmailPayload{
			EmailType:  "driver_invite",
			Email:      "driver@fleet.example.com",
			InviteLink: "https://app.drivesphere.example/driver-signup?token=abc",
		})
		require.Equal(t, InviteSubject, msg.Subject)
		require.NotContains(t, msg.HTML, "<strong>")
		require.Contains(t, msg.HTML, "driver-signup?token=abc")
	})

	t.Run("superadmin invite", func(t *testing.T) {
		msg := RenderInvite(queue.InviteEmailPayload{
			EmailType: "superadmin_invite",
			Email:     "root@fleet.example.com",
			PackageID: "enterprise",
			SignupURL: "https://app.drivesphere.example/superadmin-signup?token=xyz",
		})
		require.Equal(t, SuperadminInviteSubject, msg.Subject)
		require.Contains(t, msg.HTML, "enterprise")
		require.Contains(t, msg.HTML, "superadmin-signup?token=xyz")
	})
}
