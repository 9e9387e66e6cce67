package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInvitationRedeemable(t *testing.T) {
	for _, status := range []string{InvitationStatusPending, InvitationStatusSent, InvitationStatusFailed} {
		inv := Invitation{Status: status}
		require.True(t, inv.Redeemable(), status)
	}
	inv := Invitation{Status: InvitationStatusUsed}
	require.False(t, inv.Redeemable())
}
