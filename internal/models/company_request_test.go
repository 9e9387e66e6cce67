package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequestStatusTransitions(t *testing.T) {
	t.Run("forward path", func(t *testing.T) {
		require.True(t, RequestStatusPending.CanTransition(RequestStatusInReview))
		require.True(t, RequestStatusInReview.CanTransition(RequestStatusQuoted))
		require.True(t, RequestStatusQuoted.CanTransition(RequestStatusAccepted))
		require.True(t, RequestStatusAccepted.CanTransition(RequestStatusCompleted))
	})

	t.Run("rejected reachable before acceptance only", func(t *testing.T) {
		require.True(t, RequestStatusPending.CanTransition(RequestStatusRejected))
		require.True(t, RequestStatusInReview.CanTransition(RequestStatusRejected))
		require.True(t, RequestStatusQuoted.CanTransition(RequestStatusRejected))
		require.False(t, RequestStatusAccepted.CanTransition(RequestStatusRejected))
	})

	t.Run("no reverse transitions", func(t *testing.T) {
		require.False(t, RequestStatusInReview.CanTransition(RequestStatusPending))
		require.False(t, RequestStatusQuoted.CanTransition(RequestStatusInReview))
		require.False(t, RequestStatusAccepted.CanTransition(RequestStatusQuoted))
		require.False(t, RequestStatusCompleted.CanTransition(RequestStatusAccepted))
	})

	t.Run("no skipping", func(t *testing.T) {
		require.False(t, RequestStatusPending.CanTransition(RequestStatusQuoted))
		require.False(t, RequestStatusPending.CanTransition(RequestStatusAccepted))
		require.False(t, RequestStatusPending.CanTransition(RequestStatusCompleted))
		require.False(t, RequestStatusInReview.CanTransition(RequestStatusAccepted))
	})

	t.Run("terminal states allow nothing", func(t *testing.T) {
		for _, next := range []RequestStatus{RequestStatusPending, RequestStatusInReview,
			RequestStatusQuoted, RequestStatusAccepted, RequestStatusRejected, RequestStatusCompleted} {
			require.False(t, RequestStatusRejected.CanTransition(next))
			require.False(t, RequestStatusCompleted.CanTransition(next))
		}
		require.True(t, RequestStatusRejected.Terminal())
		require.True(t, RequestStatusCompleted.Terminal())
		require.False(t, RequestStatusPending.Terminal())
	})
}

func TestParseRequestStatus(t *testing.T) {
	s, ok := ParseRequestStatus("in_review")
	require.True(t, ok)
	require.Equal(t, RequestStatusInReview, s)

	_, ok = ParseRequestStatus("archived")
	require.False(t, ok)

	_, ok = ParseRequestStatus("")
	require.False(t, ok)
}
