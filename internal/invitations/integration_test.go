//go:build integration

package invitations

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/drivesphere/backend/internal/models"
	"github.com/drivesphere/backend/pkg/database"
)

// Run with: DATABASE_URL=postgres://... go test -tags integration ./internal/invitations

const testHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, database.Migrate(ctx, pool))
	return NewRepository(pool)
}

func issueTestInvite(t *testing.T, repo *Repository) *models.Invitation {
	t.Helper()
	companyID, err := models.NewCompanyID()
	require.NoError(t, err)
	company := &models.Company{ID: companyID, Name: "Test Freight " + companyID}
	inv := &models.Invitation{
		Token:     uuid.New().String(),
		Email:     companyID + "@fleet.example.com",
		CompanyID: &company.ID,
		Role:      models.RoleAdmin,
		Status:    models.InvitationStatusPending,
	}
	require.NoError(t, repo.IssueCompanyInvite(context.Background(), company, inv))
	return inv
}

func TestRedeemSingleUse(t *testing.T) {
	repo := newTestRepo(t)
	inv := issueTestInvite(t, repo)
	ctx := context.Background()

	const racers = 4
	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			email := fmt.Sprintf("racer%d-%s@fleet.example.com", i, inv.Token)
			_, errs[i] = repo.Redeem(ctx, inv.Token, email, testHash, "Race", "Runner", "")
		}(i)
	}
	wg.Wait()

	var wins int
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			require.ErrorIs(t, err, ErrAlreadyUsed)
		}
	}
	require.Equal(t, 1, wins)

	got, err := repo.GetByToken(ctx, inv.Token)
	require.NoError(t, err)
	require.Equal(t, models.InvitationStatusUsed, got.Status)
	require.NotNil(t, got.UsedAt)
	require.NotNil(t, got.UsedBy)
}

func TestRedeemDuplicateEmailKeepsToken(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	first := issueTestInvite(t, repo)
	second := issueTestInvite(t, repo)
	email := "taken-" + first.Token + "@fleet.example.com"

	_, err := repo.Redeem(ctx, first.Token, email, testHash, "First", "Admin", "")
	require.NoError(t, err)

	_, err = repo.Redeem(ctx, second.Token, email, testHash, "Second", "Admin", "")
	require.ErrorIs(t, err, ErrEmailInUse)

	// The losing attempt must not consume the token.
	got, err := repo.GetByToken(ctx, second.Token)
	require.NoError(t, err)
	require.True(t, got.Redeemable())
}

func TestResetPendingOnlyFailed(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	t.Run("failed invitation resets", func(t *testing.T) {
		inv := issueTestInvite(t, repo)
		require.NoError(t, repo.MarkFailed(ctx, inv.ID, "smtp unreachable"))
		require.NoError(t, repo.ResetPending(ctx, inv.ID))
		got, err := repo.GetByID(ctx, inv.ID)
		require.NoError(t, err)
		require.Equal(t, models.InvitationStatusPending, got.Status)
		require.Empty(t, got.ErrorMessage)
	})

	t.Run("sent invitation refused", func(t *testing.T) {
		inv := issueTestInvite(t, repo)
		require.NoError(t, repo.MarkSent(ctx, inv.ID))
		require.ErrorIs(t, repo.ResetPending(ctx, inv.ID), ErrNotFailed)
	})

	t.Run("pending invitation refused", func(t *testing.T) {
		inv := issueTestInvite(t, repo)
		require.ErrorIs(t, repo.ResetPending(ctx, inv.ID), ErrNotFailed)
	})

	t.Run("used invitation refused", func(t *testing.T) {
		inv := issueTestInvite(t, repo)
		email := "used-" + inv.Token + "@fleet.example.com"
		_, err := repo.Redeem(ctx, inv.Token, email, testHash, "Used", "Up", "")
		require.NoError(t, err)
		require.ErrorIs(t, repo.ResetPending(ctx, inv.ID), ErrAlreadyUsed)
	})

	t.Run("missing invitation", func(t *testing.T) {
		require.ErrorIs(t, repo.ResetPending(ctx, uuid.New()), ErrNotFound)
	})
}
