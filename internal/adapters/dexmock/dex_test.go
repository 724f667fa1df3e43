package dexmock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarban/solagent/internal/adapters/dexmock"
	"github.com/dmarban/solagent/internal/domain"
)

func TestDEX_SignaturesAreUnique(t *testing.T) {
	dex := dexmock.New(dexmock.Config{Seed: 1})
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		sig, err := dex.SubmitSwap(ctx, "wallet", domain.ActionBuy, 0.1)
		require.NoError(t, err)
		require.NotEmpty(t, sig)
		require.False(t, seen[sig], "duplicate signature %s", sig)
		seen[sig] = true
	}
}

func TestDEX_RejectsBadInput(t *testing.T) {
	dex := dexmock.New(dexmock.Config{Seed: 1})
	ctx := context.Background()

	_, err := dex.SubmitSwap(ctx, "", domain.ActionBuy, 0.1)
	assert.ErrorContains(t, err, "invalid accounts")

	_, err = dex.SubmitSwap(ctx, "wallet", domain.ActionSell, 0)
	assert.ErrorContains(t, err, "positive")

	_, err = dex.SubmitSwap(ctx, "wallet", domain.ActionSell, -1)
	assert.ErrorContains(t, err, "positive")
}

func TestDEX_FailureInjection(t *testing.T) {
	dex := dexmock.New(dexmock.Config{FailureRate: 1.0, Seed: 1})

	_, err := dex.SubmitSwap(context.Background(), "wallet", domain.ActionBuy, 0.1)
	require.Error(t, err)
	assert.ErrorContains(t, err, "rejected by settlement")
}

func TestDEX_NoFailuresAtZeroRate(t *testing.T) {
	dex := dexmock.New(dexmock.Config{FailureRate: 0, Seed: 1})
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := dex.SubmitSwap(ctx, "wallet", domain.ActionSell, 0.1)
		require.NoError(t, err)
	}
}
