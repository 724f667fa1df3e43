package walletmem_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarban/solagent/internal/adapters/walletmem"
	"github.com/dmarban/solagent/internal/domain"
)

func TestLedger_CreateWalletStartsAtZero(t *testing.T) {
	ledger := walletmem.New()
	ctx := context.Background()

	w, err := ledger.CreateWallet(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, w.PublicKey)

	balance, err := ledger.GetBalance(ctx, w.PublicKey)
	require.NoError(t, err)
	assert.Zero(t, balance)
}

func TestLedger_CreateWalletUniquePubKeys(t *testing.T) {
	ledger := walletmem.New()
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		w, err := ledger.CreateWallet(ctx)
		require.NoError(t, err)
		require.False(t, seen[w.PublicKey])
		seen[w.PublicKey] = true
	}
}

func TestLedger_CreditAndDebit(t *testing.T) {
	ledger := walletmem.New()
	ctx := context.Background()

	w, err := ledger.CreateWallet(ctx)
	require.NoError(t, err)

	require.NoError(t, ledger.Credit(ctx, w.PublicKey, 2.0))
	require.NoError(t, ledger.Debit(ctx, w.PublicKey, 0.5))

	balance, err := ledger.GetBalance(ctx, w.PublicKey)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, balance, 1e-9)
}

func TestLedger_DebitInsufficientLeavesBalanceUntouched(t *testing.T) {
	ledger := walletmem.New()
	ctx := context.Background()

	w, err := ledger.CreateWallet(ctx)
	require.NoError(t, err)
	require.NoError(t, ledger.Credit(ctx, w.PublicKey, 0.3))

	err = ledger.Debit(ctx, w.PublicKey, 0.5)
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)

	balance, err := ledger.GetBalance(ctx, w.PublicKey)
	require.NoError(t, err)
	assert.InDelta(t, 0.3, balance, 1e-9)
}

func TestLedger_UnknownWallet(t *testing.T) {
	ledger := walletmem.New()
	ctx := context.Background()

	_, err := ledger.GetBalance(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrWalletNotFound)

	_, err = ledger.GetTokenBalances(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrWalletNotFound)

	assert.ErrorIs(t, ledger.Credit(ctx, "nope", 1), domain.ErrWalletNotFound)
	assert.ErrorIs(t, ledger.Debit(ctx, "nope", 1), domain.ErrWalletNotFound)
}
