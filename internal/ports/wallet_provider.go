package ports

import (
	"context"

	"github.com/dmarban/solagent/internal/domain"
)

// WalletProvider creates wallets and serves as the authoritative balance
// source. The in-memory implementation doubles as the ledger mutated by
// trade settlement; a real implementation would front an RPC node.
type WalletProvider interface {
	// CreateWallet allocates a new wallet with zero balance.
	CreateWallet(ctx context.Context) (domain.Wallet, error)

	// GetBalance returns the current SOL balance for the public key.
	GetBalance(ctx context.Context, publicKey string) (float64, error)

	// GetTokenBalances returns the SPL token holdings for the public key.
	GetTokenBalances(ctx context.Context, publicKey string) ([]domain.TokenBalance, error)

	// Credit adds SOL to the wallet (funding, airdrops, settlement).
	Credit(ctx context.Context, publicKey string, amount float64) error

	// Debit removes SOL from the wallet. Fails with
	// domain.ErrInsufficientBalance before any mutation if the balance
	// would go negative.
	Debit(ctx context.Context, publicKey string, amount float64) error
}
