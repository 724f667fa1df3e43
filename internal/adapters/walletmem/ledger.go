// Package walletmem is the in-memory wallet ledger. It stands in for the
// key provider and RPC balance source the real app talks to.
package walletmem

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dmarban/solagent/internal/domain"
)

// Ledger implements ports.WalletProvider with a map keyed by public key.
// All methods are safe for concurrent use.
type Ledger struct {
	mu      sync.RWMutex
	wallets map[string]*domain.Wallet
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{wallets: make(map[string]*domain.Wallet)}
}

// CreateWallet allocates a wallet with zero balance and a fabricated
// public key. The key is uuid-derived, a stand-in for a real keypair.
func (l *Ledger) CreateWallet(_ context.Context) (domain.Wallet, error) {
	pubKey := strings.ReplaceAll(uuid.New().String(), "-", "")

	l.mu.Lock()
	defer l.mu.Unlock()
	l.wallets[pubKey] = &domain.Wallet{PublicKey: pubKey}
	return domain.Wallet{PublicKey: pubKey}, nil
}

// GetBalance returns the current SOL balance.
func (l *Ledger) GetBalance(_ context.Context, publicKey string) (float64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	w, ok := l.wallets[publicKey]
	if !ok {
		return 0, fmt.Errorf("walletmem.GetBalance: %q: %w", publicKey, domain.ErrWalletNotFound)
	}
	return w.Balance, nil
}

// GetTokenBalances returns a copy of the SPL token holdings.
func (l *Ledger) GetTokenBalances(_ context.Context, publicKey string) ([]domain.TokenBalance, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	w, ok := l.wallets[publicKey]
	if !ok {
		return nil, fmt.Errorf("walletmem.GetTokenBalances: %q: %w", publicKey, domain.ErrWalletNotFound)
	}
	out := make([]domain.TokenBalance, len(w.TokenBalances))
	copy(out, w.TokenBalances)
	return out, nil
}

// Credit adds SOL to the wallet.
func (l *Ledger) Credit(_ context.Context, publicKey string, amount float64) error {
	if amount < 0 {
		return fmt.Errorf("walletmem.Credit: negative amount %.9f", amount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.wallets[publicKey]
	if !ok {
		return fmt.Errorf("walletmem.Credit: %q: %w", publicKey, domain.ErrWalletNotFound)
	}
	w.Balance += amount
	return nil
}

// Debit removes SOL from the wallet, leaving it untouched on failure.
func (l *Ledger) Debit(_ context.Context, publicKey string, amount float64) error {
	if amount < 0 {
		return fmt.Errorf("walletmem.Debit: negative amount %.9f", amount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.wallets[publicKey]
	if !ok {
		return fmt.Errorf("walletmem.Debit: %q: %w", publicKey, domain.ErrWalletNotFound)
	}
	if w.Balance < amount {
		return fmt.Errorf("walletmem.Debit: %q has %.9f SOL, need %.9f: %w",
			publicKey, w.Balance, amount, domain.ErrInsufficientBalance)
	}
	w.Balance -= amount
	return nil
}
