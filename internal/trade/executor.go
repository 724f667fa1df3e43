// Package trade validates and settles strategy-proposed swaps against the
// wallet ledger.
package trade

import (
	"context"
	"fmt"
	"time"

	"github.com/dmarban/solagent/internal/domain"
	"github.com/dmarban/solagent/internal/ports"
)

// Executor submits swaps to the settlement provider and applies the ledger
// effect on success. Any failure leaves the ledger unchanged.
//
// Simulation artifact, preserved on purpose: a buy debits SOL but the
// token side of the swap is not credited, and a sell settles without
// decrementing holdings — token inventory is not modeled, so the ledger
// drifts from what a real chain would report on sells.
type Executor struct {
	wallets    ports.WalletProvider
	settlement ports.SettlementProvider
}

// NewExecutor creates an executor over the given ledger and settlement
// provider.
func NewExecutor(wallets ports.WalletProvider, settlement ports.SettlementProvider) *Executor {
	return &Executor{wallets: wallets, settlement: settlement}
}

// Execute validates the wallet and funds, submits the swap, and settles it
// in the ledger. Validation happens before any mutation: an underfunded
// buy fails with domain.ErrInsufficientBalance and a provider rejection
// with domain.ErrExecutionFailed, both leaving balances as they were.
func (e *Executor) Execute(ctx context.Context, agentID, walletPublicKey string, side domain.TradeAction, amount, price float64) (domain.Trade, error) {
	if side != domain.ActionBuy && side != domain.ActionSell {
		return domain.Trade{}, fmt.Errorf("trade.Execute: %q is not a trade action", side)
	}

	balance, err := e.wallets.GetBalance(ctx, walletPublicKey)
	if err != nil {
		return domain.Trade{}, fmt.Errorf("trade.Execute: invalid accounts: %w", err)
	}
	if side == domain.ActionBuy && balance < amount {
		return domain.Trade{}, fmt.Errorf("trade.Execute: invalid accounts: buy of %.4f SOL exceeds balance %.4f: %w",
			amount, balance, domain.ErrInsufficientBalance)
	}

	sig, err := e.settlement.SubmitSwap(ctx, walletPublicKey, side, amount)
	if err != nil {
		return domain.Trade{}, fmt.Errorf("trade.Execute: %v: %w", err, domain.ErrExecutionFailed)
	}

	if side == domain.ActionBuy {
		if err := e.wallets.Debit(ctx, walletPublicKey, amount); err != nil {
			return domain.Trade{}, fmt.Errorf("trade.Execute: settle debit: %w", err)
		}
	}
	// Sells settle without a ledger mutation; see the type comment.

	return domain.Trade{
		AgentID:    agentID,
		Side:       side,
		Amount:     amount,
		Price:      price,
		Signature:  sig,
		ExecutedAt: time.Now().UTC(),
	}, nil
}
