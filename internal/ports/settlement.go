package ports

import (
	"context"

	"github.com/dmarban/solagent/internal/domain"
)

// SettlementProvider finalizes a swap and returns its transaction
// signature. The mock implementation fabricates signatures without any
// network submission.
type SettlementProvider interface {
	// SubmitSwap submits a swap for the wallet and returns the signature
	// identifying the settled transaction.
	SubmitSwap(ctx context.Context, walletPublicKey string, side domain.TradeAction, amount float64) (string, error)
}
