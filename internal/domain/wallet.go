package domain

import "time"

// TokenBalance is a single SPL token holding.
type TokenBalance struct {
	Mint     string
	Amount   float64
	Decimals int
}

// Wallet is the in-memory ledger entry for one keypair. Balance is SOL and
// never goes negative as a direct effect of a strategy-proposed trade.
type Wallet struct {
	PublicKey     string
	Balance       float64
	TokenBalances []TokenBalance
}

// TradeAction is what the strategy wants to do this cycle.
type TradeAction string

const (
	ActionBuy  TradeAction = "BUY"
	ActionSell TradeAction = "SELL"
	ActionWait TradeAction = "WAIT"
)

// Decision is the outcome of one strategy evaluation.
type Decision struct {
	Action TradeAction
	Amount float64 // SOL, zero for WAIT
	Reason string
}

// Trade is a settled (simulated) swap.
type Trade struct {
	AgentID    string
	Side       TradeAction
	Amount     float64
	Price      float64
	Signature  string
	ExecutedAt time.Time
}
