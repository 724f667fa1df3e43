// Package strategy maps market ticks and wallet balances to trade decisions.
package strategy

import (
	"fmt"

	"github.com/dmarban/solagent/internal/domain"
)

// Strategy is the evaluation contract every strategy kind implements.
// Implementations may keep per-instance state (e.g. the last action taken)
// and are not safe for concurrent use; each agent owns its own instance.
type Strategy interface {
	// Kind returns the strategy kind identifier.
	Kind() string

	// Evaluate decides what to do for one tick given the current wallet
	// balance. Pure apart from instance state; never errors.
	Evaluate(tick domain.MarketTick, balance float64) domain.Decision
}

// New builds a strategy from its configuration. The set of kinds is closed:
// unknown kinds fail with domain.ErrInvalidStrategy instead of silently
// defaulting.
func New(cfg domain.StrategyConfig) (Strategy, error) {
	switch cfg.Kind {
	case domain.StrategyThreshold:
		return NewThreshold(cfg)
	default:
		return nil, fmt.Errorf("strategy.New: unknown kind %q: %w", cfg.Kind, domain.ErrInvalidStrategy)
	}
}
