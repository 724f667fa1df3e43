package strategy

import (
	"fmt"

	"github.com/dmarban/solagent/internal/domain"
)

// Defaults for the threshold strategy.
const (
	DefaultBuyThreshold  = 90.0
	DefaultSellThreshold = 110.0
	DefaultMinBalance    = 0.1

	buyFraction  = 0.10 // buy 10% of the balance...
	maxBuySOL    = 0.5  // ...capped at 0.5 SOL
	sellSOL      = 0.1  // sells are a fixed clip
)

// Threshold buys below a floor price and sells above a ceiling, with a
// last-action debounce so the same action never fires on two consecutive
// cycles. The buy check strictly precedes the sell check; since the buy
// threshold must sit below the sell threshold both can never fire on the
// same tick.
type Threshold struct {
	buyBelow   float64
	sellAbove  float64
	minBalance float64
	lastAction domain.TradeAction
}

// NewThreshold validates the config and applies defaults for zero values.
// Fails with domain.ErrInvalidStrategy unless buy threshold < sell threshold.
func NewThreshold(cfg domain.StrategyConfig) (*Threshold, error) {
	buy := cfg.BuyThreshold
	if buy == 0 {
		buy = DefaultBuyThreshold
	}
	sell := cfg.SellThreshold
	if sell == 0 {
		sell = DefaultSellThreshold
	}
	minBal := cfg.MinBalance
	if minBal == 0 {
		minBal = DefaultMinBalance
	}

	if buy >= sell {
		return nil, fmt.Errorf("strategy.NewThreshold: buy threshold %.2f must be below sell threshold %.2f: %w",
			buy, sell, domain.ErrInvalidStrategy)
	}
	if buy < 0 || minBal < 0 {
		return nil, fmt.Errorf("strategy.NewThreshold: negative parameter: %w", domain.ErrInvalidStrategy)
	}

	return &Threshold{buyBelow: buy, sellAbove: sell, minBalance: minBal}, nil
}

// Kind implements Strategy.
func (s *Threshold) Kind() string {
	return domain.StrategyThreshold
}

// Evaluate implements Strategy. Checks run in order: balance guard, buy,
// sell, wait. The debounce compares against the last buy/sell taken, so a
// second consecutive buy (or sell) degrades to wait regardless of price.
func (s *Threshold) Evaluate(tick domain.MarketTick, balance float64) domain.Decision {
	if balance < s.minBalance {
		return domain.Decision{
			Action: domain.ActionWait,
			Reason: fmt.Sprintf("insufficient balance: %.4f SOL is below the %.4f SOL minimum", balance, s.minBalance),
		}
	}

	if tick.Price < s.buyBelow && s.lastAction != domain.ActionBuy {
		amount := balance * buyFraction
		if amount > maxBuySOL {
			amount = maxBuySOL
		}
		s.lastAction = domain.ActionBuy
		return domain.Decision{
			Action: domain.ActionBuy,
			Amount: amount,
			Reason: fmt.Sprintf("price %.2f is below the buy threshold %.2f", tick.Price, s.buyBelow),
		}
	}

	if tick.Price > s.sellAbove && s.lastAction != domain.ActionSell {
		s.lastAction = domain.ActionSell
		return domain.Decision{
			Action: domain.ActionSell,
			Amount: sellSOL,
			Reason: fmt.Sprintf("price %.2f is above the sell threshold %.2f", tick.Price, s.sellAbove),
		}
	}

	return domain.Decision{
		Action: domain.ActionWait,
		Reason: fmt.Sprintf("price %.2f is within the normal range [%.2f, %.2f]", tick.Price, s.buyBelow, s.sellAbove),
	}
}
