package domain

import "time"

// Trend is the current market direction.
type Trend string

const (
	TrendUp       Trend = "UP"
	TrendDown     Trend = "DOWN"
	TrendSideways Trend = "SIDEWAYS"
)

// MarketTick is one synthetic observation of the market. Ticks are
// ephemeral: they are regenerated every cycle and never persisted.
type MarketTick struct {
	Timestamp time.Time
	Price     float64 // SOL price in USD, always > 0
	Volume    int64
	Trend     Trend
}
