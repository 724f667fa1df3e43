// Package market produces the synthetic SOL price feed the agents trade on.
package market

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/dmarban/solagent/internal/domain"
)

const (
	startPrice = 100.0
	minPrice   = 50.0
	maxPrice   = 150.0

	// Per-tick noise and directional drift, as fractions of the price.
	volatility    = 0.02
	trendStrength = 0.01

	// A trend persists for a random number of ticks in [min, max].
	minTrendTicks = 5
	maxTrendTicks = 20

	minVolume = 1000
	maxVolume = 10000
)

// Generator is a stateful random walk over the SOL price. Each NextTick
// advances the walk one step. Safe for concurrent use: all active agents
// share one feed.
type Generator struct {
	mu        sync.Mutex
	rng       *rand.Rand
	price     float64
	trend     domain.Trend
	trendLeft int
	now       func() time.Time
}

// NewGenerator creates a generator seeded for reproducibility. The price
// starts at 100 with the first trend resampled on the first tick.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng:   rand.New(rand.NewSource(seed)),
		price: startPrice,
		trend: domain.TrendSideways,
		now:   time.Now,
	}
}

// NextTick advances the walk and returns the resulting observation. The
// price stays clamped inside [50, 150] and is rounded to two decimals.
func (g *Generator) NextTick() domain.MarketTick {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.trendLeft--
	if g.trendLeft <= 0 {
		g.trend = g.resampleTrend()
		g.trendLeft = minTrendTicks + g.rng.Intn(maxTrendTicks-minTrendTicks+1)
	}

	var change float64
	switch g.trend {
	case domain.TrendUp:
		change = trendStrength + (g.rng.Float64()-0.5)*volatility
	case domain.TrendDown:
		change = -trendStrength + (g.rng.Float64()-0.5)*volatility
	default:
		change = (g.rng.Float64() - 0.5) * volatility
	}

	g.price *= 1 + change
	if g.price < minPrice {
		g.price = minPrice
	}
	if g.price > maxPrice {
		g.price = maxPrice
	}
	g.price = math.Round(g.price*100) / 100

	return domain.MarketTick{
		Timestamp: g.now(),
		Price:     g.price,
		Volume:    int64(minVolume + g.rng.Intn(maxVolume-minVolume)),
		Trend:     g.trend,
	}
}

func (g *Generator) resampleTrend() domain.Trend {
	switch g.rng.Intn(3) {
	case 0:
		return domain.TrendUp
	case 1:
		return domain.TrendDown
	default:
		return domain.TrendSideways
	}
}
