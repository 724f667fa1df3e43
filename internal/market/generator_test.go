package market_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarban/solagent/internal/domain"
	"github.com/dmarban/solagent/internal/market"
)

func TestGenerator_PriceStaysClamped(t *testing.T) {
	g := market.NewGenerator(42)

	for i := 0; i < 5000; i++ {
		tick := g.NextTick()
		require.GreaterOrEqual(t, tick.Price, 50.0, "tick %d", i)
		require.LessOrEqual(t, tick.Price, 150.0, "tick %d", i)
	}
}

func TestGenerator_PriceRoundedToCents(t *testing.T) {
	g := market.NewGenerator(7)

	for i := 0; i < 200; i++ {
		tick := g.NextTick()
		cents := tick.Price * 100
		assert.InDelta(t, math.Round(cents), cents, 1e-9)
	}
}

func TestGenerator_VolumeInRange(t *testing.T) {
	g := market.NewGenerator(1)

	for i := 0; i < 1000; i++ {
		tick := g.NextTick()
		require.GreaterOrEqual(t, tick.Volume, int64(1000))
		require.Less(t, tick.Volume, int64(10000))
	}
}

func TestGenerator_TrendIsValid(t *testing.T) {
	g := market.NewGenerator(3)
	valid := map[domain.Trend]bool{
		domain.TrendUp:       true,
		domain.TrendDown:     true,
		domain.TrendSideways: true,
	}

	seen := make(map[domain.Trend]bool)
	for i := 0; i < 2000; i++ {
		tick := g.NextTick()
		require.True(t, valid[tick.Trend])
		seen[tick.Trend] = true
	}

	// Over 2000 ticks every trend should have been sampled.
	assert.Len(t, seen, 3)
}

func TestGenerator_DeterministicForSameSeed(t *testing.T) {
	a := market.NewGenerator(99)
	b := market.NewGenerator(99)

	for i := 0; i < 100; i++ {
		ta, tb := a.NextTick(), b.NextTick()
		require.Equal(t, ta.Price, tb.Price)
		require.Equal(t, ta.Trend, tb.Trend)
		require.Equal(t, ta.Volume, tb.Volume)
	}
}
