// Package dexmock is the mocked settlement provider. It keeps the I/O
// shape of a real DEX client — rate limiting, latency, occasional
// rejections — while fabricating every signature locally.
package dexmock

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/dmarban/solagent/internal/domain"
)

const (
	// Mirrors a public RPC tier: 10 req/s with small bursts.
	submitRatePerSec = 10
	submitBurst      = 5
)

// Config tunes the simulated settlement behavior.
type Config struct {
	// Latency is the synthetic confirmation delay per submission.
	Latency time.Duration

	// FailureRate in [0, 1] injects random settlement rejections.
	FailureRate float64

	// Seed makes the failure injection reproducible. Zero seeds from time.
	Seed int64
}

// DEX implements ports.SettlementProvider.
type DEX struct {
	cfg     Config
	limiter *rate.Limiter

	mu  sync.Mutex
	rng *rand.Rand
	seq uint64
}

// New creates a mocked DEX.
func New(cfg Config) *DEX {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &DEX{
		cfg:     cfg,
		limiter: rate.NewLimiter(submitRatePerSec, submitBurst),
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// SubmitSwap settles a swap and returns a fabricated signature. The
// signature is unique per submission (uuid plus a monotonic sequence);
// nothing is ever sent to a network.
func (d *DEX) SubmitSwap(ctx context.Context, walletPublicKey string, side domain.TradeAction, amount float64) (string, error) {
	if walletPublicKey == "" {
		return "", fmt.Errorf("dexmock.SubmitSwap: invalid accounts: empty public key")
	}
	if amount <= 0 {
		return "", fmt.Errorf("dexmock.SubmitSwap: amount %.9f must be positive", amount)
	}

	if err := d.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("dexmock.SubmitSwap: rate limiter: %w", err)
	}

	if d.cfg.Latency > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(d.cfg.Latency):
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cfg.FailureRate > 0 && d.rng.Float64() < d.cfg.FailureRate {
		return "", fmt.Errorf("dexmock.SubmitSwap: %s rejected by settlement", strings.ToLower(string(side)))
	}

	d.seq++
	sig := fmt.Sprintf("%s%06d", strings.ReplaceAll(uuid.New().String(), "-", ""), d.seq)
	return sig, nil
}
