// Package agent owns the fleet: agent registry, lifecycle transitions, and
// the per-agent decision loop.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmarban/solagent/internal/domain"
	"github.com/dmarban/solagent/internal/ports"
	"github.com/dmarban/solagent/internal/strategy"
	"github.com/dmarban/solagent/internal/trade"
)

// DefaultCycleInterval is the period of the recurring decision cycle.
const DefaultCycleInterval = 10 * time.Second

// TickSource produces market ticks. All agents share one feed.
type TickSource interface {
	NextTick() domain.MarketTick
}

// Config tunes the controller.
type Config struct {
	// CycleInterval is the decision cycle period. Defaults to 10s.
	CycleInterval time.Duration
}

// Controller manages the agent registry and one decision loop per active
// agent. All exported methods are safe for concurrent use.
type Controller struct {
	cfg      Config
	wallets  ports.WalletProvider
	executor *trade.Executor
	ticks    TickSource
	recorder ports.ActivityRecorder // optional, may be nil

	mu      sync.Mutex
	agents  map[string]*state
	order   []string // ids in creation order
	cancels map[string]context.CancelFunc
	wg      sync.WaitGroup
}

// state is the mutable per-agent record. Guarded by Controller.mu except
// for the strategy, which only the agent's own runner goroutine touches.
type state struct {
	id        string
	name      string
	pubKey    string
	stratCfg  domain.StrategyConfig
	strat     strategy.Strategy
	status    domain.AgentStatus
	createdAt time.Time
	log       *domain.ActivityLog
}

// NewController wires a controller with injected dependencies. recorder may
// be nil to disable persistence.
func NewController(cfg Config, wallets ports.WalletProvider, executor *trade.Executor, ticks TickSource, recorder ports.ActivityRecorder) *Controller {
	if cfg.CycleInterval <= 0 {
		cfg.CycleInterval = DefaultCycleInterval
	}
	return &Controller{
		cfg:      cfg,
		wallets:  wallets,
		executor: executor,
		ticks:    ticks,
		recorder: recorder,
		agents:   make(map[string]*state),
		cancels:  make(map[string]context.CancelFunc),
	}
}

// CreateAgent validates the strategy, allocates a wallet with zero balance,
// and registers a stopped agent. Returns the created agent snapshot.
func (c *Controller) CreateAgent(ctx context.Context, name string, cfg domain.StrategyConfig) (domain.Agent, error) {
	strat, err := strategy.New(cfg)
	if err != nil {
		return domain.Agent{}, fmt.Errorf("agent.CreateAgent: %w", err)
	}

	wallet, err := c.wallets.CreateWallet(ctx)
	if err != nil {
		return domain.Agent{}, fmt.Errorf("agent.CreateAgent: allocate wallet: %w", err)
	}

	st := &state{
		id:        uuid.New().String(),
		name:      name,
		pubKey:    wallet.PublicKey,
		stratCfg:  cfg,
		strat:     strat,
		status:    domain.StatusStopped,
		createdAt: time.Now().UTC(),
		log:       domain.NewActivityLog(),
	}
	if st.name == "" {
		st.name = "agent-" + st.id[:8]
	}

	c.mu.Lock()
	c.agents[st.id] = st
	c.order = append(c.order, st.id)
	snap := c.snapshotLocked(st)
	c.mu.Unlock()

	c.appendActivity(ctx, st.id, domain.Activity{
		Timestamp: time.Now().UTC(),
		Action:    "created",
		Reason:    fmt.Sprintf("agent created with %s strategy", strat.Kind()),
		Result:    domain.ResultSuccess,
	})

	slog.Info("agent created", "agent", st.id, "name", st.name, "wallet", st.pubKey, "strategy", strat.Kind())
	return snap, nil
}

// StartAgent activates the agent and schedules its decision loop. The
// first cycle runs immediately, not after the first period elapses.
// Starting an already-active agent is a no-op.
func (c *Controller) StartAgent(ctx context.Context, id string) error {
	c.mu.Lock()
	st, ok := c.agents[id]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("agent.StartAgent: %q: %w", id, domain.ErrAgentNotFound)
	}
	if st.status == domain.StatusActive {
		c.mu.Unlock()
		return nil
	}
	st.status = domain.StatusActive
	runCtx, cancel := context.WithCancel(context.Background())
	c.cancels[id] = cancel
	c.mu.Unlock()

	c.appendActivity(ctx, id, domain.Activity{
		Timestamp: time.Now().UTC(),
		Action:    "started",
		Reason:    "agent started",
		Result:    domain.ResultSuccess,
	})

	c.wg.Add(1)
	go c.run(runCtx, id)

	slog.Info("agent started", "agent", id, "interval", c.cfg.CycleInterval)
	return nil
}

// StopAgent cancels the agent's decision loop and marks it stopped.
// Idempotent: stopping a stopped agent does nothing. An in-flight cycle is
// not interrupted; it completes and logs its result.
func (c *Controller) StopAgent(ctx context.Context, id string) error {
	c.mu.Lock()
	st, ok := c.agents[id]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("agent.StopAgent: %q: %w", id, domain.ErrAgentNotFound)
	}
	if cancel, ok := c.cancels[id]; ok {
		cancel()
		delete(c.cancels, id)
	}
	wasActive := st.status == domain.StatusActive
	st.status = domain.StatusStopped
	c.mu.Unlock()

	if !wasActive {
		return nil
	}

	c.appendActivity(ctx, id, domain.Activity{
		Timestamp: time.Now().UTC(),
		Action:    "stopped",
		Reason:    "agent stopped",
		Result:    domain.ResultSuccess,
	})

	slog.Info("agent stopped", "agent", id)
	return nil
}

// StopAllAgents stops every agent, continuing past individual failures and
// returning them joined.
func (c *Controller) StopAllAgents(ctx context.Context) error {
	c.mu.Lock()
	ids := make([]string, len(c.order))
	copy(ids, c.order)
	c.mu.Unlock()

	var errs []error
	for _, id := range ids {
		if err := c.StopAgent(ctx, id); err != nil {
			slog.Warn("stop failed, continuing", "agent", id, "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// DeleteAgent stops the agent if needed and removes it from the registry.
// The wallet entry outlives the agent; nothing references it afterwards.
func (c *Controller) DeleteAgent(ctx context.Context, id string) error {
	if err := c.StopAgent(ctx, id); err != nil {
		return fmt.Errorf("agent.DeleteAgent: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.agents, id)
	for i, other := range c.order {
		if other == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	slog.Info("agent deleted", "agent", id)
	return nil
}

// GetAgent returns a snapshot of the agent.
func (c *Controller) GetAgent(id string) (domain.Agent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	st, ok := c.agents[id]
	if !ok {
		return domain.Agent{}, fmt.Errorf("agent.GetAgent: %q: %w", id, domain.ErrAgentNotFound)
	}
	return c.snapshotLocked(st), nil
}

// ListAgents returns snapshots of all agents in creation order.
func (c *Controller) ListAgents() []domain.Agent {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.Agent, 0, len(c.order))
	for _, id := range c.order {
		if st, ok := c.agents[id]; ok {
			out = append(out, c.snapshotLocked(st))
		}
	}
	return out
}

// Wait blocks until every runner goroutine has exited. Call after stopping
// all agents during shutdown.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// run is the per-agent decision loop. One immediate cycle, then one per
// tick until the agent's context is cancelled.
func (c *Controller) run(ctx context.Context, id string) {
	defer c.wg.Done()

	// Stop cancels the schedule, never an in-flight cycle.
	cycleCtx := context.WithoutCancel(ctx)
	c.decisionCycle(cycleCtx, id)

	ticker := time.NewTicker(c.cfg.CycleInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.decisionCycle(cycleCtx, id)
		}
	}
}

// decisionCycle runs tick → evaluate → (maybe) execute → log for one agent.
// Faults are contained: every failure path ends in a failure activity and a
// recovered panic never reaches the scheduler.
func (c *Controller) decisionCycle(ctx context.Context, id string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("decision cycle panicked", "agent", id, "panic", r)
			c.appendActivity(ctx, id, domain.Activity{
				Timestamp: time.Now().UTC(),
				Action:    "cycle",
				Reason:    "decision cycle failed",
				Result:    domain.ResultFailure,
			})
		}
	}()

	c.mu.Lock()
	st, ok := c.agents[id]
	if !ok || st.status != domain.StatusActive {
		// A cycle can fire after a stop raced with cancellation.
		c.mu.Unlock()
		return
	}
	pubKey := st.pubKey
	strat := st.strat
	c.mu.Unlock()

	tick := c.ticks.NextTick()

	balance, err := c.wallets.GetBalance(ctx, pubKey)
	if err != nil {
		c.appendActivity(ctx, id, domain.Activity{
			Timestamp: time.Now().UTC(),
			Action:    "cycle",
			Reason:    fmt.Sprintf("balance lookup failed: %v", err),
			Result:    domain.ResultFailure,
		})
		return
	}

	decision := strat.Evaluate(tick, balance)
	action := strings.ToLower(string(decision.Action))

	slog.Debug("decision",
		"agent", id,
		"price", tick.Price,
		"trend", tick.Trend,
		"balance", balance,
		"action", action,
		"reason", decision.Reason,
	)

	if decision.Action == domain.ActionWait {
		c.appendActivity(ctx, id, domain.Activity{
			Timestamp: time.Now().UTC(),
			Action:    action,
			Reason:    decision.Reason,
			Result:    domain.ResultSuccess,
		})
		return
	}

	executed, err := c.executor.Execute(ctx, id, pubKey, decision.Action, decision.Amount, tick.Price)
	if err != nil {
		c.appendActivity(ctx, id, domain.Activity{
			Timestamp: time.Now().UTC(),
			Action:    action,
			Reason:    err.Error(),
			Result:    domain.ResultFailure,
		})
		return
	}

	c.appendActivity(ctx, id, domain.Activity{
		Timestamp: time.Now().UTC(),
		Action:    action,
		Reason:    decision.Reason,
		Signature: executed.Signature,
		Result:    domain.ResultSuccess,
	})

	// Re-read the authoritative balance after settlement so the logged
	// state reflects the ledger, not the pre-trade view.
	if refreshed, err := c.wallets.GetBalance(ctx, pubKey); err == nil {
		slog.Debug("balance refreshed", "agent", id, "balance", refreshed)
	}

	if c.recorder != nil {
		if err := c.recorder.RecordTrade(ctx, executed); err != nil {
			slog.Warn("trade record failed", "agent", id, "err", err)
		}
	}
}

// appendActivity writes to the bounded in-memory log and, when configured,
// the recorder. Recorder errors are logged, never propagated.
func (c *Controller) appendActivity(ctx context.Context, id string, act domain.Activity) {
	c.mu.Lock()
	st, ok := c.agents[id]
	if ok {
		st.log.Append(act)
	}
	c.mu.Unlock()
	if !ok {
		return
	}

	if c.recorder != nil {
		if err := c.recorder.RecordActivity(ctx, id, act); err != nil {
			slog.Warn("activity record failed", "agent", id, "err", err)
		}
	}
}

// snapshotLocked copies the state into a caller-owned Agent. Callers hold
// c.mu.
func (c *Controller) snapshotLocked(st *state) domain.Agent {
	return domain.Agent{
		ID:              st.id,
		Name:            st.name,
		WalletPublicKey: st.pubKey,
		Strategy:        st.stratCfg,
		Status:          st.status,
		CreatedAt:       st.createdAt,
		Activities:      st.log.Snapshot(),
	}
}
