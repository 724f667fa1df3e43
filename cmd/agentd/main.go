package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dmarban/solagent/config"
	"github.com/dmarban/solagent/internal/adapters/dexmock"
	"github.com/dmarban/solagent/internal/adapters/notify"
	"github.com/dmarban/solagent/internal/adapters/storage"
	"github.com/dmarban/solagent/internal/adapters/walletmem"
	"github.com/dmarban/solagent/internal/agent"
	"github.com/dmarban/solagent/internal/domain"
	"github.com/dmarban/solagent/internal/market"
	"github.com/dmarban/solagent/internal/ports"
	"github.com/dmarban/solagent/internal/trade"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	once := flag.Bool("once", false, "run one decision cycle per agent and exit")
	agents := flag.Int("agents", 0, "demo fleet size (overrides config)")
	table := flag.Bool("table", false, "print the full fleet table in summaries")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	if *agents > 0 {
		cfg.Demo.Agents = *agents
	}
	setupLogger(cfg.Log)

	slog.Info("agentd starting",
		"config", *configPath,
		"interval", cfg.CycleInterval(),
		"agents", cfg.Demo.Agents,
		"once", *once,
	)

	wallets := walletmem.New()
	dex := dexmock.New(dexmock.Config{
		Latency:     200 * time.Millisecond,
		FailureRate: cfg.Demo.SettleFailureRate,
	})
	executor := trade.NewExecutor(wallets, dex)
	feed := market.NewGenerator(marketSeed(cfg))

	var recorder ports.ActivityRecorder
	if cfg.Storage.DSN != "" {
		sqlite, err := storage.NewSQLiteRecorder(cfg.Storage.DSN)
		if err != nil {
			slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
			os.Exit(1)
		}
		defer sqlite.Close()
		recorder = sqlite
	}

	controller := agent.NewController(agent.Config{CycleInterval: cfg.CycleInterval()}, wallets, executor, feed, recorder)

	notifier := notify.NewConsole(wallets, *table)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := bootstrapFleet(ctx, controller, wallets, cfg); err != nil {
		slog.Error("fleet bootstrap failed", "err", err)
		os.Exit(1)
	}

	if *once {
		// Each start fires an immediate cycle; give the in-flight cycles a
		// moment to settle, then report and exit.
		time.Sleep(2 * time.Second)
		if err := controller.StopAllAgents(ctx); err != nil {
			slog.Warn("stop all", "err", err)
		}
		controller.Wait()
		notifier.Notify(ctx, controller.ListAgents())
		return
	}

	summary := cron.New()
	if _, err := summary.AddFunc(cfg.Demo.SummarySpec, func() {
		if err := notifier.Notify(ctx, controller.ListAgents()); err != nil {
			slog.Warn("notifier error", "err", err)
		}
	}); err != nil {
		slog.Error("failed to register summary job", "err", err, "spec", cfg.Demo.SummarySpec)
		os.Exit(1)
	}
	summary.Start()

	<-ctx.Done()
	slog.Info("shutting down")

	summary.Stop()
	if err := controller.StopAllAgents(context.Background()); err != nil {
		slog.Warn("stop all", "err", err)
	}
	controller.Wait()
	notifier.Notify(context.Background(), controller.ListAgents())

	slog.Info("agentd stopped cleanly")
}

// bootstrapFleet creates, funds, and starts the demo agents.
func bootstrapFleet(ctx context.Context, controller *agent.Controller, wallets *walletmem.Ledger, cfg *config.Config) error {
	stratCfg := domain.StrategyConfig{
		Kind:          domain.StrategyThreshold,
		BuyThreshold:  cfg.Agent.BuyThreshold,
		SellThreshold: cfg.Agent.SellThreshold,
		MinBalance:    cfg.Agent.MinBalance,
	}

	for i := 0; i < cfg.Demo.Agents; i++ {
		a, err := controller.CreateAgent(ctx, fmt.Sprintf("agent-%d", i+1), stratCfg)
		if err != nil {
			return fmt.Errorf("create agent %d: %w", i+1, err)
		}
		if err := wallets.Credit(ctx, a.WalletPublicKey, cfg.Demo.AirdropSOL); err != nil {
			return fmt.Errorf("airdrop to %s: %w", a.ID, err)
		}
		if err := controller.StartAgent(ctx, a.ID); err != nil {
			return fmt.Errorf("start agent %s: %w", a.ID, err)
		}
	}
	return nil
}

func marketSeed(cfg *config.Config) int64 {
	if cfg.Market.Seed != 0 {
		return cfg.Market.Seed
	}
	return time.Now().UnixNano()
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
