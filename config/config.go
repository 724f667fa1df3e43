// Package config loads the daemon configuration from YAML plus .env
// overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full daemon configuration.
type Config struct {
	Agent   AgentConfig   `yaml:"agent"`
	Demo    DemoConfig    `yaml:"demo"`
	Market  MarketConfig  `yaml:"market"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// AgentConfig controls the decision loop and default strategy parameters.
type AgentConfig struct {
	CycleIntervalSeconds int     `yaml:"cycle_interval_seconds"`
	BuyThreshold         float64 `yaml:"buy_threshold"`
	SellThreshold        float64 `yaml:"sell_threshold"`
	MinBalance           float64 `yaml:"min_balance"`
}

// DemoConfig controls the demo fleet the daemon boots with.
type DemoConfig struct {
	Agents            int     `yaml:"agents"`
	AirdropSOL        float64 `yaml:"airdrop_sol"`
	SettleFailureRate float64 `yaml:"settle_failure_rate"`
	SummarySpec       string  `yaml:"summary_spec"` // cron spec for the fleet summary
}

// MarketConfig controls the synthetic feed.
type MarketConfig struct {
	Seed int64 `yaml:"seed"` // 0 seeds from the clock
}

// StorageConfig controls the audit trail database.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // SQLite file path, ":memory:", or "" to disable
}

// LogConfig controls log output.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load reads the YAML file and the .env file if present. Env vars override
// the YAML values for the keys they cover.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// CycleInterval returns the decision cycle period as a time.Duration.
func (c *Config) CycleInterval() time.Duration {
	return time.Duration(c.Agent.CycleIntervalSeconds) * time.Second
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("STORAGE_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
}

func setDefaults(cfg *Config) {
	if cfg.Agent.CycleIntervalSeconds <= 0 {
		cfg.Agent.CycleIntervalSeconds = 10
	}
	if cfg.Agent.BuyThreshold == 0 {
		cfg.Agent.BuyThreshold = 90
	}
	if cfg.Agent.SellThreshold == 0 {
		cfg.Agent.SellThreshold = 110
	}
	if cfg.Agent.MinBalance == 0 {
		cfg.Agent.MinBalance = 0.1
	}
	if cfg.Demo.Agents <= 0 {
		cfg.Demo.Agents = 3
	}
	if cfg.Demo.AirdropSOL <= 0 {
		cfg.Demo.AirdropSOL = 2.0
	}
	if cfg.Demo.SummarySpec == "" {
		cfg.Demo.SummarySpec = "@every 1m"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
