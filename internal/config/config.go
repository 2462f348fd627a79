package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"TradeScope/internal/engine"
)

// Config holds all application configuration.
type Config struct {
	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Snapshot struct {
		CSVPath string `yaml:"csv_path"`
	} `yaml:"snapshot"`
	Providers struct {
		Yahoo struct {
			BaseURL    string `yaml:"base_url"`
			IntervalMS int    `yaml:"interval_ms"`
			Priority   int    `yaml:"priority"`
		} `yaml:"yahoo"`
		Binance struct {
			BaseURL    string `yaml:"base_url"`
			IntervalMS int    `yaml:"interval_ms"`
			Priority   int    `yaml:"priority"`
		} `yaml:"binance"`
	} `yaml:"providers"`
	Engine struct {
		Weights      engine.Weights `yaml:"weights"`
		LookbackDays int            `yaml:"lookback_days"`
		Workers      int            `yaml:"workers"`
	} `yaml:"engine"`
	Featured struct {
		RefreshCron string `yaml:"refresh_cron"`
		PerCategory int    `yaml:"per_category"`
		RunOnStart  bool   `yaml:"run_on_start"`
	} `yaml:"featured"`
	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TRADESCOPE_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("SNAPSHOT_CSV"); v != "" {
		cfg.Snapshot.CSVPath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_FEATURED"); v != "" {
		cfg.Featured.RefreshCron = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("ENGINE_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Engine.Workers = n
		}
	}

	// Defaults
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/tradescope.db"
	}
	if cfg.Providers.Yahoo.BaseURL == "" {
		cfg.Providers.Yahoo.BaseURL = "https://query1.finance.yahoo.com"
	}
	if cfg.Providers.Yahoo.IntervalMS == 0 {
		cfg.Providers.Yahoo.IntervalMS = 1500
	}
	// Binance sorts ahead of yahoo; it only answers for crypto, so
	// every other category still lands on yahoo first.
	if cfg.Providers.Yahoo.Priority == 0 {
		cfg.Providers.Yahoo.Priority = 2
	}
	if cfg.Providers.Binance.BaseURL == "" {
		cfg.Providers.Binance.BaseURL = "https://api.binance.com"
	}
	if cfg.Providers.Binance.IntervalMS == 0 {
		cfg.Providers.Binance.IntervalMS = 500
	}
	if cfg.Providers.Binance.Priority == 0 {
		cfg.Providers.Binance.Priority = 1
	}
	if cfg.Engine.Weights == (engine.Weights{}) {
		cfg.Engine.Weights = engine.DefaultWeights()
	}
	if cfg.Engine.LookbackDays == 0 {
		cfg.Engine.LookbackDays = 730
	}
	if cfg.Engine.Workers == 0 {
		cfg.Engine.Workers = 5
	}
	if cfg.Featured.RefreshCron == "" {
		cfg.Featured.RefreshCron = "0 0 6 * * *"
	}
	if cfg.Featured.PerCategory == 0 {
		cfg.Featured.PerCategory = 10
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

// Validate checks that all fields are coherent.
func (c *Config) Validate() error {
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http.addr is required")
	}
	if c.Providers.Yahoo.BaseURL == "" {
		return fmt.Errorf("providers.yahoo.base_url is required")
	}
	if c.Providers.Yahoo.IntervalMS <= 0 || c.Providers.Binance.IntervalMS <= 0 {
		return fmt.Errorf("provider interval_ms must be positive")
	}
	if c.Engine.Workers <= 0 {
		return fmt.Errorf("engine.workers must be positive")
	}
	if c.Engine.LookbackDays <= 0 {
		return fmt.Errorf("engine.lookback_days must be positive")
	}
	w := c.Engine.Weights
	for name, v := range map[string]float64{
		"confluence": w.Confluence, "proximity": w.Proximity, "momentum": w.Momentum,
		"trend": w.Trend, "volatility": w.Volatility,
		"seasonal": w.Seasonal, "volume": w.Volume,
		"technical": w.Technical, "fundamental": w.Fundamental,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("engine.weights.%s must be in [0,1]", name)
		}
	}
	return nil
}
