package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"TradeScope/internal/config"
	"TradeScope/internal/engine"
	"TradeScope/internal/levels"
	"TradeScope/internal/provider"
	"TradeScope/internal/query"
	"TradeScope/internal/scheduler"
	"TradeScope/internal/store"
	"TradeScope/internal/windows"
)

func main() {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("config validation")
	}

	log := newLogger(cfg)
	log.Info().Str("addr", cfg.HTTP.Addr).Msg("TradeScope starting")

	// Bar cache, with noop fallback when SQLite cannot open
	var st store.Store
	if cfg.Database.SQLitePath != "" {
		ss, err := store.NewSQLiteStore(cfg.Database.SQLitePath, log)
		if err != nil {
			log.Warn().Err(err).Msg("sqlite unavailable, using noop store")
			st = store.NewNoopStore()
		} else {
			st = ss
			defer ss.Close()
		}
	} else {
		st = store.NewNoopStore()
	}

	// Static snapshot
	var snapshot *provider.SnapshotSource
	if cfg.Snapshot.CSVPath != "" {
		snapshot, err = provider.LoadSnapshot(cfg.Snapshot.CSVPath)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.Snapshot.CSVPath).Msg("snapshot load failed, continuing without")
			snapshot = nil
		} else {
			log.Info().Int("symbols", snapshot.Symbols()).Msg("snapshot loaded")
		}
	}

	// Provider waterfall
	waterfall := provider.NewWaterfall(st, snapshot, []provider.AdapterConfig{
		{
			Adapter:     provider.NewYahooAdapter(cfg.Providers.Yahoo.BaseURL, cfg.Proxy, cfg.Providers.Yahoo.Priority),
			MinInterval: time.Duration(cfg.Providers.Yahoo.IntervalMS) * time.Millisecond,
		},
		{
			Adapter:     provider.NewBinanceAdapter(cfg.Providers.Binance.BaseURL, cfg.Proxy, cfg.Providers.Binance.Priority),
			MinInterval: time.Duration(cfg.Providers.Binance.IntervalMS) * time.Millisecond,
		},
	}, log)

	// Engine and detector
	eng := engine.New(waterfall, levels.NewPivotProvider(), cfg.Engine.Weights, log)
	detector := windows.New(eng, cfg.Engine.Weights, log)
	batchBase := engine.BatchOptions{
		Workers:      cfg.Engine.Workers,
		LookbackDays: cfg.Engine.LookbackDays,
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Featured refresh scheduler
	refreshBase := batchBase
	refreshBase.MaxResults = cfg.Featured.PerCategory
	sched := scheduler.NewScheduler(ctx, eng, st, refreshBase, log)
	if err := sched.RegisterAll(cfg.Featured.RefreshCron); err != nil {
		log.Fatal().Err(err).Msg("register cron tasks")
	}
	sched.Start()
	defer sched.Stop()

	if cfg.Featured.RunOnStart {
		log.Info().Msg("run_on_start enabled, refreshing featured cache now")
		go sched.RunRefreshNow()
	}

	// HTTP query layer
	srv := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: query.NewServer(eng, detector, st, batchBase, log).Router(),
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()
	log.Info().Msg("TradeScope is running")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("http shutdown")
	}
	log.Info().Msg("TradeScope stopped")
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	if cfg.Log.Pretty {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	return logger
}
