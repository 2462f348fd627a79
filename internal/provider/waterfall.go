package provider

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"TradeScope/internal/metrics"
	"TradeScope/internal/model"
	"TradeScope/internal/store"
	"TradeScope/internal/symbols"
)

// Waterfall resolves a symbol to its canonical variants and tries, in
// order: the bar cache, the static snapshot, then each adapter for the
// category in priority order. The first non-empty series wins and is
// written back to the cache. Exhausting every variant and adapter
// returns an empty slice with a nil error: "no data" is not a failure.
type Waterfall struct {
	cache    store.BarStore
	snapshot *SnapshotSource
	adapters []*limited
	log      zerolog.Logger
}

// AdapterConfig pairs an adapter with its minimum call spacing.
type AdapterConfig struct {
	Adapter     Adapter
	MinInterval time.Duration
}

// NewWaterfall builds the chain. Adapters are sorted by priority once,
// ascending, and iterated deterministically afterwards.
func NewWaterfall(cache store.BarStore, snapshot *SnapshotSource, configs []AdapterConfig, log zerolog.Logger) *Waterfall {
	metrics.Register()
	adapters := make([]*limited, 0, len(configs))
	for _, c := range configs {
		adapters = append(adapters, withGuards(c.Adapter, c.MinInterval))
	}
	sort.SliceStable(adapters, func(i, j int) bool {
		return adapters[i].Priority() < adapters[j].Priority()
	})
	if snapshot == nil {
		snapshot = &SnapshotSource{bars: map[string][]model.Bar{}}
	}
	return &Waterfall{
		cache:    cache,
		snapshot: snapshot,
		adapters: adapters,
		log:      log.With().Str("component", "waterfall").Logger(),
	}
}

// Fetch runs the full fallback chain for one symbol and date range.
func (w *Waterfall) Fetch(ctx context.Context, symbol string, start, end time.Time, category model.Category) ([]model.Bar, error) {
	canonical := symbols.Resolve(symbol)
	variants := symbols.VariantsOf(canonical)

	// Stage 1: cache.
	for _, variant := range variants {
		bars, err := w.cache.Bars(variant, start, end)
		if err != nil {
			w.log.Warn().Err(err).Str("symbol", variant).Msg("cache read failed")
			continue
		}
		if len(bars) > 0 {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			return bars, nil
		}
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	// Stage 2: static snapshot.
	for _, variant := range variants {
		if bars := w.snapshot.Bars(variant, start, end); len(bars) > 0 {
			w.persist(canonical, bars)
			return bars, nil
		}
	}

	// Stage 3: vendor adapters, priority order, each variant in turn.
	for _, adapter := range w.adapters {
		if !adapter.Supports(category) {
			continue
		}
		for _, variant := range variants {
			bars, err := adapter.Fetch(ctx, variant, start, end)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				metrics.ProviderCalls.WithLabelValues(adapter.Name(), "error").Inc()
				w.log.Warn().Err(err).
					Str("provider", adapter.Name()).
					Str("symbol", variant).
					Msg("provider call failed, continuing fallback")
				continue
			}
			if len(bars) == 0 {
				metrics.ProviderCalls.WithLabelValues(adapter.Name(), "empty").Inc()
				continue
			}
			metrics.ProviderCalls.WithLabelValues(adapter.Name(), "ok").Inc()
			w.persist(canonical, bars)
			return bars, nil
		}
	}

	w.log.Debug().Str("symbol", canonical).Msg("all sources exhausted, no data")
	return nil, nil
}

// persist writes fetched bars back to the cache. Persist failures are
// logged, never propagated: the caller still gets the data.
func (w *Waterfall) persist(symbol string, bars []model.Bar) {
	if err := w.cache.UpsertBars(symbol, bars); err != nil {
		w.log.Error().Err(err).Str("symbol", symbol).Msg("cache write-back failed")
	}
}
