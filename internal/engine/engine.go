// Package engine fuses price levels, momentum, trend, volume, and
// seasonal context into a single tradeability rating per instrument.
package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"TradeScope/internal/levels"
	"TradeScope/internal/model"
	"TradeScope/internal/seasonal"
	"TradeScope/internal/symbols"
)

// BarSource supplies price history; the provider waterfall implements
// it. An empty series with a nil error means "no data".
type BarSource interface {
	Fetch(ctx context.Context, symbol string, start, end time.Time, category model.Category) ([]model.Bar, error)
}

// Engine computes TickerRatings.
type Engine struct {
	bars    BarSource
	levels  levels.Provider
	weights Weights
	grades  []GradeStep
	log     zerolog.Logger
}

// New constructs an Engine. Zero weights fall back to the defaults.
func New(bars BarSource, lp levels.Provider, weights Weights, log zerolog.Logger) *Engine {
	if weights == (Weights{}) {
		weights = DefaultWeights()
	}
	return &Engine{
		bars:    bars,
		levels:  lp,
		weights: weights,
		grades:  DefaultGrades(),
		log:     log.With().Str("component", "engine").Logger(),
	}
}

// Options tune a single rating computation.
type Options struct {
	LookbackDays    int       // default defaultLookbackDays
	MinBars         int       // default model.MinBarsForScoring
	AsOf            time.Time // default now
	DisableSeasonal bool
}

const defaultLookbackDays = 730

func (o *Options) normalize() {
	if o.LookbackDays <= 0 {
		o.LookbackDays = defaultLookbackDays
	}
	if o.MinBars < model.MinBarsForScoring {
		o.MinBars = model.MinBarsForScoring
	}
	if o.AsOf.IsZero() {
		o.AsOf = time.Now()
	}
}

// sectorLabels names the sector column per category.
var sectorLabels = map[model.Category]string{
	model.CategoryEquity:     "Equities",
	model.CategoryCrypto:     "Digital Assets",
	model.CategoryForex:      "Currencies",
	model.CategoryCommodity:  "Commodities",
	model.CategoryRatesMacro: "Rates & Macro",
	model.CategoryStress:     "Volatility",
}

// Rate scores one symbol. A nil rating with a nil error means no data
// (not enough bars, or no levels) — callers drop it, they do not fail.
func (e *Engine) Rate(ctx context.Context, symbol string, category model.Category, opts Options) (*model.TickerRating, error) {
	opts.normalize()
	canonical := symbols.Resolve(symbol)

	start := opts.AsOf.AddDate(0, 0, -opts.LookbackDays)
	bars, err := e.bars.Fetch(ctx, canonical, start, opts.AsOf, category)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", canonical, err)
	}
	if len(bars) < opts.MinBars {
		e.log.Debug().Str("symbol", canonical).Int("bars", len(bars)).Msg("insufficient history")
		return nil, nil
	}

	last := bars[len(bars)-1]
	price := last.Close
	priceDate := last.Time

	lvls := e.levels.Levels(bars, price)
	key, ok := selectKeyLevel(lvls, price)
	if !ok {
		e.log.Debug().Str("symbol", canonical).Msg("no levels for series")
		return nil, nil
	}

	scores := model.Scores{
		Confluence: scoreConfluence(lvls, key),
		Proximity:  scoreProximity(price, key),
		Momentum:   scoreMomentum(bars, key),
		Volatility: scoreVolatility(bars, price),
		Trend:      scoreTrend(bars, price),
		Volume:     scoreVolume(bars),
		Seasonal:   50,
	}
	var anchors []string
	if !opts.DisableSeasonal {
		scores.Seasonal = seasonal.Score(priceDate)
		anchors = seasonal.NearbyAnchors(priceDate)
	}
	e.weights.compose(&scores)

	reasons, warnings := deriveRemarks(scores, price, key, anchors)

	ingress := seasonal.CurrentIngress(priceDate)
	alignment := "neutral in " + ingress
	if scores.Seasonal >= 60 {
		alignment = "aligned with " + ingress
	}

	return &model.TickerRating{
		Symbol:           canonical,
		Category:         category,
		Sector:           sectorLabels[category],
		CurrentPrice:     price,
		PriceDate:        priceDate,
		NextKeyLevel:     key,
		Scores:           scores,
		Rating:           gradeFor(scores.Total, e.grades),
		Confidence:       confidenceFor(scores.Total),
		Recommendation:   recommendationFor(scores.Total, key.Type),
		IngressAlignment: alignment,
		Reasons:          reasons,
		Warnings:         warnings,
		Projections:      projectReach(bars, price, key, priceDate),
	}, nil
}

// BatchOptions tune a batch computation.
type BatchOptions struct {
	Symbols         []string       // explicit list; wins over Category
	Category        model.Category // sentinel filter; empty means full universe
	MinScore        float64        // default 75
	MaxResults      int            // default 50
	Workers         int            // default 5, bounded to respect adapter rate limits
	LookbackDays    int
	DisableSeasonal bool
}

func (o *BatchOptions) normalize() {
	if o.MinScore <= 0 {
		o.MinScore = 75
	}
	if o.MaxResults <= 0 {
		o.MaxResults = 50
	}
	if o.Workers <= 0 {
		o.Workers = 5
	}
}

// targets resolves the symbol set for a batch.
func (o *BatchOptions) targets() []string {
	if len(o.Symbols) > 0 {
		out := make([]string, 0, len(o.Symbols))
		for _, s := range o.Symbols {
			out = append(out, symbols.Resolve(s))
		}
		return out
	}
	if o.Category != "" {
		return symbols.Sentinels(o.Category)
	}
	return symbols.AllSentinels()
}

// Batch rates a symbol set with a bounded worker pool, filters by
// MinScore, sorts total-descending, truncates to MaxResults, and
// assigns ranks. Symbols with no data are dropped silently; a panic in
// one symbol's scoring is recovered and only that symbol is lost.
// Cancellation returns whatever subset completed.
func (e *Engine) Batch(ctx context.Context, opts BatchOptions) []model.TickerRating {
	opts.normalize()
	targets := opts.targets()

	jobs := make(chan string)
	var mu sync.Mutex
	var ratings []model.TickerRating
	var wg sync.WaitGroup

	for i := 0; i < opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sym := range jobs {
				if r := e.rateRecovered(ctx, sym, opts); r != nil {
					mu.Lock()
					ratings = append(ratings, *r)
					mu.Unlock()
				}
			}
		}()
	}

feed:
	for _, sym := range targets {
		select {
		case jobs <- sym:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	filtered := ratings[:0]
	for _, r := range ratings {
		if r.Scores.Total >= opts.MinScore {
			filtered = append(filtered, r)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Scores.Total > filtered[j].Scores.Total
	})
	if len(filtered) > opts.MaxResults {
		filtered = filtered[:opts.MaxResults]
	}
	for i := range filtered {
		filtered[i].Rank = i + 1
	}
	return filtered
}

// rateRecovered shields the batch loop from a panicking computation.
func (e *Engine) rateRecovered(ctx context.Context, symbol string, opts BatchOptions) (rating *model.TickerRating) {
	defer func() {
		if rec := recover(); rec != nil {
			e.log.Error().Str("symbol", symbol).Any("panic", rec).Msg("rating computation panicked")
			rating = nil
		}
	}()

	category := symbols.DetectCategory(symbol)
	r, err := e.Rate(ctx, symbol, category, Options{
		LookbackDays:    opts.LookbackDays,
		DisableSeasonal: opts.DisableSeasonal,
	})
	if err != nil {
		e.log.Warn().Err(err).Str("symbol", symbol).Msg("rating failed, dropping from batch")
		return nil
	}
	return r
}
