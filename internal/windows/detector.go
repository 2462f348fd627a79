// Package windows scans a forward horizon per instrument and flags
// contiguous date ranges where the combined score stays in one band.
package windows

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"TradeScope/internal/engine"
	"TradeScope/internal/model"
	"TradeScope/internal/seasonal"
	"TradeScope/internal/symbols"
)

// Rater is the slice of the engine the detector needs.
type Rater interface {
	Rate(ctx context.Context, symbol string, category model.Category, opts engine.Options) (*model.TickerRating, error)
}

// Detector re-applies the engine's composite across a forward horizon.
type Detector struct {
	rater   Rater
	weights engine.Weights
	log     zerolog.Logger
}

// New constructs a Detector sharing the engine's weights so the
// forward combination matches the rating composition.
func New(rater Rater, weights engine.Weights, log zerolog.Logger) *Detector {
	if weights == (engine.Weights{}) {
		weights = engine.DefaultWeights()
	}
	return &Detector{
		rater:   rater,
		weights: weights,
		log:     log.With().Str("component", "windows").Logger(),
	}
}

// Window classification thresholds over the combined score.
const (
	highProbabilityMin = 80.0
	moderateMin        = 60.0
	avoidMax           = 40.0

	// extremeVolatilityMax flags days whose base volatility score sits
	// at the wild end regardless of the combined score.
	extremeVolatilityMax = 20.0
)

func classifyDay(combined, volatilityScore float64) model.WindowType {
	if volatilityScore <= extremeVolatilityMax {
		return model.WindowExtremeVolatility
	}
	switch {
	case combined >= highProbabilityMin:
		return model.WindowHighProbability
	case combined >= moderateMin:
		return model.WindowModerate
	case combined < avoidMax:
		return model.WindowAvoid
	default:
		return model.WindowModerate
	}
}

// Detect scans daysAhead forward days for one symbol. The base rating
// is computed once; each future day recombines its technical composite
// with that day's seasonal score using the engine weights, so windows
// move with the calendar. Output is sorted by combined score
// descending. A symbol without data yields an empty list, nil error.
func (d *Detector) Detect(ctx context.Context, symbol string, category model.Category, daysAhead int) ([]model.TradingWindow, error) {
	canonical := symbols.Resolve(symbol)
	rating, err := d.rater.Rate(ctx, canonical, category, engine.Options{})
	if err != nil {
		return nil, err
	}
	if rating == nil {
		return nil, nil
	}

	type dayScore struct {
		date     time.Time
		combined float64
		bucket   model.WindowType
	}
	days := make([]dayScore, 0, daysAhead)
	start := rating.PriceDate
	for i := 1; i <= daysAhead; i++ {
		date := start.AddDate(0, 0, i)
		fundamental := d.weights.Seasonal*seasonal.Score(date) + d.weights.Volume*rating.Scores.Volume
		combined := d.weights.Technical*rating.Scores.Technical + d.weights.Fundamental*fundamental
		days = append(days, dayScore{
			date:     date,
			combined: combined,
			bucket:   classifyDay(combined, rating.Scores.Volatility),
		})
	}

	// Coalesce adjacent same-bucket days into windows.
	var out []model.TradingWindow
	for i := 0; i < len(days); {
		j := i
		sum := 0.0
		for j < len(days) && days[j].bucket == days[i].bucket {
			sum += days[j].combined
			j++
		}
		n := j - i
		out = append(out, model.TradingWindow{
			Symbol:        canonical,
			Category:      category,
			Type:          days[i].bucket,
			CombinedScore: sum / float64(n),
			StartDate:     days[i].date,
			EndDate:       days[j-1].date,
			DaysInWindow:  n,
		})
		i = j
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CombinedScore > out[j].CombinedScore
	})
	return out, nil
}

// BulkOptions tune a bulk scan.
type BulkOptions struct {
	Sentinels bool     // scan the fixed sentinel universe
	Symbols   []string // or an explicit list
	DaysAhead int
	TopN      int // default 10
}

// BulkResult is the flattened, globally ranked outcome plus the
// per-symbol grouping the query layer serves.
type BulkResult struct {
	Windows  []model.TradingWindow
	BySymbol map[string][]model.TradingWindow
}

// DetectBulk fans out one goroutine per symbol — deliberately
// unbounded, the sentinel set is small and each symbol's own work is
// already rate-limited by the adapters it calls — then merges, sorts
// globally, and truncates. A failing symbol contributes an empty list.
func (d *Detector) DetectBulk(ctx context.Context, opts BulkOptions) BulkResult {
	if opts.TopN <= 0 {
		opts.TopN = 10
	}
	targets := opts.Symbols
	if opts.Sentinels || len(targets) == 0 {
		targets = symbols.AllSentinels()
	}

	var mu sync.Mutex
	bySymbol := make(map[string][]model.TradingWindow, len(targets))
	var wg sync.WaitGroup

	for _, sym := range targets {
		wg.Add(1)
		go func(sym string) {
			defer wg.Done()
			canonical := symbols.Resolve(sym)
			wins := d.detectRecovered(ctx, canonical, opts.DaysAhead)
			mu.Lock()
			bySymbol[canonical] = wins
			mu.Unlock()
		}(sym)
	}
	wg.Wait()

	var all []model.TradingWindow
	for _, wins := range bySymbol {
		all = append(all, wins...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CombinedScore > all[j].CombinedScore
	})
	if len(all) > opts.TopN {
		all = all[:opts.TopN]
	}
	return BulkResult{Windows: all, BySymbol: bySymbol}
}

// detectRecovered shields the bulk fan-out from a panicking scan: a
// failing or panicking symbol contributes an empty list, never aborts
// the whole result.
func (d *Detector) detectRecovered(ctx context.Context, canonical string, daysAhead int) (wins []model.TradingWindow) {
	defer func() {
		if rec := recover(); rec != nil {
			d.log.Error().Str("symbol", canonical).Any("panic", rec).Msg("window scan panicked")
			wins = nil
		}
	}()

	category := symbols.DetectCategory(canonical)
	wins, err := d.Detect(ctx, canonical, category, daysAhead)
	if err != nil {
		d.log.Warn().Err(err).Str("symbol", canonical).Msg("window scan failed, contributing no windows")
		return nil
	}
	return wins
}
