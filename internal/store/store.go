// Package store persists fetched price history and the featured-rating
// snapshot table. The bar cache is the first stage of the provider
// waterfall; featured ratings are a denormalized read path refreshed
// out-of-band.
package store

import (
	"database/sql"
	"time"

	"TradeScope/internal/model"
)

// BarStore is the cache consulted before any external fetch.
// Upserts are keyed (symbol, date) and idempotent, so concurrent
// workers writing the same key are safe.
type BarStore interface {
	Bars(symbol string, start, end time.Time) ([]model.Bar, error)
	UpsertBars(symbol string, bars []model.Bar) error
}

// FeaturedStore holds the materialized top-rating snapshot per category.
type FeaturedStore interface {
	FeaturedRatings(category model.Category) ([]model.TickerRating, error)
	UpsertFeatured(ratings []model.TickerRating) error
	FeaturedRefreshedAt() (time.Time, error)
}

// Store is the full persistence surface.
type Store interface {
	BarStore
	FeaturedStore
	Close() error
}

// FeaturedRow is the partial DTO a featured cache row scans into.
// Every numeric field is optional; ToRating fills documented defaults.
type FeaturedRow struct {
	Symbol         string
	Category       string
	Sector         sql.NullString
	CurrentPrice   sql.NullFloat64
	PriceDate      sql.NullInt64
	LevelPrice     sql.NullFloat64
	LevelType      sql.NullString
	LevelLabel     sql.NullString
	Confluence     sql.NullFloat64
	Proximity      sql.NullFloat64
	Momentum       sql.NullFloat64
	Seasonal       sql.NullFloat64
	Volatility     sql.NullFloat64
	Trend          sql.NullFloat64
	Volume         sql.NullFloat64
	Technical      sql.NullFloat64
	Fundamental    sql.NullFloat64
	Total          sql.NullFloat64
	Rating         sql.NullString
	Confidence     sql.NullString
	Recommendation sql.NullString
	ReachDate      sql.NullInt64
	Rank           sql.NullInt64
}

// Defaults applied when a featured row is missing fields:
// scores 0, rating "F", confidence/recommendation lowest ordinals,
// price date now, reach date now + 30 days, level type support.
const defaultReachDays = 30

// ToRating maps a partial featured row onto a full TickerRating,
// applying the documented defaults for absent fields.
func (r *FeaturedRow) ToRating(now time.Time) model.TickerRating {
	rating := model.TickerRating{
		Symbol:   r.Symbol,
		Category: model.Category(r.Category),
		Sector:   r.Sector.String,
		Scores: model.Scores{
			Confluence:  r.Confluence.Float64,
			Proximity:   r.Proximity.Float64,
			Momentum:    r.Momentum.Float64,
			Seasonal:    r.Seasonal.Float64,
			Volatility:  r.Volatility.Float64,
			Trend:       r.Trend.Float64,
			Volume:      r.Volume.Float64,
			Technical:   r.Technical.Float64,
			Fundamental: r.Fundamental.Float64,
			Total:       r.Total.Float64,
		},
		CurrentPrice: r.CurrentPrice.Float64,
		Rank:         int(r.Rank.Int64),
	}

	rating.Rating = "F"
	if r.Rating.Valid {
		rating.Rating = r.Rating.String
	}
	rating.Confidence = model.ConfidenceVeryLow
	if r.Confidence.Valid {
		rating.Confidence = model.Confidence(r.Confidence.String)
	}
	rating.Recommendation = model.RecHold
	if r.Recommendation.Valid {
		rating.Recommendation = model.Recommendation(r.Recommendation.String)
	}

	rating.PriceDate = now
	if r.PriceDate.Valid {
		rating.PriceDate = time.Unix(r.PriceDate.Int64, 0).UTC()
	}

	level := model.PriceLevel{Type: model.LevelSupport}
	if r.LevelPrice.Valid {
		level.Price = r.LevelPrice.Float64
	}
	if r.LevelType.Valid {
		level.Type = model.LevelType(r.LevelType.String)
	}
	if r.LevelLabel.Valid {
		level.Label = r.LevelLabel.String
	}
	rating.NextKeyLevel = level

	likely := now.AddDate(0, 0, defaultReachDays)
	if r.ReachDate.Valid {
		likely = time.Unix(r.ReachDate.Int64, 0).UTC()
	}
	rating.Projections = model.Projections{Likely: likely}

	return rating
}
