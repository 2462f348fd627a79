package model

import "time"

// Confidence is the 5-level ordinal attached to a rating.
type Confidence string

const (
	ConfidenceVeryHigh Confidence = "very_high"
	ConfidenceHigh     Confidence = "high"
	ConfidenceModerate Confidence = "moderate"
	ConfidenceLow      Confidence = "low"
	ConfidenceVeryLow  Confidence = "very_low"
)

// Recommendation is the 5-level action ordinal.
type Recommendation string

const (
	RecStrongBuy  Recommendation = "strong_buy"
	RecBuy        Recommendation = "buy"
	RecHold       Recommendation = "hold"
	RecSell       Recommendation = "sell"
	RecStrongSell Recommendation = "strong_sell"
)

// Scores holds every bounded [0,100] sub-score plus the composites.
type Scores struct {
	Confluence  float64 `json:"confluence"`
	Proximity   float64 `json:"proximity"`
	Momentum    float64 `json:"momentum"`
	Seasonal    float64 `json:"seasonal"`
	Volatility  float64 `json:"volatility"`
	Trend       float64 `json:"trend"`
	Volume      float64 `json:"volume"`
	Technical   float64 `json:"technical"`
	Fundamental float64 `json:"fundamental"`
	Total       float64 `json:"total"`
}

// Projections estimate when price could reach the next key level,
// extrapolated from the trailing average daily move.
type Projections struct {
	DaysToTarget int       `json:"daysToTarget"`
	Earliest     time.Time `json:"earliest"`
	Likely       time.Time `json:"likely"`
	Latest       time.Time `json:"latest"`
}

// TickerRating is the full scored assessment of one instrument.
// It is constructed once and never mutated afterwards.
type TickerRating struct {
	Symbol           string         `json:"symbol"`
	Category         Category       `json:"category"`
	Sector           string         `json:"sector,omitempty"`
	CurrentPrice     float64        `json:"currentPrice"`
	PriceDate        time.Time      `json:"priceDate"`
	NextKeyLevel     PriceLevel     `json:"nextKeyLevel"`
	Scores           Scores         `json:"scores"`
	Rating           string         `json:"rating"`
	Confidence       Confidence     `json:"confidence"`
	Recommendation   Recommendation `json:"recommendation"`
	IngressAlignment string         `json:"ingressAlignment"`
	Reasons          []string       `json:"reasons"`
	Warnings         []string       `json:"warnings"`
	Projections      Projections    `json:"projections"`
	Rank             int            `json:"rank"`
}
