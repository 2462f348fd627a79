package model

import "time"

// WindowType buckets a forward window by its combined score band.
type WindowType string

const (
	WindowHighProbability   WindowType = "high_probability"
	WindowModerate          WindowType = "moderate"
	WindowAvoid             WindowType = "avoid"
	WindowExtremeVolatility WindowType = "extreme_volatility"
)

// TradingWindow is one contiguous forward date range whose combined
// score stays within a single band.
type TradingWindow struct {
	Symbol        string     `json:"symbol"`
	Category      Category   `json:"category"`
	Type          WindowType `json:"type"`
	CombinedScore float64    `json:"combinedScore"`
	StartDate     time.Time  `json:"startDate"`
	EndDate       time.Time  `json:"endDate"`
	DaysInWindow  int        `json:"daysInWindow"`
}
