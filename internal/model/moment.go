package model

import "time"

// Timeframe is the granularity a Gann moment belongs to.
type Timeframe string

const (
	TimeframeDaily     Timeframe = "Daily"
	TimeframeWeekly    Timeframe = "Weekly"
	TimeframeMonthly   Timeframe = "Monthly"
	TimeframeQuarterly Timeframe = "Quarterly"
	TimeframeYearly    Timeframe = "Yearly"
)

// GannMoment is a deterministic recurring calendar marker. Moments are
// regenerated from the date on every call and never persisted.
type GannMoment struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	At        time.Time `json:"at"`
	Timeframe Timeframe `json:"timeframe"`
	Angle     string    `json:"angle"`
	Category  string    `json:"category"`
	Color     string    `json:"color"`
	EventType string    `json:"eventType"`
}
