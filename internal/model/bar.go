package model

import "time"

// Bar represents a single candlestick bar.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// LevelType distinguishes support from resistance.
type LevelType string

const (
	LevelSupport    LevelType = "support"
	LevelResistance LevelType = "resistance"
)

// PriceLevel is one labeled level produced by a level provider.
// Levels are consumed read-only by the scoring engine.
type PriceLevel struct {
	Price    float64
	Type     LevelType
	Label    string
	Strength float64
}

// MinBarsForScoring is the hard floor below which no scoring proceeds.
const MinBarsForScoring = 2
