// Package calculator holds the pure price-series math the scoring
// engine builds on.
package calculator

import (
	"errors"
	"math"

	"TradeScope/internal/model"
)

// SMA computes the simple moving average of the last `period` closes.
func SMA(bars []model.Bar, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(bars) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(bars) - period; i < len(bars); i++ {
		sum += bars[i].Close
	}
	return sum / float64(period), nil
}

// ATR computes the Wilder average true range over the given period.
// Requires period+1 bars.
func ATR(bars []model.Bar, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(bars) < period+1 {
		return 0, errors.New("not enough data for ATR calculation")
	}
	// Seed with the simple average of the first `period` true ranges.
	atr := 0.0
	for i := 1; i <= period; i++ {
		atr += trueRange(bars[i], bars[i-1])
	}
	atr /= float64(period)
	// Wilder smoothing for the rest.
	for i := period + 1; i < len(bars); i++ {
		atr = (atr*float64(period-1) + trueRange(bars[i], bars[i-1])) / float64(period)
	}
	return atr, nil
}

func trueRange(cur, prev model.Bar) float64 {
	tr := cur.High - cur.Low
	if hc := math.Abs(cur.High - prev.Close); hc > tr {
		tr = hc
	}
	if lc := math.Abs(cur.Low - prev.Close); lc > tr {
		tr = lc
	}
	return tr
}

// AvgAbsDailyChange averages the absolute close-to-close move over the
// trailing `period` bars. Used to extrapolate days-to-target.
func AvgAbsDailyChange(bars []model.Bar, period int) float64 {
	n := len(bars)
	if n < 2 {
		return 0
	}
	start := n - period
	if start < 1 {
		start = 1
	}
	sum, count := 0.0, 0
	for i := start; i < n; i++ {
		sum += math.Abs(bars[i].Close - bars[i-1].Close)
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// RecentChangePercent returns the percent price change across the last
// `window` bars (close vs close window bars ago).
func RecentChangePercent(bars []model.Bar, window int) float64 {
	n := len(bars)
	if n < 2 {
		return 0
	}
	idx := n - 1 - window
	if idx < 0 {
		idx = 0
	}
	ref := bars[idx].Close
	if ref == 0 {
		return 0
	}
	return (bars[n-1].Close - ref) / ref * 100
}

// AvgVolume averages volume over the trailing `period` bars, excluding
// the most recent bar so it can be compared against it.
func AvgVolume(bars []model.Bar, period int) float64 {
	n := len(bars)
	if n < 2 {
		return 0
	}
	end := n - 1
	start := end - period
	if start < 0 {
		start = 0
	}
	sum, count := 0.0, 0
	for i := start; i < end; i++ {
		sum += bars[i].Volume
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
