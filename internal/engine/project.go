package engine

import (
	"math"
	"time"

	"TradeScope/internal/calculator"
	"TradeScope/internal/model"
)

// fallbackReachDays is used when the series shows no average movement
// to extrapolate from.
const fallbackReachDays = 30

// maxReachDays caps the extrapolation horizon.
const maxReachDays = 365

// projectReach estimates when price could reach the key level by
// extrapolating the trailing average absolute daily move; the interval
// brackets that estimate at half, one, and two times.
func projectReach(bars []model.Bar, price float64, key model.PriceLevel, from time.Time) model.Projections {
	avgMove := calculator.AvgAbsDailyChange(bars, projectionPeriod)
	dist := math.Abs(key.Price - price)

	days := fallbackReachDays
	if avgMove > 0 {
		days = int(math.Ceil(dist / avgMove))
		if days < 1 {
			days = 1
		}
		if days > maxReachDays {
			days = maxReachDays
		}
	}

	earliest := int(math.Ceil(float64(days) * 0.5))
	if earliest < 1 {
		earliest = 1
	}
	return model.Projections{
		DaysToTarget: days,
		Earliest:     from.AddDate(0, 0, earliest),
		Likely:       from.AddDate(0, 0, days),
		Latest:       from.AddDate(0, 0, days*2),
	}
}
