package engine

import (
	"math"

	"TradeScope/internal/calculator"
	"TradeScope/internal/model"
)

// Scoring windows. Momentum looks at the last momentumWindow bars,
// trend at the 20/50 moving-average pair, volume and projections at
// the trailing twenty bars.
const (
	momentumWindow   = 5
	atrPeriod        = 14
	trendFastPeriod  = 20
	trendSlowPeriod  = 50
	volumePeriod     = 20
	projectionPeriod = 20

	// confluenceBand is the fractional distance within which levels
	// count as clustered around the key level.
	confluenceBand = 0.005
)

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// selectKeyLevel picks the level nearest the current price, preferring
// resistance on an exact distance tie.
func selectKeyLevel(lvls []model.PriceLevel, price float64) (model.PriceLevel, bool) {
	if len(lvls) == 0 {
		return model.PriceLevel{}, false
	}
	best := lvls[0]
	bestDist := math.Abs(best.Price - price)
	for _, lv := range lvls[1:] {
		d := math.Abs(lv.Price - price)
		if d < bestDist || (d == bestDist && lv.Type == model.LevelResistance && best.Type != model.LevelResistance) {
			best = lv
			bestDist = d
		}
	}
	return best, true
}

// scoreConfluence counts levels clustered within the band around the
// key level, 25 points per level, capped at 100.
func scoreConfluence(lvls []model.PriceLevel, key model.PriceLevel) float64 {
	count := 0
	for _, lv := range lvls {
		if math.Abs(lv.Price-key.Price) <= key.Price*confluenceBand {
			count++
		}
	}
	return clampScore(float64(count) * 25)
}

// scoreProximity decreases linearly in percent distance to the key
// level: 100 at the level, 0 at five percent away.
func scoreProximity(price float64, key model.PriceLevel) float64 {
	if price == 0 {
		return 0
	}
	distPct := math.Abs(key.Price-price) / price * 100
	return clampScore(100 - distPct*20)
}

// scoreMomentum checks whether the short-window price change agrees
// with the direction the key level implies (toward resistance = up,
// toward support = down), scaled by magnitude and penalized harder
// when it disagrees.
func scoreMomentum(bars []model.Bar, key model.PriceLevel) float64 {
	chg := calculator.RecentChangePercent(bars, momentumWindow)
	wantUp := key.Type == model.LevelResistance
	aligned := (wantUp && chg >= 0) || (!wantUp && chg <= 0)
	mag := math.Abs(chg)
	if aligned {
		return clampScore(50 + mag*10)
	}
	return clampScore(50 - mag*12.5)
}

// scoreVolatility rates ATR as a percent of price. Both extremes score
// poorly; a moderate band peaks.
func scoreVolatility(bars []model.Bar, price float64) float64 {
	atr, err := calculator.ATR(bars, atrPeriod)
	if err != nil || price == 0 {
		return 50
	}
	atrPct := atr / price * 100
	switch {
	case atrPct < 0.5:
		return 25 // too quiet
	case atrPct < 1.0:
		return 60
	case atrPct <= 3.0:
		return 90 // tradeable band
	case atrPct <= 5.0:
		return 55
	default:
		return 15 // too wild
	}
}

// scoreTrend buckets the price against the 20- and 50-bar moving
// averages around a 50 baseline.
func scoreTrend(bars []model.Bar, price float64) float64 {
	fast, errFast := calculator.SMA(bars, trendFastPeriod)
	slow, errSlow := calculator.SMA(bars, trendSlowPeriod)
	if errFast != nil || errSlow != nil {
		return 50
	}
	switch {
	case price > fast && fast > slow:
		return 85 // bull alignment
	case price > fast && price > slow:
		return 65
	case price < fast && fast < slow:
		return 20 // bear alignment
	case price < fast:
		return 40
	default:
		return 50
	}
}

// scoreVolume buckets the last bar's volume against the trailing
// average.
func scoreVolume(bars []model.Bar) float64 {
	avg := calculator.AvgVolume(bars, volumePeriod)
	if avg == 0 {
		return 50
	}
	ratio := bars[len(bars)-1].Volume / avg
	switch {
	case ratio >= 2.0:
		return 95
	case ratio >= 1.5:
		return 85
	case ratio >= 1.0:
		return 70
	case ratio >= 0.7:
		return 50
	case ratio >= 0.4:
		return 35
	default:
		return 20
	}
}

// compose folds the sub-scores into technical, fundamental, and total
// using the configured weights.
func (w Weights) compose(s *model.Scores) {
	s.Technical = w.Confluence*s.Confluence +
		w.Proximity*s.Proximity +
		w.Momentum*s.Momentum +
		w.Trend*s.Trend +
		w.Volatility*s.Volatility
	s.Fundamental = w.Seasonal*s.Seasonal + w.Volume*s.Volume
	s.Total = w.Technical*s.Technical + w.Fundamental*s.Fundamental
}
