package engine

import (
	"fmt"
	"math"

	"TradeScope/internal/model"
)

// gradeFor maps a total score onto the letter scale. Steps are checked
// highest first with inclusive boundaries.
func gradeFor(total float64, steps []GradeStep) string {
	for _, s := range steps {
		if total >= s.Min {
			return s.Grade
		}
	}
	return gradeFloor
}

// confidenceFor is the fixed 5-level ordinal over total score.
func confidenceFor(total float64) model.Confidence {
	switch {
	case total >= 90:
		return model.ConfidenceVeryHigh
	case total >= 80:
		return model.ConfidenceHigh
	case total >= 65:
		return model.ConfidenceModerate
	case total >= 50:
		return model.ConfidenceLow
	default:
		return model.ConfidenceVeryLow
	}
}

// recommendationFor biases the action by the key level's side: price
// approaching resistance reads bullish, approaching support bearish.
// Low-conviction totals hold either way.
func recommendationFor(total float64, levelType model.LevelType) model.Recommendation {
	bullish := levelType == model.LevelResistance
	switch {
	case total >= 85 && bullish:
		return model.RecStrongBuy
	case total >= 85:
		return model.RecStrongSell
	case total >= 70 && bullish:
		return model.RecBuy
	case total >= 70:
		return model.RecSell
	default:
		return model.RecHold
	}
}

// deriveRemarks produces the human-readable reasons and warnings from
// threshold checks on the sub-scores and distances. Derived text only;
// never an input to scoring.
func deriveRemarks(s model.Scores, price float64, key model.PriceLevel, anchors []string) (reasons, warnings []string) {
	distPct := 0.0
	if price != 0 {
		distPct = math.Abs(key.Price-price) / price * 100
	}

	if s.Confluence >= 75 {
		reasons = append(reasons, fmt.Sprintf("strong confluence of levels near %.2f", key.Price))
	}
	if s.Proximity >= 80 {
		reasons = append(reasons, fmt.Sprintf("price within %.1f%% of %s", distPct, key.Label))
	}
	if s.Momentum >= 70 {
		reasons = append(reasons, "momentum agrees with the key level direction")
	}
	if s.Trend >= 85 {
		reasons = append(reasons, "moving averages in full bullish alignment")
	}
	if s.Volume >= 85 {
		reasons = append(reasons, "volume well above the trailing average")
	}
	if s.Seasonal >= 80 && len(anchors) > 0 {
		reasons = append(reasons, "seasonal anchor nearby: "+anchors[0])
	}

	if s.Momentum <= 30 {
		warnings = append(warnings, "momentum runs against the key level direction")
	}
	if s.Volatility <= 30 {
		warnings = append(warnings, "volatility outside the tradeable band")
	}
	if distPct > 10 {
		warnings = append(warnings, fmt.Sprintf("key level is %.1f%% away", distPct))
	}
	return reasons, warnings
}
