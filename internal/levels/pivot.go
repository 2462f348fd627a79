package levels

import (
	"fmt"
	"sort"

	"TradeScope/internal/model"
)

// PivotProvider is the built-in level provider: local swing highs and
// lows over a rolling window, with strength from repeat touches. It
// stands in wherever a richer external geometry source is not wired.
type PivotProvider struct {
	Window    int     // bars on each side a pivot must dominate
	Tolerance float64 // fractional distance treated as the same level
}

// NewPivotProvider returns a provider with the default window.
func NewPivotProvider() *PivotProvider {
	return &PivotProvider{Window: 5, Tolerance: 0.005}
}

// Levels extracts swing levels and classifies each against the current
// price: above is resistance, below is support.
func (p *PivotProvider) Levels(bars []model.Bar, currentPrice float64) []model.PriceLevel {
	if len(bars) < p.Window*2+1 {
		return nil
	}

	type cluster struct {
		price   float64
		touches int
	}
	var clusters []*cluster

	add := func(price float64) {
		for _, c := range clusters {
			if price >= c.price*(1-p.Tolerance) && price <= c.price*(1+p.Tolerance) {
				// Running mean keeps the cluster centered on its touches.
				c.price = (c.price*float64(c.touches) + price) / float64(c.touches+1)
				c.touches++
				return
			}
		}
		clusters = append(clusters, &cluster{price: price, touches: 1})
	}

	for i := p.Window; i < len(bars)-p.Window; i++ {
		isHigh, isLow := true, true
		for j := i - p.Window; j <= i+p.Window; j++ {
			if j == i {
				continue
			}
			if bars[j].High >= bars[i].High {
				isHigh = false
			}
			if bars[j].Low <= bars[i].Low {
				isLow = false
			}
		}
		if isHigh {
			add(bars[i].High)
		}
		if isLow {
			add(bars[i].Low)
		}
	}

	out := make([]model.PriceLevel, 0, len(clusters))
	for i, c := range clusters {
		lv := model.PriceLevel{
			Price:    c.price,
			Strength: float64(c.touches),
		}
		if c.price >= currentPrice {
			lv.Type = model.LevelResistance
			lv.Label = fmt.Sprintf("Pivot R%d", i+1)
		} else {
			lv.Type = model.LevelSupport
			lv.Label = fmt.Sprintf("Pivot S%d", i+1)
		}
		out = append(out, lv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	return out
}
