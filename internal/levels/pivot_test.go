package levels

import (
	"testing"
	"time"

	"TradeScope/internal/model"
)

// sawtooth builds a series oscillating between two pivot prices so both
// a swing high and a swing low appear repeatedly.
func sawtooth(n int) []model.Bar {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, n)
	for i := range bars {
		phase := i % 12
		c := 100.0 + float64(phase)
		if phase > 6 {
			c = 100.0 + float64(12-phase)
		}
		bars[i] = model.Bar{
			Time: base.AddDate(0, 0, i),
			Open: c, High: c + 0.5, Low: c - 0.5, Close: c, Volume: 1000,
		}
	}
	return bars
}

func TestPivotProvider_FindsSupportAndResistance(t *testing.T) {
	p := NewPivotProvider()
	lvls := p.Levels(sawtooth(60), 103)
	if len(lvls) == 0 {
		t.Fatal("expected levels from oscillating series")
	}
	var haveSupport, haveResistance bool
	for _, lv := range lvls {
		switch lv.Type {
		case model.LevelSupport:
			haveSupport = true
			if lv.Price > 103 {
				t.Errorf("support above current price: %.2f", lv.Price)
			}
		case model.LevelResistance:
			haveResistance = true
			if lv.Price < 103 {
				t.Errorf("resistance below current price: %.2f", lv.Price)
			}
		}
		if lv.Strength < 1 {
			t.Errorf("level %s has no touches", lv.Label)
		}
	}
	if !haveSupport || !haveResistance {
		t.Errorf("expected both sides, support=%v resistance=%v", haveSupport, haveResistance)
	}
}

func TestPivotProvider_RepeatTouchesRaiseStrength(t *testing.T) {
	p := NewPivotProvider()
	lvls := p.Levels(sawtooth(120), 103)
	max := 0.0
	for _, lv := range lvls {
		if lv.Strength > max {
			max = lv.Strength
		}
	}
	if max < 2 {
		t.Errorf("repeated pivots should cluster, max strength %.0f", max)
	}
}

func TestPivotProvider_ShortSeries(t *testing.T) {
	p := NewPivotProvider()
	if lvls := p.Levels(sawtooth(5), 100); lvls != nil {
		t.Errorf("series shorter than the window must yield nil, got %d", len(lvls))
	}
}
