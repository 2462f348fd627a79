package engine

import (
	"math"
	"testing"
	"time"

	"TradeScope/internal/model"
)

func trendingBars(n int, start, step float64) []model.Bar {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, n)
	c := start
	for i := range bars {
		bars[i] = model.Bar{
			Time: base.AddDate(0, 0, i),
			Open: c, High: c + 1, Low: c - 1, Close: c, Volume: 1000,
		}
		c += step
	}
	return bars
}

func TestSubScores_Bounded(t *testing.T) {
	fixtures := [][]model.Bar{
		trendingBars(60, 100, 0.5),
		trendingBars(60, 100, -0.5),
		trendingBars(60, 100, 0),
		trendingBars(60, 5, 3), // violent trend
	}
	for fi, bars := range fixtures {
		price := bars[len(bars)-1].Close
		key := model.PriceLevel{Price: price * 1.02, Type: model.LevelResistance, Label: "R"}
		scores := []float64{
			scoreConfluence([]model.PriceLevel{key}, key),
			scoreProximity(price, key),
			scoreMomentum(bars, key),
			scoreVolatility(bars, price),
			scoreTrend(bars, price),
			scoreVolume(bars),
		}
		for si, s := range scores {
			if s < 0 || s > 100 {
				t.Errorf("fixture %d sub-score %d out of [0,100]: %.2f", fi, si, s)
			}
		}
	}
}

func TestCompose_ExactWeights(t *testing.T) {
	w := DefaultWeights()
	s := model.Scores{
		Confluence: 80, Proximity: 70, Momentum: 60,
		Trend: 50, Volatility: 40, Seasonal: 90, Volume: 30,
	}
	w.compose(&s)

	wantTech := 0.30*80 + 0.25*70 + 0.20*60 + 0.15*50 + 0.10*40
	wantFund := 0.60*90 + 0.40*30
	wantTotal := 0.70*wantTech + 0.30*wantFund

	if math.Abs(s.Technical-wantTech) > 1e-9 {
		t.Errorf("technical = %.4f, want %.4f", s.Technical, wantTech)
	}
	if math.Abs(s.Fundamental-wantFund) > 1e-9 {
		t.Errorf("fundamental = %.4f, want %.4f", s.Fundamental, wantFund)
	}
	if math.Abs(s.Total-wantTotal) > 1e-9 {
		t.Errorf("total = %.4f, want %.4f", s.Total, wantTotal)
	}
}

func TestGradeFor_MonotonicNonDecreasing(t *testing.T) {
	steps := DefaultGrades()
	order := map[string]int{"F": 0, "D": 1, "C": 2, "B": 3, "B+": 4, "A-": 5, "A": 6, "A+": 7}
	prev := -1
	for total := 0.0; total <= 100.0; total += 0.5 {
		g := gradeFor(total, steps)
		rank, ok := order[g]
		if !ok {
			t.Fatalf("unknown grade %q", g)
		}
		if rank < prev {
			t.Fatalf("grade rank decreased at total=%.1f (%s)", total, g)
		}
		prev = rank
	}
}

func TestGradeFor_Boundaries(t *testing.T) {
	steps := DefaultGrades()
	tests := []struct {
		total float64
		want  string
	}{
		{95, "A+"}, {94.9, "A"}, {90, "A"}, {85, "A-"},
		{80, "B+"}, {70, "B"}, {60, "C"}, {50, "D"}, {49.9, "F"}, {0, "F"},
	}
	for _, tt := range tests {
		if got := gradeFor(tt.total, steps); got != tt.want {
			t.Errorf("gradeFor(%.1f) = %q, want %q", tt.total, got, tt.want)
		}
	}
}

func TestSelectKeyLevel_NearestWithResistanceTie(t *testing.T) {
	lvls := []model.PriceLevel{
		{Price: 95, Type: model.LevelSupport, Label: "S1"},
		{Price: 105, Type: model.LevelResistance, Label: "R1"},
		{Price: 120, Type: model.LevelResistance, Label: "R2"},
	}
	key, ok := selectKeyLevel(lvls, 100)
	if !ok {
		t.Fatal("expected a key level")
	}
	// 95 and 105 are equidistant from 100: resistance wins the tie.
	if key.Label != "R1" {
		t.Errorf("tie should prefer resistance, got %s", key.Label)
	}

	key, _ = selectKeyLevel(lvls, 118)
	if key.Label != "R2" {
		t.Errorf("expected nearest level R2, got %s", key.Label)
	}

	if _, ok := selectKeyLevel(nil, 100); ok {
		t.Error("no levels should report not-ok")
	}
}

func TestScoreMomentum_DirectionAgreement(t *testing.T) {
	rising := trendingBars(30, 100, 1)
	price := rising[len(rising)-1].Close
	up := model.PriceLevel{Price: price * 1.03, Type: model.LevelResistance}
	down := model.PriceLevel{Price: price * 0.97, Type: model.LevelSupport}

	aligned := scoreMomentum(rising, up)
	opposed := scoreMomentum(rising, down)
	if aligned <= 50 {
		t.Errorf("rising toward resistance should score > 50, got %.1f", aligned)
	}
	if opposed >= 50 {
		t.Errorf("rising toward support should be penalized below 50, got %.1f", opposed)
	}
	if aligned <= opposed {
		t.Errorf("aligned (%.1f) must beat opposed (%.1f)", aligned, opposed)
	}
}

func TestScoreTrend_Buckets(t *testing.T) {
	bull := trendingBars(60, 100, 1)
	bear := trendingBars(60, 200, -1)
	if s := scoreTrend(bull, bull[len(bull)-1].Close); s != 85 {
		t.Errorf("bull alignment should score 85, got %.0f", s)
	}
	if s := scoreTrend(bear, bear[len(bear)-1].Close); s != 20 {
		t.Errorf("bear alignment should score 20, got %.0f", s)
	}
	if s := scoreTrend(trendingBars(10, 100, 0), 100); s != 50 {
		t.Errorf("insufficient history should hold the 50 baseline, got %.0f", s)
	}
}

func TestScoreVolatility_PeaksInModerateBand(t *testing.T) {
	quiet := trendingBars(30, 1000, 0) // spread 2 on price 1000 -> 0.2%
	moderate := trendingBars(30, 100, 0)
	qs := scoreVolatility(quiet, 1000)
	ms := scoreVolatility(moderate, 100)
	if ms <= qs {
		t.Errorf("moderate band (%.0f) must outscore too-quiet (%.0f)", ms, qs)
	}
}

func TestRecommendation_LevelBias(t *testing.T) {
	if r := recommendationFor(88, model.LevelResistance); r != model.RecStrongBuy {
		t.Errorf("high total at resistance should be strong_buy, got %s", r)
	}
	if r := recommendationFor(88, model.LevelSupport); r != model.RecStrongSell {
		t.Errorf("high total at support should be strong_sell, got %s", r)
	}
	if r := recommendationFor(72, model.LevelResistance); r != model.RecBuy {
		t.Errorf("mid total at resistance should be buy, got %s", r)
	}
	if r := recommendationFor(40, model.LevelSupport); r != model.RecHold {
		t.Errorf("low total should hold, got %s", r)
	}
}
