package query

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"TradeScope/internal/model"
	"TradeScope/internal/windows"
)

const (
	minDaysAhead     = 7
	maxDaysAhead     = 180
	defaultDaysAhead = 30
)

type windowsData struct {
	Windows   []model.TradingWindow            `json:"windows"`
	BySymbol  map[string][]model.TradingWindow `json:"bySymbol"`
	Summary   map[string]int                   `json:"summary"`
	DaysAhead int                              `json:"daysAhead"`
	Timestamp time.Time                        `json:"timestamp"`
}

func (s *Server) handleWindows(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sentinels := q.Get("sentinels") == "true"
	syms := parseSymbols(q.Get("symbols"))
	if sentinels == (len(syms) > 0) {
		respondError(w, http.StatusBadRequest, "exactly one of sentinels=true or symbols must be given")
		return
	}

	daysAhead := defaultDaysAhead
	if raw := q.Get("daysAhead"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < minDaysAhead || n > maxDaysAhead {
			respondError(w, http.StatusBadRequest,
				fmt.Sprintf("daysAhead must be an integer between %d and %d, got %q", minDaysAhead, maxDaysAhead, raw))
			return
		}
		daysAhead = n
	}

	topN := 0
	if raw := q.Get("topN"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("topN must be a positive integer, got %q", raw))
			return
		}
		topN = n
	}

	result := s.windows.DetectBulk(r.Context(), windows.BulkOptions{
		Sentinels: sentinels,
		Symbols:   syms,
		DaysAhead: daysAhead,
		TopN:      topN,
	})

	summary := map[string]int{}
	for _, win := range result.Windows {
		summary[string(win.Type)]++
	}

	respondOK(w, windowsData{
		Windows:   result.Windows,
		BySymbol:  result.BySymbol,
		Summary:   summary,
		DaysAhead: daysAhead,
		Timestamp: time.Now().UTC(),
	})
}
