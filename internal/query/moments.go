package query

import (
	"fmt"
	"net/http"
	"time"

	"TradeScope/internal/gann"
	"TradeScope/internal/model"
)

const (
	momentDateLayout = "2006-01-02"
	maxMomentDays    = 366
)

type momentsData struct {
	Moments []model.GannMoment `json:"moments"`
	From    string             `json:"from"`
	To      string             `json:"to"`
	Count   int                `json:"count"`
}

func (s *Server) handleMoments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if raw := q.Get("from"); raw != "" {
		d, err := time.Parse(momentDateLayout, raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("from must be YYYY-MM-DD, got %q", raw))
			return
		}
		from = d
	}
	to := from
	if raw := q.Get("to"); raw != "" {
		d, err := time.Parse(momentDateLayout, raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("to must be YYYY-MM-DD, got %q", raw))
			return
		}
		to = d
	}
	if to.Before(from) {
		respondError(w, http.StatusBadRequest, "to must not be before from")
		return
	}
	if int(to.Sub(from).Hours()/24) > maxMomentDays {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("range must not exceed %d days", maxMomentDays))
		return
	}

	moments := gann.MomentsForRange(from, to)
	respondOK(w, momentsData{
		Moments: moments,
		From:    from.Format(momentDateLayout),
		To:      to.Format(momentDateLayout),
		Count:   len(moments),
	})
}
