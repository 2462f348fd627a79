package query

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"TradeScope/internal/model"
)

const (
	defaultMinScore   = 75.0
	defaultMaxResults = 50
)

type ratingsSummary struct {
	TotalRated        int            `json:"totalRated"`
	ByCategory        map[string]int `json:"byCategory"`
	ByConfidence      map[string]int `json:"byConfidence"`
	ByRating          map[string]int `json:"byRating"`
	ByRecommendation  map[string]int `json:"byRecommendation"`
	AverageScore      float64        `json:"averageScore"`
	ScoreDistribution map[string]int `json:"scoreDistribution"`
}

type ratingsMetadata struct {
	Timestamp time.Time `json:"timestamp"`
	Mode      string    `json:"mode"`
	Source    string    `json:"source"`
	CacheHit  bool      `json:"cacheHit"`
}

type ratingsData struct {
	Ratings  []model.TickerRating `json:"ratings"`
	Summary  ratingsSummary       `json:"summary"`
	Metadata ratingsMetadata      `json:"metadata"`
}

func parseCategory(raw string) (model.Category, error) {
	if raw == "" {
		return "", nil
	}
	for _, c := range model.AllCategories {
		if string(c) == raw {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", raw)
}

func parseSymbols(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (s *Server) handleRatings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	mode := q.Get("mode")
	if mode == "" {
		mode = "batch"
	}
	if mode != "batch" && mode != "featured" {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("mode must be batch or featured, got %q", mode))
		return
	}

	category, err := parseCategory(q.Get("category"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	minScore := defaultMinScore
	if raw := q.Get("minScore"); raw != "" {
		if minScore, err = strconv.ParseFloat(raw, 64); err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("minScore must be numeric, got %q", raw))
			return
		}
	}
	maxResults := defaultMaxResults
	if raw := q.Get("maxResults"); raw != "" {
		if maxResults, err = strconv.Atoi(raw); err != nil || maxResults <= 0 {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("maxResults must be a positive integer, got %q", raw))
			return
		}
	}

	syms := parseSymbols(q.Get("symbols"))
	refresh := q.Get("refresh") == "true"

	source := "engine"
	cacheHit := false
	timestamp := time.Now().UTC()
	var ratings []model.TickerRating

	if mode == "featured" && !refresh {
		cached, err := s.featured.FeaturedRatings(category)
		if err != nil {
			s.log.Warn().Err(err).Msg("featured cache read failed, computing live")
		}
		if len(cached) > 0 {
			ratings = cached
			source = "featured_cache"
			cacheHit = true
			// A cache hit reports when the snapshot was built, not now.
			if at, err := s.featured.FeaturedRefreshedAt(); err == nil && !at.IsZero() {
				timestamp = at
			}
		}
	}
	if ratings == nil {
		opts := s.base
		opts.Symbols = syms
		opts.Category = category
		opts.MinScore = minScore
		opts.MaxResults = maxResults
		ratings = s.ratings.Batch(r.Context(), opts)
		if mode == "featured" && refresh {
			if err := s.featured.UpsertFeatured(ratings); err != nil {
				s.log.Warn().Err(err).Msg("featured cache refresh write failed")
			}
		}
	}

	respondOK(w, ratingsData{
		Ratings: ratings,
		Summary: summarize(ratings),
		Metadata: ratingsMetadata{
			Timestamp: timestamp,
			Mode:      mode,
			Source:    source,
			CacheHit:  cacheHit,
		},
	})
}

func summarize(ratings []model.TickerRating) ratingsSummary {
	s := ratingsSummary{
		TotalRated:        len(ratings),
		ByCategory:        map[string]int{},
		ByConfidence:      map[string]int{},
		ByRating:          map[string]int{},
		ByRecommendation:  map[string]int{},
		ScoreDistribution: map[string]int{},
	}
	sum := 0.0
	for _, r := range ratings {
		s.ByCategory[string(r.Category)]++
		s.ByConfidence[string(r.Confidence)]++
		s.ByRating[r.Rating]++
		s.ByRecommendation[string(r.Recommendation)]++
		s.ScoreDistribution[scoreBucket(r.Scores.Total)]++
		sum += r.Scores.Total
	}
	if len(ratings) > 0 {
		s.AverageScore = math.Round(sum/float64(len(ratings))*100) / 100
	}
	return s
}

func scoreBucket(total float64) string {
	switch {
	case total >= 90:
		return "90+"
	case total >= 80:
		return "80-89"
	case total >= 70:
		return "70-79"
	case total >= 60:
		return "60-69"
	default:
		return "<60"
	}
}
