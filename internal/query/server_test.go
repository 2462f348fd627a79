package query

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"TradeScope/internal/engine"
	"TradeScope/internal/model"
	"TradeScope/internal/store"
	"TradeScope/internal/windows"
)

type stubRatings struct {
	calls   int
	lastOpt engine.BatchOptions
	out     []model.TickerRating
}

func (s *stubRatings) Batch(_ context.Context, opts engine.BatchOptions) []model.TickerRating {
	s.calls++
	s.lastOpt = opts
	return s.out
}

type stubWindows struct {
	lastOpt windows.BulkOptions
	out     windows.BulkResult
}

func (s *stubWindows) DetectBulk(_ context.Context, opts windows.BulkOptions) windows.BulkResult {
	s.lastOpt = opts
	return s.out
}

type stubFeatured struct {
	store.NoopStore
	rows     []model.TickerRating
	upserted [][]model.TickerRating
}

func (s *stubFeatured) FeaturedRatings(_ model.Category) ([]model.TickerRating, error) {
	return s.rows, nil
}

func (s *stubFeatured) UpsertFeatured(ratings []model.TickerRating) error {
	s.upserted = append(s.upserted, ratings)
	return nil
}

func sampleRating(symbol string, total float64) model.TickerRating {
	return model.TickerRating{
		Symbol:         symbol,
		Category:       model.CategoryEquity,
		Scores:         model.Scores{Total: total},
		Rating:         "B+",
		Confidence:     model.ConfidenceHigh,
		Recommendation: model.RecBuy,
	}
}

func newTestServer(r *stubRatings, w *stubWindows, f store.FeaturedStore) *Server {
	if f == nil {
		f = store.NewNoopStore()
	}
	return NewServer(r, w, f, engine.BatchOptions{}, zerolog.Nop())
}

func doRequest(t *testing.T, srv *Server, path string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	srv.Router().ServeHTTP(rec, req)
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %q)", err, rec.Body.String())
	}
	return rec, env
}

func TestRatingsBatchDefaults(t *testing.T) {
	ratings := &stubRatings{out: []model.TickerRating{sampleRating("SPX", 88), sampleRating("BTC", 79)}}
	srv := newTestServer(ratings, &stubWindows{}, nil)

	rec, env := doRequest(t, srv, "/api/v1/ratings")
	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("status = %d, success = %v", rec.Code, env.Success)
	}
	if ratings.lastOpt.MinScore != 75 || ratings.lastOpt.MaxResults != 50 {
		t.Errorf("defaults not applied: %+v", ratings.lastOpt)
	}

	data, _ := json.Marshal(env.Data)
	var rd ratingsData
	if err := json.Unmarshal(data, &rd); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if rd.Summary.TotalRated != 2 {
		t.Errorf("totalRated = %d, want 2", rd.Summary.TotalRated)
	}
	if rd.Summary.ScoreDistribution["80-89"] != 1 || rd.Summary.ScoreDistribution["70-79"] != 1 {
		t.Errorf("scoreDistribution = %v", rd.Summary.ScoreDistribution)
	}
	if rd.Metadata.Mode != "batch" || rd.Metadata.Source != "engine" || rd.Metadata.CacheHit {
		t.Errorf("metadata = %+v", rd.Metadata)
	}
	if rd.Summary.AverageScore != 83.5 {
		t.Errorf("averageScore = %v, want 83.5", rd.Summary.AverageScore)
	}
}

func TestRatingsParamParsing(t *testing.T) {
	ratings := &stubRatings{}
	srv := newTestServer(ratings, &stubWindows{}, nil)

	rec, _ := doRequest(t, srv, "/api/v1/ratings?minScore=60&maxResults=5&symbols=spx,%20btc&category=crypto")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	opt := ratings.lastOpt
	if opt.MinScore != 60 || opt.MaxResults != 5 || opt.Category != model.CategoryCrypto {
		t.Errorf("options = %+v", opt)
	}
	if len(opt.Symbols) != 2 || opt.Symbols[0] != "spx" || opt.Symbols[1] != "btc" {
		t.Errorf("symbols = %v", opt.Symbols)
	}
}

func TestRatingsValidation(t *testing.T) {
	srv := newTestServer(&stubRatings{}, &stubWindows{}, nil)
	for _, path := range []string{
		"/api/v1/ratings?mode=bogus",
		"/api/v1/ratings?category=bogus",
		"/api/v1/ratings?minScore=abc",
		"/api/v1/ratings?maxResults=-1",
	} {
		rec, env := doRequest(t, srv, path)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", path, rec.Code)
		}
		if env.Success || env.Error == "" {
			t.Errorf("%s: envelope = %+v, want failure with message", path, env)
		}
	}
}

func TestRatingsFeaturedCacheHit(t *testing.T) {
	ratings := &stubRatings{}
	featured := &stubFeatured{rows: []model.TickerRating{sampleRating("NDX", 91)}}
	srv := newTestServer(ratings, &stubWindows{}, featured)

	_, env := doRequest(t, srv, "/api/v1/ratings?mode=featured")
	data, _ := json.Marshal(env.Data)
	var rd ratingsData
	if err := json.Unmarshal(data, &rd); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if rd.Metadata.Source != "featured_cache" || !rd.Metadata.CacheHit {
		t.Errorf("metadata = %+v, want featured cache hit", rd.Metadata)
	}
	if ratings.calls != 0 {
		t.Errorf("engine called %d times on cache hit", ratings.calls)
	}
}

func TestRatingsFeaturedRefreshBypassesCache(t *testing.T) {
	ratings := &stubRatings{out: []model.TickerRating{sampleRating("SPX", 88)}}
	featured := &stubFeatured{rows: []model.TickerRating{sampleRating("NDX", 91)}}
	srv := newTestServer(ratings, &stubWindows{}, featured)

	_, env := doRequest(t, srv, "/api/v1/ratings?mode=featured&refresh=true")
	data, _ := json.Marshal(env.Data)
	var rd ratingsData
	if err := json.Unmarshal(data, &rd); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if rd.Metadata.Source != "engine" || rd.Metadata.CacheHit {
		t.Errorf("metadata = %+v, want live engine", rd.Metadata)
	}
	if ratings.calls != 1 {
		t.Errorf("engine calls = %d, want 1", ratings.calls)
	}
	if len(featured.upserted) != 1 {
		t.Errorf("refresh did not write back to the featured cache")
	}
}

func TestWindowsSentinelsXorSymbols(t *testing.T) {
	srv := newTestServer(&stubRatings{}, &stubWindows{}, nil)
	for _, path := range []string{
		"/api/v1/windows",
		"/api/v1/windows?sentinels=true&symbols=SPX",
	} {
		rec, _ := doRequest(t, srv, path)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", path, rec.Code)
		}
	}
}

func TestWindowsDaysAheadValidation(t *testing.T) {
	srv := newTestServer(&stubRatings{}, &stubWindows{}, nil)
	for _, path := range []string{
		"/api/v1/windows?sentinels=true&daysAhead=6",
		"/api/v1/windows?sentinels=true&daysAhead=181",
		"/api/v1/windows?sentinels=true&daysAhead=soon",
	} {
		rec, _ := doRequest(t, srv, path)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", path, rec.Code)
		}
	}
}

func TestWindowsHappyPath(t *testing.T) {
	win := model.TradingWindow{
		Symbol:        "SPX",
		Type:          model.WindowHighProbability,
		CombinedScore: 84,
		StartDate:     time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
		DaysInWindow:  5,
	}
	stub := &stubWindows{out: windows.BulkResult{
		Windows:  []model.TradingWindow{win},
		BySymbol: map[string][]model.TradingWindow{"SPX": {win}},
	}}
	srv := newTestServer(&stubRatings{}, stub, nil)

	rec, env := doRequest(t, srv, "/api/v1/windows?symbols=SPX&daysAhead=60&topN=3")
	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("status = %d, success = %v", rec.Code, env.Success)
	}
	if stub.lastOpt.DaysAhead != 60 || stub.lastOpt.TopN != 3 || stub.lastOpt.Sentinels {
		t.Errorf("options = %+v", stub.lastOpt)
	}

	data, _ := json.Marshal(env.Data)
	var wd windowsData
	if err := json.Unmarshal(data, &wd); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if wd.DaysAhead != 60 || len(wd.Windows) != 1 || wd.Summary["high_probability"] != 1 {
		t.Errorf("data = %+v", wd)
	}
}

func TestMomentsEndpoint(t *testing.T) {
	srv := newTestServer(&stubRatings{}, &stubWindows{}, nil)

	rec, env := doRequest(t, srv, "/api/v1/moments?from=2024-02-08&to=2024-02-08")
	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("status = %d, success = %v", rec.Code, env.Success)
	}
	data, _ := json.Marshal(env.Data)
	var md momentsData
	if err := json.Unmarshal(data, &md); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if md.Count != len(md.Moments) || md.Count < 8 {
		t.Errorf("count = %d with %d moments", md.Count, len(md.Moments))
	}
	var pivot bool
	for _, mo := range md.Moments {
		if mo.Timeframe == model.TimeframeMonthly && mo.Angle == "90°" {
			pivot = true
		}
	}
	if !pivot {
		t.Error("expected the leap-february monthly pivot in the response")
	}

	for _, path := range []string{
		"/api/v1/moments?from=2024-13-01",
		"/api/v1/moments?from=2024-02-08&to=2024-02-07",
		"/api/v1/moments?from=2023-01-01&to=2025-01-01",
	} {
		rec, _ := doRequest(t, srv, path)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", path, rec.Code)
		}
	}
}

func TestHealthAndRequestID(t *testing.T) {
	srv := newTestServer(&stubRatings{}, &stubWindows{}, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz status = %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}
