package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func yahooServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestYahooFetch_ParsesAndSkipsNullBars(t *testing.T) {
	srv := yahooServer(t, `{"chart":{"result":[{
		"timestamp":[1709251200,1709337600,1709424000],
		"indicators":{"quote":[{
			"open":[100,null,102],
			"high":[101,null,103],
			"low":[99,null,101],
			"close":[100.5,null,102.5],
			"volume":[1000,null,1200]
		}]}
	}],"error":null}}`)

	a := NewYahooAdapter(srv.URL, "", 1)
	bars, err := a.Fetch(context.Background(), "SPX", time.Unix(1709251200, 0), time.Unix(1709424000, 0))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("bars = %d, want 2 (null bar skipped)", len(bars))
	}
	if bars[0].Close != 100.5 || bars[1].Close != 102.5 {
		t.Errorf("closes = %v, %v", bars[0].Close, bars[1].Close)
	}
	if !bars[0].Time.Before(bars[1].Time) {
		t.Error("bars must be ascending by time")
	}
}

func TestYahooFetch_ShortQuoteArraysIsError(t *testing.T) {
	// Quote arrays shorter than the timestamp list must read as an
	// adapter failure, never an index panic.
	srv := yahooServer(t, `{"chart":{"result":[{
		"timestamp":[1709251200,1709337600],
		"indicators":{"quote":[{
			"open":[100],
			"high":[101],
			"low":[99],
			"close":[100.5],
			"volume":[1000]
		}]}
	}],"error":null}}`)

	a := NewYahooAdapter(srv.URL, "", 1)
	if _, err := a.Fetch(context.Background(), "SPX", time.Unix(1709251200, 0), time.Unix(1709337600, 0)); err == nil {
		t.Fatal("expected error for truncated quote arrays")
	}
}

func TestYahooFetch_APIErrorSurfaces(t *testing.T) {
	srv := yahooServer(t, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)
	a := NewYahooAdapter(srv.URL, "", 1)
	if _, err := a.Fetch(context.Background(), "NOPE", time.Now().AddDate(0, 0, -7), time.Now()); err == nil {
		t.Fatal("expected error from chart api error payload")
	}
}
