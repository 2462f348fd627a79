package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"TradeScope/internal/model"
)

// YahooAdapter fetches daily history from the Yahoo Finance chart API.
// It covers every category except crypto, where binance comes first.
type YahooAdapter struct {
	Client    *http.Client
	BaseURL   string
	SymbolMap map[string]string // internal symbol -> Yahoo ticker
	priority  int
}

// NewYahooAdapter creates the adapter with optional proxy support.
func NewYahooAdapter(baseURL, proxyURL string, priority int) *YahooAdapter {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if baseURL == "" {
		baseURL = "https://query1.finance.yahoo.com"
	}
	return &YahooAdapter{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		BaseURL: baseURL,
		SymbolMap: map[string]string{
			"SPX":    "^GSPC",
			"NDX":    "^NDX",
			"DJI":    "^DJI",
			"RUT":    "^RUT",
			"VIX":    "^VIX",
			"TNX":    "^TNX",
			"DXY":    "DX-Y.NYB",
			"BTC":    "BTC-USD",
			"ETH":    "ETH-USD",
			"SOL":    "SOL-USD",
			"EURUSD": "EURUSD=X",
			"GBPUSD": "GBPUSD=X",
			"USDJPY": "USDJPY=X",
			"AUDUSD": "AUDUSD=X",
		},
		priority: priority,
	}
}

func (a *YahooAdapter) Name() string  { return "yahoo" }
func (a *YahooAdapter) Priority() int { return a.priority }

func (a *YahooAdapter) Supports(_ model.Category) bool { return true }

func (a *YahooAdapter) mapped(symbol string) string {
	if m, ok := a.SymbolMap[symbol]; ok {
		return m
	}
	return symbol
}

// yahooChart is the response structure from the Yahoo chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []any `json:"open"`
					High   []any `json:"high"`
					Low    []any `json:"low"`
					Close  []any `json:"close"`
					Volume []any `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v any) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func (a *YahooAdapter) Fetch(ctx context.Context, symbol string, start, end time.Time) ([]model.Bar, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d",
		a.BaseURL, url.PathEscape(a.mapped(symbol)), start.Unix(), end.Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, nil
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, nil
	}
	quote := result.Indicators.Quote[0]
	for name, col := range map[string][]any{
		"open": quote.Open, "high": quote.High, "low": quote.Low,
		"close": quote.Close, "volume": quote.Volume,
	} {
		if len(col) < len(result.Timestamp) {
			return nil, fmt.Errorf("yahoo: %s array has %d entries for %d timestamps", name, len(col), len(result.Timestamp))
		}
	}
	bars := make([]model.Bar, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		c := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // skip null bars (holidays etc.)
		}
		bars = append(bars, model.Bar{
			Time:   time.Unix(ts, 0),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: toFloat(quote.Volume[i]),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}
