package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"TradeScope/internal/model"
)

// BinanceAdapter fetches daily klines from the Binance public API.
// Crypto only; it sits ahead of yahoo for that category.
type BinanceAdapter struct {
	Client    *http.Client
	BaseURL   string
	SymbolMap map[string]string // internal symbol -> Binance pair
	priority  int
}

// NewBinanceAdapter creates the adapter with optional proxy support.
func NewBinanceAdapter(baseURL, proxyURL string, priority int) *BinanceAdapter {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if baseURL == "" {
		baseURL = "https://api.binance.com"
	}
	return &BinanceAdapter{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		BaseURL: baseURL,
		SymbolMap: map[string]string{
			"BTC": "BTCUSDT",
			"ETH": "ETHUSDT",
			"SOL": "SOLUSDT",
			"XRP": "XRPUSDT",
		},
		priority: priority,
	}
}

func (a *BinanceAdapter) Name() string  { return "binance" }
func (a *BinanceAdapter) Priority() int { return a.priority }

func (a *BinanceAdapter) Supports(category model.Category) bool {
	return category == model.CategoryCrypto
}

func (a *BinanceAdapter) mapped(symbol string) string {
	if m, ok := a.SymbolMap[symbol]; ok {
		return m
	}
	return symbol
}

// Fetch pulls 1d klines. Binance kline rows are positional arrays:
// [openTime, open, high, low, close, volume, closeTime, ...].
func (a *BinanceAdapter) Fetch(ctx context.Context, symbol string, start, end time.Time) ([]model.Bar, error) {
	u := fmt.Sprintf("%s/api/v3/klines?symbol=%s&interval=1d&startTime=%d&endTime=%d&limit=1000",
		a.BaseURL, url.QueryEscape(a.mapped(symbol)), start.UnixMilli(), end.UnixMilli())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("binance fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("binance read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("binance: status %d, body: %s", resp.StatusCode, string(body))
	}

	var rows [][]any
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("binance decode: %w", err)
	}

	bars := make([]model.Bar, 0, len(rows))
	for _, row := range rows {
		if len(row) < 6 {
			continue
		}
		openTime, ok := row[0].(float64)
		if !ok {
			continue
		}
		bars = append(bars, model.Bar{
			Time:   time.UnixMilli(int64(openTime)),
			Open:   parsePrice(row[1]),
			High:   parsePrice(row[2]),
			Low:    parsePrice(row[3]),
			Close:  parsePrice(row[4]),
			Volume: parsePrice(row[5]),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

// parsePrice handles Binance's string-encoded decimals.
func parsePrice(v any) float64 {
	switch n := v.(type) {
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return f
	case float64:
		return n
	default:
		return 0
	}
}
