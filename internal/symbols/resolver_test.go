package symbols

import (
	"strings"
	"testing"

	"TradeScope/internal/model"
)

func TestResolve_Idempotent(t *testing.T) {
	inputs := []string{"SPX500", "btc-usd", "EURUSD=X", "AAPL", "gold", "unknown123", "  vix "}
	for _, in := range inputs {
		once := Resolve(in)
		twice := Resolve(once)
		if once != twice {
			t.Errorf("Resolve(%q): not idempotent, got %q then %q", in, once, twice)
		}
	}
}

func TestResolve_CaseInsensitive(t *testing.T) {
	if Resolve("btcusd") != Resolve("BTCUSD") {
		t.Error("expected case-insensitive resolution for BTCUSD")
	}
	if Resolve("sp500") != "SPX" {
		t.Errorf("expected sp500 -> SPX, got %q", Resolve("sp500"))
	}
	if Resolve("aapl") != "AAPL" {
		t.Errorf("unknown symbol should upper-case, got %q", Resolve("aapl"))
	}
}

func TestVariantsOf_ContainsCanonical(t *testing.T) {
	for canonical := range canonicalVariants {
		variants := VariantsOf(canonical)
		found := false
		for _, v := range variants {
			if v == canonical {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("VariantsOf(%q) missing the canonical itself: %v", canonical, variants)
		}
		if variants[0] != canonical {
			t.Errorf("VariantsOf(%q) should list canonical first, got %v", canonical, variants)
		}
	}
	// Unknown canonical yields itself.
	vs := VariantsOf("zzzz")
	if len(vs) != 1 || vs[0] != "ZZZZ" {
		t.Errorf("unknown canonical: expected [ZZZZ], got %v", vs)
	}
}

func TestDetectCategory(t *testing.T) {
	tests := []struct {
		symbol string
		want   model.Category
	}{
		{"EUR/USD", model.CategoryForex},
		{"eurusd", model.CategoryForex},
		{"GBPJPY", model.CategoryForex},
		{"GC=F", model.CategoryCommodity},
		{"CL1!", model.CategoryCommodity},
		{"gold", model.CategoryCommodity},
		{"VIX", model.CategoryStress},
		{"^vix", model.CategoryStress},
		{"TNX", model.CategoryRatesMacro},
		{"DXY", model.CategoryRatesMacro},
		{"BTC", model.CategoryCrypto},
		{"bitcoin", model.CategoryCrypto},
		{"ethusdt", model.CategoryCrypto},
		{"AAPL", model.CategoryEquity},
		{"GOOGL", model.CategoryEquity}, // 6 letters but not a currency pair
	}
	for _, tt := range tests {
		if got := DetectCategory(tt.symbol); got != tt.want {
			t.Errorf("DetectCategory(%q) = %q, want %q", tt.symbol, got, tt.want)
		}
	}
}

func TestSentinels(t *testing.T) {
	all := AllSentinels()
	if len(all) == 0 {
		t.Fatal("sentinel universe is empty")
	}
	seen := map[string]bool{}
	for _, s := range all {
		if seen[s] {
			t.Errorf("duplicate sentinel %q", s)
		}
		seen[s] = true
		if s != Resolve(s) {
			t.Errorf("sentinel %q is not canonical", s)
		}
	}
	for _, cat := range model.AllCategories {
		for _, s := range Sentinels(cat) {
			got := DetectCategory(s)
			if got != cat {
				t.Errorf("sentinel %q: detected %q, registered under %q", s, got, cat)
			}
		}
	}
}

func TestVariantsOf_ReturnsCopy(t *testing.T) {
	a := VariantsOf("BTC")
	a[0] = strings.ToLower(a[0])
	b := VariantsOf("BTC")
	if b[0] != "BTC" {
		t.Error("VariantsOf must return a copy, internal table was mutated")
	}
}
