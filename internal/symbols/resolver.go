// Package symbols maps arbitrary ticker spellings to canonical
// identifiers and classifies instruments into asset categories.
// All tables are static, so every function here is safe to call from
// concurrent workers without synchronization.
package symbols

import (
	"strings"

	"TradeScope/internal/model"
)

var (
	aliasToCanonical  = map[string]string{}
	canonicalVariants = map[string][]string{}
)

func init() {
	for _, group := range variantGroups {
		canonical := strings.ToUpper(group[0])
		variants := make([]string, 0, len(group))
		for _, v := range group {
			up := strings.ToUpper(v)
			aliasToCanonical[up] = canonical
			variants = append(variants, up)
		}
		canonicalVariants[canonical] = variants
	}
}

// Resolve maps any raw spelling to its canonical symbol. Resolution is
// case-insensitive and total: an unknown symbol resolves to an
// upper-cased copy of itself, which makes Resolve idempotent.
func Resolve(raw string) string {
	up := strings.ToUpper(strings.TrimSpace(raw))
	if canonical, ok := aliasToCanonical[up]; ok {
		return canonical
	}
	return up
}

// VariantsOf returns every known spelling for a canonical symbol,
// canonical first. An unknown canonical yields just itself.
func VariantsOf(canonical string) []string {
	up := strings.ToUpper(strings.TrimSpace(canonical))
	if variants, ok := canonicalVariants[up]; ok {
		out := make([]string, len(variants))
		copy(out, variants)
		return out
	}
	return []string{up}
}

// DetectCategory classifies a raw symbol using pattern rules and the
// fixed membership tables. Detection runs on the canonical form so any
// variant spelling lands in the same category.
func DetectCategory(raw string) model.Category {
	sym := Resolve(raw)

	if stressMembers[sym] {
		return model.CategoryStress
	}
	if ratesMacroMembers[sym] {
		return model.CategoryRatesMacro
	}
	if strings.HasSuffix(sym, "=F") || strings.HasSuffix(sym, "1!") {
		return model.CategoryCommodity
	}
	if cryptoNames[sym] {
		return model.CategoryCrypto
	}
	if strings.Contains(sym, "/") {
		return model.CategoryForex
	}
	if len(sym) == 6 && isAlpha(sym) && isCurrencyPair(sym) {
		return model.CategoryForex
	}
	return model.CategoryEquity
}

// Sentinels returns the fixed representative symbols for one category.
func Sentinels(category model.Category) []string {
	syms := sentinelUniverse[category]
	out := make([]string, len(syms))
	copy(out, syms)
	return out
}

// AllSentinels returns the full sentinel universe in category order.
func AllSentinels() []string {
	var out []string
	for _, cat := range model.AllCategories {
		out = append(out, sentinelUniverse[cat]...)
	}
	return out
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// isCurrencyPair guards the 6-letter rule against plain 6-letter equity
// tickers: at least one half must be a known currency code.
func isCurrencyPair(s string) bool {
	return currencyCodes[s[:3]] || currencyCodes[s[3:]]
}

var currencyCodes = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "JPY": true,
	"CHF": true, "AUD": true, "NZD": true, "CAD": true,
	"CNY": true, "HKD": true, "SGD": true, "MXN": true,
}
