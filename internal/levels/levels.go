// Package levels defines the contract for the external level provider:
// given a price history and a reference price, return a set of labeled
// price levels. The geometry behind those levels (Fibonacci, Gann
// angles, pivots) lives with the collaborator, not here.
package levels

import "TradeScope/internal/model"

// Provider produces price levels for a bar series and reference price.
type Provider interface {
	Levels(bars []model.Bar, currentPrice float64) []model.PriceLevel
}
