package model

// Category classifies an instrument by asset class.
type Category string

const (
	CategoryEquity     Category = "equity"
	CategoryCrypto     Category = "crypto"
	CategoryForex      Category = "forex"
	CategoryCommodity  Category = "commodity"
	CategoryRatesMacro Category = "rates_macro"
	CategoryStress     Category = "stress"
)

// AllCategories lists every known category in a stable order.
var AllCategories = []Category{
	CategoryEquity,
	CategoryCrypto,
	CategoryForex,
	CategoryCommodity,
	CategoryRatesMacro,
	CategoryStress,
}
