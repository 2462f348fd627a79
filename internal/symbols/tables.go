package symbols

import "TradeScope/internal/model"

// variantGroups lists every instrument with known alternate spellings.
// The first entry of each group is the canonical symbol; the rest are
// variants seen across data sources. All lookups are upper-cased, so
// the tables stay read-only and safe for concurrent use.
var variantGroups = [][]string{
	{"SPX", "SPX500", "SP500", "^GSPC", "US500"},
	{"NDX", "NAS100", "^NDX", "US100"},
	{"DJI", "DJIA", "^DJI", "US30"},
	{"RUT", "^RUT", "US2000"},
	{"VIX", "^VIX", "VOLATILITY"},
	{"DXY", "DX-Y.NYB", "USDX"},
	{"TNX", "^TNX", "US10Y"},
	{"BTC", "BTCUSD", "BTC-USD", "BTCUSDT", "XBTUSD", "BITCOIN"},
	{"ETH", "ETHUSD", "ETH-USD", "ETHUSDT", "ETHEREUM"},
	{"SOL", "SOLUSD", "SOL-USD", "SOLUSDT", "SOLANA"},
	{"XRP", "XRPUSD", "XRP-USD", "XRPUSDT", "RIPPLE"},
	{"GC=F", "GOLD", "XAUUSD", "GC1!"},
	{"SI=F", "SILVER", "XAGUSD", "SI1!"},
	{"CL=F", "OIL", "CRUDE", "WTI", "CL1!"},
	{"NG=F", "NATGAS", "NG1!"},
	{"EURUSD", "EUR/USD", "EURUSD=X"},
	{"GBPUSD", "GBP/USD", "GBPUSD=X"},
	{"USDJPY", "USD/JPY", "USDJPY=X"},
	{"AUDUSD", "AUD/USD", "AUDUSD=X"},
}

// stressMembers and ratesMacroMembers are fixed membership lists for
// category detection.
var stressMembers = map[string]bool{
	"VIX":  true,
	"VVIX": true,
	"MOVE": true,
	"SKEW": true,
}

var ratesMacroMembers = map[string]bool{
	"TNX": true,
	"TYX": true,
	"FVX": true,
	"IRX": true,
	"DXY": true,
}

// cryptoNames maps common crypto spellings and names to detection.
var cryptoNames = map[string]bool{
	"BTC": true, "BITCOIN": true,
	"ETH": true, "ETHEREUM": true,
	"SOL": true, "SOLANA": true,
	"XRP": true, "RIPPLE": true,
	"ADA": true, "CARDANO": true,
	"DOGE": true, "DOGECOIN": true,
	"DOT": true, "AVAX": true, "LINK": true, "LTC": true,
}

// sentinelUniverse is the small fixed representative set per category
// used by dashboard summaries, bulk window scans, and the featured
// refresh job.
var sentinelUniverse = map[model.Category][]string{
	model.CategoryEquity:     {"SPX", "NDX", "DJI", "RUT"},
	model.CategoryCrypto:     {"BTC", "ETH", "SOL"},
	model.CategoryForex:      {"EURUSD", "GBPUSD", "USDJPY"},
	model.CategoryCommodity:  {"GC=F", "SI=F", "CL=F"},
	model.CategoryRatesMacro: {"TNX", "DXY"},
	model.CategoryStress:     {"VIX"},
}
