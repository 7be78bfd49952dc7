package calculator

// PriceTable maps exchange symbols (e.g. "BTCUSDT") to their last price.
type PriceTable map[string]float64

var stablecoins = map[string]struct{}{
	"USDT":  {},
	"USDC":  {},
	"BUSD":  {},
	"FDUSD": {},
	"TUSD":  {},
	"DAI":   {},
}

// quote assets tried in order, first match wins
var stableQuotes = []string{"USDT", "USDC", "BUSD"}

func IsStablecoin(ticker string) bool {
	_, ok := stablecoins[ticker]
	return ok
}

// ResolvePrice returns the USD price of ticker. Stablecoins are pinned to 1
// without consulting the table. An unknown ticker resolves to 0, which is
// not an error.
func ResolvePrice(ticker string, table PriceTable) float64 {
	if IsStablecoin(ticker) {
		return 1
	}
	for _, quote := range stableQuotes {
		if price, ok := table[ticker+quote]; ok && price > 0 {
			return price
		}
	}
	return 0
}
