package types

import "github.com/shopspring/decimal"

func init() {
	// Prices travel as JSON numbers, matching what clients post.
	decimal.MarshalJSONWithoutQuotes = true
}

// MoneyFromFloat converts a client-supplied amount into a two-place decimal.
func MoneyFromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}
