// Package numeric formats prices and sizes for the exchange wire.
//
// The exchange rejects values carrying more fractional digits than an
// asset's szDecimals, and overstating a price or size by one unit in the
// last place can fill at a worse level than intended. Everything here
// truncates toward zero; nothing ever rounds up.
package numeric

import "github.com/shopspring/decimal"

// FormatDecimal renders v with at most decimals fractional digits,
// truncating toward zero. Negative decimals are clamped to 0. Trailing
// zeros are not emitted, matching the exchange's canonical number form.
func FormatDecimal(v decimal.Decimal, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return v.Truncate(int32(decimals)).String()
}
