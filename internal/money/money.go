// Package money holds the two-decimal rounding rules shared by every
// component that produces a monetary amount.
package money

import "github.com/shopspring/decimal"

// Places is the number of fractional digits every amount is scaled to.
const Places = 2

// Cent is the smallest representable amount. Balances whose magnitude is
// below one cent are treated as settled.
var Cent = decimal.New(1, -Places)

// Round rounds value to two decimal places, ties away from zero.
func Round(value decimal.Decimal) decimal.Decimal {
	return value.Round(Places)
}

// Div divides value by n and rounds the quotient to two decimal places.
func Div(value decimal.Decimal, n int) decimal.Decimal {
	return value.DivRound(decimal.NewFromInt(int64(n)), Places)
}

// Sum adds the given amounts and rounds the result.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return Round(total)
}

// IsSettled reports whether value is within one cent of zero.
func IsSettled(value decimal.Decimal) bool {
	return value.Abs().LessThan(Cent)
}

// Within reports whether a and b differ by at most tolerance.
func Within(a, b, tolerance decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tolerance)
}

// MustParse parses s as a decimal and panics on failure. Meant for
// constants and tests.
func MustParse(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
