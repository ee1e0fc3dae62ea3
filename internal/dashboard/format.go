// internal/dashboard/format.go
package dashboard

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FormatCurrency renders an amount in cents as dollars, e.g. "$12.34".
func FormatCurrency(cents int64) string {
	amount := decimal.New(cents, -2)
	if amount.IsNegative() {
		return "-$" + amount.Neg().StringFixed(2)
	}
	return "$" + amount.StringFixed(2)
}

func FormatPercent(value decimal.Decimal, places int32) string {
	return value.StringFixed(places) + "%"
}

// FormatTimestamp renders a nanosecond timestamp as a short date in UTC.
func FormatTimestamp(ns int64) string {
	return time.Unix(0, ns).UTC().Format("Jan 2, 2006")
}

// Percentage returns part/whole*100 rounded to places, or zero for an empty whole.
func Percentage(part, whole int64, places int32) decimal.Decimal {
	if whole == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(part).Mul(hundred).Div(decimal.NewFromInt(whole)).Round(places)
}
