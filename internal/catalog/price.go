package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes every formatted price.
const CurrencySymbol = "$"

// ParsePrice coerces a raw price to a decimal. It reports false for empty,
// non-numeric or negative input, in which case the returned value is zero.
func ParsePrice(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), CurrencySymbol))
	if raw == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}

// FormatPrice renders a price with two decimal places, e.g. "$19.99".
func FormatPrice(d decimal.Decimal) string {
	return CurrencySymbol + d.StringFixed(2)
}

// DisplayPrice formats the product price. Unpriced products show as zero;
// this is a display convention only and never feeds a total.
func (p Product) DisplayPrice() string {
	if !p.PriceValid {
		return FormatPrice(decimal.Zero)
	}
	return FormatPrice(p.Price)
}
