// Package pricing derives menu prices. TheMealDB carries no prices, so every
// price in the system comes from the meal name through Price.
package pricing

import (
	"unicode/utf16"

	"github.com/shopspring/decimal"
)

const (
	basePrice = 8
	spread    = 12
	floor     = 3
)

// Price returns 8 + (len(name) mod 12) + 3, rounded to cents. Length is
// counted in UTF-16 code units so non-ASCII names price like they always have.
func Price(name string) decimal.Decimal {
	n := len(utf16.Encode([]rune(name)))
	return decimal.NewFromInt(int64(basePrice + n%spread + floor)).Round(2)
}
