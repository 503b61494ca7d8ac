package money

import "github.com/shopspring/decimal"

// minorUnitPlaces is the exponent of the currency minor unit. All supported
// currencies use two decimal places.
const minorUnitPlaces = 2

// RoundMinor rounds a monetary value to the currency minor unit using
// round-half-up. Applied only where a value becomes user visible; intermediate
// arithmetic stays exact.
func RoundMinor(value decimal.Decimal) decimal.Decimal {
	return value.Round(minorUnitPlaces)
}

// FromCents converts integer minor units into a decimal amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -minorUnitPlaces)
}

// ToCents converts a decimal amount into integer minor units, rounding
// half-up first so persisted cents always match the displayed amount.
func ToCents(value decimal.Decimal) int64 {
	return RoundMinor(value).Shift(minorUnitPlaces).IntPart()
}
