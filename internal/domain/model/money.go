package model

import "github.com/shopspring/decimal"

// ToMinor converts amount to integer cents, rounding half away from zero.
func ToMinor(amount decimal.Decimal) int64 {
	return amount.Round(2).Shift(2).IntPart()
}

// FromMinor converts integer cents to decimal amount.
func FromMinor(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}
