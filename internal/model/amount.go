package model

import "github.com/shopspring/decimal"

// Tolerance absorbs rounding noise in every zero and equality check.
var Tolerance = decimal.New(1, -2)

// IsZero reports whether d is within Tolerance of zero.
func IsZero(d decimal.Decimal) bool {
	return d.Abs().LessThan(Tolerance)
}

// NearlyEqual reports whether a and b differ by less than Tolerance.
func NearlyEqual(a, b decimal.Decimal) bool {
	return IsZero(a.Sub(b))
}
