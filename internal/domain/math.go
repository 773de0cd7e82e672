package domain

import "github.com/shopspring/decimal"

// Round2 rounds to 2 decimal places, half away from zero on the scaled integer.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Round2Ptr rounds a nullable value, preserving nil.
func Round2Ptr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := Round2(*v)
	return &r
}

// Coalesce returns the first non-nil pointer, or nil if all are nil.
// Field-level provider priority is expressed as an ordered Coalesce chain.
func Coalesce[T any](vals ...*T) *T {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
