package domain

import "math"

// OrDefault dereferences p, or returns fallback when p is nil.
func OrDefault[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

// PositiveOrDefault dereferences p when it holds a finite, strictly
// positive value, otherwise returns fallback.
func PositiveOrDefault(p *float64, fallback float64) float64 {
	if p == nil || !IsFinite(*p) || *p <= 0 {
		return fallback
	}
	return *p
}

func BoolPtr(b bool) *bool { return &b }

func Float64Ptr(f float64) *float64 { return &f }

// IsFinite reports whether f is neither NaN nor an infinity.
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
