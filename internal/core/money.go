// Package core provides amount parsing and formatting utilities.
//
// Amounts are plain float64 values so that a malformed record propagates as
// NaN through every total instead of being silently defended against.
// Decimal arithmetic is used only at the edges: parsing user input, the
// one-time division that resolves a computed installment, and display.
package core

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a decimal string to a positive amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Returns ErrInvalidAmount for empty, signed, malformed, or non-positive input.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34, nil
//	ParseAmount("12,34") -> 12.34, nil
//	ParseAmount("-1")    -> 0, ErrInvalidAmount
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if !d.IsPositive() {
		return 0, ErrInvalidAmount
	}
	f, _ := d.Float64()
	return f, nil
}

// FormatAmount renders an amount with two decimals for display.
// Non-finite values are rendered verbatim rather than hidden.
func FormatAmount(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

// divideAmount splits amount into n equal parts.
func divideAmount(amount float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return amount / float64(n)
	}
	f, _ := decimal.NewFromFloat(amount).Div(decimal.NewFromInt(int64(n))).Float64()
	return f
}
