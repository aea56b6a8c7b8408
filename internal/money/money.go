// Package money converts between user-entered decimal amounts and the
// int64 minor units (1/100) stored by the ledger.
package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrInvalidAmount is returned for empty, signed, or malformed amounts.
var ErrInvalidAmount = errors.New("invalid amount")

// MaxMinor is the largest amount accepted, in minor units (100 billion).
// Sums over a ledger of such amounts stay far inside int64.
const MaxMinor int64 = 10_000_000_000_000

// Parse converts a decimal string into minor units.
//
// Both "12.34" and "12,34" are accepted. Digits past the second decimal are
// rounded half-up on the third. Zero is allowed; a sign of any kind is not,
// and neither is anything above MaxMinor.
//
//	Parse("1000")   -> 100000
//	Parse("12,5")   -> 1250
//	Parse("12.345") -> 1235
func Parse(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" && fracPart == "" {
		return 0, ErrInvalidAmount
	}
	if intPart == "" {
		intPart = "0"
	}
	if !allDigits(intPart) || !allDigits(fracPart) {
		return 0, ErrInvalidAmount
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil || iv > MaxMinor/100 {
		return 0, ErrInvalidAmount
	}

	var frac int64
	if len(fracPart) > 0 {
		frac = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			frac += int64(fracPart[1] - '0')
		}
		if len(fracPart) > 2 && fracPart[2] >= '5' {
			frac++
		}
	}
	minor := iv*100 + frac
	if minor > MaxMinor {
		return 0, ErrInvalidAmount
	}
	return minor, nil
}

// Format renders minor units as a decimal string with two places.
func Format(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) || r > unicode.MaxASCII {
			return false
		}
	}
	return true
}
