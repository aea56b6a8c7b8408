// Package period computes calendar month windows and parses the ISO dates
// used by transaction forms. All dates are UTC midnight.
package period

import (
	"fmt"
	"strings"
	"time"

	apperrors "butce/internal/errors"
)

// DateLayout is the accepted transaction_date format.
const DateLayout = "2006-01-02"

var monthNames = [...]string{
	"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
	"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
}

// Window is a closed date interval [Start, End].
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// MonthWindow returns the first and last calendar day of the given month.
func MonthWindow(year, month int) (Window, error) {
	if err := Validate(year, month); err != nil {
		return Window{}, err
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	// Day 0 of the next month normalizes to the last day of this one.
	end := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
	return Window{Start: start, End: end}, nil
}

// Validate checks that year and month name a real calendar month.
func Validate(year, month int) error {
	if month < 1 || month > 12 {
		return apperrors.WithMessage(apperrors.ErrInvalidPeriod, fmt.Sprintf("month %d is out of range 1-12", month))
	}
	if year < 1 || year > 9999 {
		return apperrors.WithMessage(apperrors.ErrInvalidPeriod, fmt.Sprintf("year %d is out of range", year))
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD string into UTC midnight.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, apperrors.Wrap(apperrors.ErrInvalidDate, err)
	}
	return d, nil
}

// MonthName returns the Turkish name of month (1-12), or "" when out of range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// MonthNames returns all twelve month names in order.
func MonthNames() []string {
	out := make([]string, len(monthNames))
	copy(out, monthNames[:])
	return out
}
