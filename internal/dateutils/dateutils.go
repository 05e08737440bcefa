// Package dateutils parses the dates users type and computes month ranges.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date layouts accepted from users. Stored dates are always DateLayoutISO.
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutEuropean = "02.01.2006"
	DateLayoutSlashes  = "02/01/2006"
	DateLayoutShort    = "2.1.2006"
	MonthLayout        = "2006-01"
)

// InputFormats is the list of layouts tried by ParseDate, in order.
var InputFormats = []string{
	DateLayoutISO,
	DateLayoutEuropean,
	DateLayoutSlashes,
	DateLayoutShort,
	"02-01-2006",
	"2006/01/02",
}

var spaces = regexp.MustCompile(`\s+`)

// ParseDate parses dateStr with the first matching layout of InputFormats.
func ParseDate(dateStr string) (time.Time, error) {
	clean := CleanDateString(dateStr)
	for _, layout := range InputFormats {
		if t, err := time.Parse(layout, clean); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// NormalizeDate converts a user-entered date to the stored YYYY-MM-DD form.
func NormalizeDate(dateStr string) (string, error) {
	t, err := ParseDate(dateStr)
	if err != nil {
		return "", err
	}
	return ToISODate(t), nil
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// CleanDateString trims and collapses whitespace.
func CleanDateString(dateStr string) string {
	return spaces.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// StartOfMonth returns the first day of the month for a given date
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// EndOfMonth returns the last day of the month for a given date
func EndOfMonth(date time.Time) time.Time {
	return StartOfMonth(date).AddDate(0, 1, -1)
}

// ParseMonth parses a YYYY-MM month and returns its first day.
func ParseMonth(month string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, strings.TrimSpace(month))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q (expected YYYY-MM)", month)
	}
	return t, nil
}

// InMonth reports whether the ISO date isoDate falls in the month starting at
// month. Dates that do not parse are outside every month.
func InMonth(isoDate string, month time.Time) bool {
	t, err := time.Parse(DateLayoutISO, isoDate)
	if err != nil {
		return false
	}
	return !t.Before(StartOfMonth(month)) && !t.After(EndOfMonth(month))
}
