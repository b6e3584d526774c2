// Package month implements the "YYYY-MM" month token used as the
// time-bucketing key throughout the ledger and reporting code.
package month

import (
	"fmt"
	"regexp"
	"time"
)

// Layout is the time.Parse layout for a month token.
const Layout = "2006-01"

var tokenRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// IsValid reports whether s is a well-formed month token.
func IsValid(s string) bool {
	return tokenRegex.MatchString(s)
}

// Parse converts a month token to the first instant of that month in UTC.
func Parse(s string) (time.Time, error) {
	if !IsValid(s) {
		return time.Time{}, fmt.Errorf("invalid month token %q", s)
	}
	return time.Parse(Layout, s)
}

// Format converts a time to its month token.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Current returns the month token for the current calendar month in UTC.
func Current() string {
	return Format(time.Now().UTC())
}

// Range expands an inclusive [from, to] range into the ordered list of
// month tokens it covers. An inverted range is an error.
func Range(from, to string) ([]string, error) {
	start, err := Parse(from)
	if err != nil {
		return nil, err
	}
	end, err := Parse(to)
	if err != nil {
		return nil, err
	}
	if start.After(end) {
		return nil, fmt.Errorf("month range %s..%s is inverted", from, to)
	}

	var months []string
	for t := start; !t.After(end); t = t.AddDate(0, 1, 0) {
		months = append(months, Format(t))
	}
	return months, nil
}

// Lookback derives an inclusive [from, to] range ending at the current
// month and spanning n months. n below 1 is treated as 1.
func Lookback(n int) (from, to string) {
	if n < 1 {
		n = 1
	}
	now := time.Now().UTC()
	// Normalize to the first of the month so AddDate cannot overflow on
	// short months.
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to = Format(first)
	from = Format(first.AddDate(0, -(n - 1), 0))
	return from, to
}
