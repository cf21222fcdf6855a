package dateutil

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used as key for daily records.
const DateLayout = "2006-01-02"

// Date returns the UTC calendar date of t.
func Date(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseDate validates s as a calendar date and returns the start of that day
// in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected %s", s, DateLayout)
	}

	return t, nil
}

// AddDays moves date by n days and returns the new date.
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}

	return Date(t.AddDate(0, 0, n)), nil
}
