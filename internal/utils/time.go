package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/heybuddy/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// DayString reduces t to its calendar day in loc. A nil loc keeps t's own location.
func DayString(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(constants.DateFormat)
}

// ParseDay parses a YYYY-MM-DD string into midnight UTC of that day.
func ParseDay(day string) (time.Time, error) {
	return time.Parse(constants.DateFormat, day)
}

// AddDays shifts a YYYY-MM-DD day string by n calendar days.
func AddDays(day string, n int) (string, error) {
	t, err := ParseDay(day)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(constants.DateFormat), nil
}

// NormalizeDay accepts either the ISO date format or the Date.toDateString()
// form ("Mon Jan 02 2006") and returns the ISO date.
func NormalizeDay(s string) (string, error) {
	if t, err := time.Parse(constants.DateFormat, s); err == nil {
		return t.Format(constants.DateFormat), nil
	}
	t, err := time.Parse(constants.LegacyDateFormat, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t.Format(constants.DateFormat), nil
}
