// utils/time_utils.go
package utils

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for trip dates.
const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// ParseDate reads a YYYY-MM-DD calendar date and pins it to UTC midnight.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be formatted YYYY-MM-DD", ErrInvalidInput, value)
	}
	return t, nil
}

// CalendarDate drops the clock and zone so two dates compare as calendar days.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayCount returns the inclusive number of calendar days between start and end.
// It fails with InvalidRangeError when end precedes start.
func DayCount(start, end time.Time) (int, error) {
	s, e := CalendarDate(start), CalendarDate(end)
	if e.Before(s) {
		return 0, &InvalidRangeError{Start: s, End: e}
	}
	return int((e.Unix()-s.Unix())/secondsPerDay) + 1, nil
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
