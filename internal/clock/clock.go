// Package clock wraps "now" and the parsing of stored timestamps. Appointment
// documents imported from older installations carry their scheduled instant
// either as epoch seconds or as one of a few string layouts; ParseInstant
// turns any of them into a comparable time.Time and reports malformed values
// as errors so batch callers can fail open instead of crashing.
package clock

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Now is the function used by the engine to read wall-clock time. Tests
// replace it (or pass their own) to pin the clock.
type Now func() time.Time

// ErrUnparsable is returned when a stored timestamp matches none of the
// accepted representations.
var ErrUnparsable = errors.New("unparsable instant")

// layouts accepted for string timestamps, tried in order. The source
// application wrote naive local times, so layouts without zone information
// are interpreted in the local location.
var layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseInstant converts a stored timestamp into a time.Time. It accepts
// epoch seconds (integer string or large integer with millisecond precision)
// and the string layouts above. The zero time plus ErrUnparsable is returned
// for anything else, including the empty string.
func ParseInstant(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrUnparsable
	}

	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		// Heuristic: values this large are epoch milliseconds.
		if n > 1e12 {
			return time.UnixMilli(n), nil
		}
		return time.Unix(n, 0), nil
	}

	for _, layout := range layouts {
		var (
			t   time.Time
			err error
		)
		if strings.Contains(layout, "Z07:00") {
			t, err = time.Parse(layout, raw)
		} else {
			t, err = time.ParseInLocation(layout, raw, time.Local)
		}
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrUnparsable
}

// CombineDateTime joins a calendar date ("2006-01-02") and a wall time
// ("15:04" or "15:04:05") into one instant in the local location. Booking
// forms submit the two fields separately.
func CombineDateTime(date, wall string) (time.Time, error) {
	date = strings.TrimSpace(date)
	wall = strings.TrimSpace(wall)
	if date == "" {
		return time.Time{}, ErrUnparsable
	}
	if wall == "" {
		return ParseInstant(date)
	}
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, date+" "+wall, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrUnparsable
}

// HoursUntil returns the signed number of hours from now until t.
func HoursUntil(t, now time.Time) float64 {
	return t.Sub(now).Hours()
}

// DaysUntil returns ceil((t - now) / 24h) as an integer day delta. A value of
// 0 means "later today or just passed"; negative values mean t is more than a
// day in the past.
func DaysUntil(t, now time.Time) int {
	diff := t.Sub(now)
	days := diff / (24 * time.Hour)
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return int(days)
}
