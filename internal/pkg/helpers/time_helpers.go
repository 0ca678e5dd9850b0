package helpers

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// ClockLayout is the wire format of a time of day
const ClockLayout = "15:04"

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		// Use the global logger here, assuming logger might not be configured when this is called.
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// Clock is a time of day in minutes since midnight
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses "HH:MM" (24h)
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return Clock{}, fmt.Errorf("invalid time of day %q, expected HH:MM", s)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// Minutes returns the minutes since midnight
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// On combines the calendar date of day with the clock, in day's location.
func (c Clock) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, c.Hour, c.Minute, 0, 0, day.Location())
}

// ParseDate parses a YYYY-MM-DD date at midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// EachDay calls fn for every calendar day in [from, to], inclusive. Days are stepped with
// AddDate so DST transitions do not skip or repeat a date.
func EachDay(from, to time.Time, fn func(day time.Time)) {
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		fn(day)
	}
}
