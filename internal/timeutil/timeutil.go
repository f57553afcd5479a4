// Package timeutil converts between the roster's minute-of-day shift
// representation and wall-clock strings, and between local and UTC
// instants for a named IANA timezone.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the number of minutes in a civil day.
const MinutesPerDay = 24 * 60

// MinutesToClock renders minutes-since-midnight as "HH:MM". Hours are
// obtained by floor division, minutes by modulo 60. Values outside
// [0, 1440) are not rejected; callers are expected to pass normalized
// minute-of-day values.
func MinutesToClock(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60
	if minutes < 0 && mins != 0 {
		hours--
		mins += 60
	}
	return fmt.Sprintf("%02d:%02d", hours, mins)
}

// ClockToMinutes parses "H:MM" or "HH:MM" into minutes since midnight.
// Anything that is not exactly two colon-separated parts yields 0;
// callers that need hard guarantees must validate separately.
func ClockToMinutes(text string) int {
	parts := strings.Split(text, ":")
	if len(parts) != 2 {
		return 0
	}
	hours, _ := strconv.Atoi(strings.TrimSpace(parts[0]))
	mins, _ := strconv.Atoi(strings.TrimSpace(parts[1]))
	return hours*60 + mins
}

// LoadLocation resolves an IANA timezone identifier. Unlike
// time.LoadLocation, the empty string is an error rather than UTC, so
// missing zone data routes through the caller's fallback.
func LoadLocation(tz string) (*time.Location, error) {
	trimmed := strings.TrimSpace(tz)
	if trimmed == "" {
		return nil, fmt.Errorf("timeutil: empty timezone")
	}
	loc, err := time.LoadLocation(trimmed)
	if err != nil {
		return nil, fmt.Errorf("timeutil: invalid timezone %q: %w", tz, err)
	}
	return loc, nil
}

// LocalToUTC reinterprets the wall-clock fields of local in the given
// zone and returns the corresponding UTC instant. The zone's offset at
// that instant is applied, so the same clock time on different dates
// may map to different UTC instants across DST transitions.
func LocalToUTC(local time.Time, tz string) (time.Time, error) {
	loc, err := LoadLocation(tz)
	if err != nil {
		return time.Time{}, err
	}
	zoned := time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), local.Minute(), local.Second(), local.Nanosecond(), loc)
	return zoned.UTC(), nil
}

// UTCToLocal converts a UTC instant into wall-clock time in the given zone.
func UTCToLocal(utc time.Time, tz string) (time.Time, error) {
	loc, err := LoadLocation(tz)
	if err != nil {
		return time.Time{}, err
	}
	return utc.In(loc), nil
}
