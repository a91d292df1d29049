package dateutil

import (
	"fmt"
	"time"
)

// DateLayout is the layout of calendar dates stored in the database. Keys in
// this layout compare lexicographically in date order.
const DateLayout = "2006-01-02"

func BeginningOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func NextDay(t time.Time) time.Time {
	return BeginningOfDay(t).AddDate(0, 0, 1)
}

// DateKey returns the UTC calendar date of t.
func DateKey(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

func ParseDateKey(key string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, key, time.UTC)
}

// AddDays shifts a date key by n calendar days.
func AddDays(key string, n int) (string, error) {
	t, err := ParseDateKey(key)
	if err != nil {
		return "", err
	}

	return DateKey(t.AddDate(0, 0, n)), nil
}

// DaysBetween returns the number of calendar days from one date key to
// another. It is negative when to is before from.
func DaysBetween(from, to string) (int, error) {
	f, err := ParseDateKey(from)
	if err != nil {
		return 0, err
	}

	t, err := ParseDateKey(to)
	if err != nil {
		return 0, err
	}

	return int(t.Sub(f).Hours() / 24), nil
}

// NextTimeOfDay returns the first instant after now which has the clock value
// hhmm ("15:04") in UTC.
func NextTimeOfDay(now time.Time, hhmm string) (time.Time, error) {
	clock, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time of day %q: %w", hhmm, err)
	}

	day := BeginningOfDay(now)
	next := day.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}

	return next, nil
}
