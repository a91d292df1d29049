package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	// 2026-10-18 02:00 at UTC+7 is still 2026-10-17 in UTC.
	require.Equal(t, "2026-10-17", DateKey(time.Date(2026, 10, 18, 2, 0, 0, 0, loc)))
	require.Equal(t, "2026-10-18", DateKey(time.Date(2026, 10, 18, 23, 59, 0, 0, time.UTC)))
}

func TestAddDaysAndDaysBetween(t *testing.T) {
	next, err := AddDays("2026-12-31", 1)
	require.NoError(t, err)
	require.Equal(t, "2027-01-01", next)

	n, err := DaysBetween("2026-10-18", "2027-10-18")
	require.NoError(t, err)
	require.Equal(t, 365, n)

	n, err = DaysBetween("2026-10-18", "2026-10-15")
	require.NoError(t, err)
	require.Equal(t, -3, n)

	_, err = DaysBetween("18/10/2026", "2026-10-15")
	require.Error(t, err)
}

func TestNextTimeOfDay(t *testing.T) {
	now := time.Date(2026, 10, 18, 10, 30, 0, 0, time.UTC)

	next, err := NextTimeOfDay(now, "00:05")
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 10, 19, 0, 5, 0, 0, time.UTC), next)

	next, err = NextTimeOfDay(now, "12:00")
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC), next)

	_, err = NextTimeOfDay(now, "25:00")
	require.Error(t, err)
}
