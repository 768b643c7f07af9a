package businessday

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateRejectsBadInput(t *testing.T) {
	for _, in := range []string{"", "  ", "2024-13-01", "15/10/2024", "yesterday"} {
		_, err := ParseDate(in)
		require.Error(t, err, in)
		assert.True(t, errors.Is(err, ErrInvalidDate), in)
	}
}

func TestWindowForUsesFixedOffset(t *testing.T) {
	d, err := ParseDate("2024-03-10")
	require.NoError(t, err)

	w := WindowFor(d)
	assert.Equal(t, time.Date(2024, 3, 9, 18, 30, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2024, 3, 10, 18, 29, 59, 999_000_000, time.UTC), w.End)
	assert.Equal(t, time.UTC, w.Start.Location())
}

func TestWindowContainsBoundaries(t *testing.T) {
	d, err := ParseDate("2024-03-10")
	require.NoError(t, err)
	w := WindowFor(d)

	assert.True(t, w.Contains(w.Start))
	assert.True(t, w.Contains(w.End))
	assert.False(t, w.Contains(w.Start.Add(-time.Millisecond)))
	assert.False(t, w.Contains(w.End.Add(time.Millisecond)))
}

func TestWindowOverlap(t *testing.T) {
	d, err := ParseDate("2024-03-10")
	require.NoError(t, err)
	w := WindowFor(d)

	assert.Equal(t, time.Hour, w.Overlap(w.Start.Add(-2*time.Hour), 3*time.Hour))
	assert.Equal(t, 30*time.Minute, w.Overlap(w.Start.Add(23*time.Hour+30*time.Minute), 2*time.Hour))
	assert.Equal(t, 90*time.Minute, w.Overlap(w.Start.Add(time.Hour), 90*time.Minute))
	assert.Equal(t, 24*time.Hour, w.Overlap(w.Start.Add(-time.Hour), 26*time.Hour))
	assert.Zero(t, w.Overlap(w.Start.Add(-time.Hour), time.Hour))
	assert.Zero(t, w.Overlap(w.End.Add(time.Millisecond), time.Hour))
}

func TestFormatUsesBusinessDay(t *testing.T) {
	// 20:00 UTC is already the next day at +05:30.
	instant := time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-11", Format(instant))

	instant = time.Date(2024, 3, 10, 18, 29, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-10", Format(instant))
}

func TestWeekContainingStartsOnSunday(t *testing.T) {
	wed, err := ParseDate("2024-03-13")
	require.NoError(t, err)

	start, end := WeekContaining(wed)
	assert.Equal(t, "2024-03-10", Format(start))
	assert.Equal(t, "2024-03-16", Format(end))
	assert.Equal(t, time.Sunday, start.Weekday())

	sun, err := ParseDate("2024-03-10")
	require.NoError(t, err)
	start, _ = WeekContaining(sun)
	assert.Equal(t, "2024-03-10", Format(start))
}
