// Package businessday converts between instants and the application's
// business days. A business day is a calendar day in a fixed UTC+05:30
// offset, independent of the host's local zone.
package businessday

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical textual form of a business day.
const DateLayout = "2006-01-02"

// Offset is the fixed distance of business time from UTC.
const Offset = 5*time.Hour + 30*time.Minute

// Zone is the fixed business-time location.
var Zone = time.FixedZone("UTC+05:30", int(Offset/time.Second))

// ErrInvalidDate is returned for empty or unparseable dates.
var ErrInvalidDate = errors.New("invalid date")

// Window is an inclusive instant range covering one business day.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies in [Start, End].
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Overlap returns how much of [start, start+d) falls inside the window.
func (w Window) Overlap(start time.Time, d time.Duration) time.Duration {
	end := start.Add(d)
	if start.Before(w.Start) {
		start = w.Start
	}
	if limit := w.End.Add(time.Millisecond); end.After(limit) {
		end = limit
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}

// ParseDate parses a YYYY-MM-DD business day and returns its midnight in Zone.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}
	d, err := time.ParseInLocation(DateLayout, s, Zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// Format renders the business day containing t.
func Format(t time.Time) string {
	return t.In(Zone).Format(DateLayout)
}

// Midnight returns 00:00 business time of the day containing t.
func Midnight(t time.Time) time.Time {
	l := t.In(Zone)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, Zone)
}

// WindowFor returns [00:00:00.000, 23:59:59.999] business time of the day
// containing day, expressed as UTC instants.
func WindowFor(day time.Time) Window {
	start := Midnight(day)
	end := start.AddDate(0, 0, 1).Add(-time.Millisecond)
	return Window{Start: start.UTC(), End: end.UTC()}
}

// WeekContaining returns the Sunday and Saturday business days of the week
// that contains day.
func WeekContaining(day time.Time) (start, end time.Time) {
	d := Midnight(day)
	start = d.AddDate(0, 0, -int(d.Weekday()))
	return start, start.AddDate(0, 0, 6)
}
