// Package schedule computes the derived calendar views of the clan's event
// definitions: bounded recurrence expansion, per-day bucketing, the month
// grid, display ordering, and the upcoming/past split.
//
// Everything in this package is a pure function. "Now", "today", and the
// expansion horizon are always explicit parameters; nothing here reads the
// clock, touches storage, or mutates its inputs.
package schedule

import "time"

// RefZone is the single reference timezone used for every day-bucketing
// decision. Two timestamps that fall on the same calendar day in this zone
// share a day key regardless of their time of day.
var RefZone = time.UTC

const dayKeyLayout = "2006-01-02"

// DayKey returns the canonical YYYY-MM-DD key for the calendar day t falls
// on in RefZone.
func DayKey(t time.Time) string {
	return t.In(RefZone).Format(dayKeyLayout)
}

// ParseDayKey parses a YYYY-MM-DD key back into midnight of that day in
// RefZone. It reports ok=false for malformed keys and for impossible
// calendar dates (Feb 30 is rejected, not rolled into March): the parsed
// date must reproduce the input key exactly.
func ParseDayKey(key string) (time.Time, bool) {
	t, err := time.ParseInLocation(dayKeyLayout, key, RefZone)
	if err != nil {
		return time.Time{}, false
	}
	if t.Format(dayKeyLayout) != key {
		return time.Time{}, false
	}
	return t, true
}

// startOfDay returns midnight of t's calendar day in RefZone.
func startOfDay(t time.Time) time.Time {
	t = t.In(RefZone)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, RefZone)
}

// endOfDay returns the last second of t's calendar day in RefZone. Used for
// recurrence stop dates, which bound the series inclusively.
func endOfDay(t time.Time) time.Time {
	t = t.In(RefZone)
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, RefZone)
}
