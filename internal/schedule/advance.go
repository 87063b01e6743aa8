package schedule

import (
	"time"

	"github.com/morkath/clanhall/internal/model"
)

// Advance returns cursor moved forward by exactly one recurrence period.
// Monthly moves to the same day-of-month in the next calendar month,
// clamping to the last valid day when the month is shorter (Jan 31 becomes
// Feb 28, or Feb 29 in a leap year, never March). RecurrenceNone returns
// the cursor unchanged.
func Advance(cursor time.Time, r model.RecurrenceType) time.Time {
	switch r {
	case model.RecurrenceDaily:
		return cursor.AddDate(0, 0, 1)
	case model.RecurrenceWeekly:
		return cursor.AddDate(0, 0, 7)
	case model.RecurrenceBiweekly:
		return cursor.AddDate(0, 0, 14)
	case model.RecurrenceMonthly:
		year, month, day := cursor.Date()
		if last := daysInMonth(year, month+1); day > last {
			day = last
		}
		return time.Date(year, month+1, day,
			cursor.Hour(), cursor.Minute(), cursor.Second(), cursor.Nanosecond(),
			cursor.Location())
	}
	return cursor
}

// daysInMonth returns the number of days in the given month. The month may
// be out of range (e.g. 13); time.Date normalizes it.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
