package schedule

import "time"

// gridCells is the fixed size of the month grid: six full Monday-first
// weeks, so the layout never reflows as months shift alignment.
const gridCells = 42

// CalendarDay is one cell of the month grid.
type CalendarDay struct {
	Date        time.Time    `json:"date"`
	Key         string       `json:"key"`
	InMonth     bool         `json:"in_month"`
	Today       bool         `json:"today"`
	Occurrences []Occurrence `json:"occurrences"`
}

// GridStart returns the first cell of the month grid containing anchor:
// the Monday on or before the 1st of anchor's month, at midnight in RefZone.
func GridStart(anchor time.Time) time.Time {
	anchor = anchor.In(RefZone)
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, RefZone)
	// Monday-first offset: Weekday() counts Sunday as 0.
	offset := (int(first.Weekday()) + 6) % 7
	return first.AddDate(0, 0, -offset)
}

// GridEnd returns the instant just past the grid's last cell, the natural
// expansion horizon for a month view.
func GridEnd(anchor time.Time) time.Time {
	return GridStart(anchor).AddDate(0, 0, gridCells)
}

// BuildMonth builds the 42-cell grid for the month anchor falls in. The
// first cell is the Monday on or before the 1st; leading and trailing cells
// come from the adjacent months. todayKey marks the "today" cell and byDay
// supplies each cell's occurrences; both are plain lookups, so the result
// is fully determined by the arguments.
func BuildMonth(anchor time.Time, todayKey string, byDay map[string][]Occurrence) []CalendarDay {
	anchor = anchor.In(RefZone)
	cell := GridStart(anchor)

	days := make([]CalendarDay, 0, gridCells)
	for i := 0; i < gridCells; i++ {
		key := DayKey(cell)
		days = append(days, CalendarDay{
			Date:        cell,
			Key:         key,
			InMonth:     cell.Month() == anchor.Month(),
			Today:       key == todayKey,
			Occurrences: byDay[key],
		})
		cell = cell.AddDate(0, 0, 1)
	}
	return days
}
