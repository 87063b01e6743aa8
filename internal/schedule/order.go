package schedule

import "sort"

// TimeLabel selects which time an occurrence shows inside a calendar cell.
type TimeLabel string

const (
	LabelStartTime TimeLabel = "start" // show the start time
	LabelEndTime   TimeLabel = "end"   // show the end time
	LabelAllDay    TimeLabel = "all_day"
)

// SortPinnedFirst returns a copy of occs with pinned occurrences first and
// unpinned after, preserving relative order inside each partition. The
// input slice is not modified.
func SortPinnedFirst(occs []Occurrence) []Occurrence {
	sorted := make([]Occurrence, len(occs))
	copy(sorted, occs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Pinned && !sorted[j].Pinned
	})
	return sorted
}

// SortBannerPair returns a copy of occs ordered ascending by start time,
// ties broken by ascending end time, stable beyond that. It decides
// left/right placement when two bannered occurrences share a day. The input
// slice is not modified.
func SortBannerPair(occs []Occurrence) []Occurrence {
	sorted := make([]Occurrence, len(occs))
	copy(sorted, occs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].StartsAt.Equal(sorted[j].StartsAt) {
			return sorted[i].StartsAt.Before(sorted[j].StartsAt)
		}
		return sorted[i].EndsAt.Before(sorted[j].EndsAt)
	})
	return sorted
}

// CellTimeLabel picks the time label for occ rendered in the cell with the
// given day key. Single-day occurrences always show their start time. A
// multi-day occurrence shows its start time on its first day, its end time
// on its last day, and "all day" in between.
func CellTimeLabel(occ Occurrence, cellKey string) TimeLabel {
	startKey := DayKey(occ.StartsAt)
	endKey := DayKey(occ.EndsAt)
	if startKey == endKey {
		return LabelStartTime
	}
	switch cellKey {
	case startKey:
		return LabelStartTime
	case endKey:
		return LabelEndTime
	}
	return LabelAllDay
}

func sortByStart(occs []Occurrence) {
	sort.SliceStable(occs, func(i, j int) bool {
		return occs[i].StartsAt.Before(occs[j].StartsAt)
	})
}
