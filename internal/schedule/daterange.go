package schedule

import "time"

// maxRangeKeys caps how many day keys a single occurrence may span. A
// longer range is silently truncated; this is a safety bound, not an error.
const maxRangeKeys = 120

// KeysForRange returns the ordered day keys covered by [start, end],
// inclusive on both sides, in RefZone. A same-day range yields exactly one
// key. Zero-value timestamps yield nil, and a range whose end day precedes
// its start day yields nothing.
func KeysForRange(start, end time.Time) []string {
	if start.IsZero() || end.IsZero() {
		return nil
	}

	cursor := startOfDay(start)
	last := startOfDay(end)

	var keys []string
	for !cursor.After(last) && len(keys) < maxRangeKeys {
		keys = append(keys, DayKey(cursor))
		cursor = cursor.AddDate(0, 0, 1)
	}
	return keys
}

// GroupByDay buckets occurrences under every day key they span, with each
// bucket ordered ascending by start time. Multi-day occurrences appear in
// every day they touch.
func GroupByDay(occs []Occurrence) map[string][]Occurrence {
	byDay := make(map[string][]Occurrence)
	for _, occ := range occs {
		for _, key := range KeysForRange(occ.StartsAt, occ.EndsAt) {
			byDay[key] = append(byDay[key], occ)
		}
	}
	// Expand emits in start order per definition but interleaves
	// definitions, so each bucket still needs its own sort.
	for key := range byDay {
		bucket := byDay[key]
		sortByStart(bucket)
		byDay[key] = bucket
	}
	return byDay
}
