package schedule

import (
	"sort"
	"time"
)

// Classified is the upcoming/past split of an expanded occurrence set.
type Classified struct {
	Upcoming []Occurrence `json:"upcoming"`
	Past     []Occurrence `json:"past"`
}

// Classify partitions occurrences relative to now.
//
// Upcoming holds occurrences that have not yet ended, deduplicated by
// source definition: a recurring event contributes only its nearest
// not-yet-ended instance, so occs must arrive ascending by start time (the
// order Expand produces). Past holds only stored definitions that have
// ended, ordered most recently ended first. Virtual repetitions are
// dropped rather than flooding the past list with every historical instance.
func Classify(occs []Occurrence, now time.Time) Classified {
	c := Classified{}
	seen := make(map[int64]bool)
	for _, occ := range occs {
		if occ.EndsAt.Before(now) {
			if !occ.Virtual {
				c.Past = append(c.Past, occ)
			}
			continue
		}
		if seen[occ.ID] {
			continue
		}
		seen[occ.ID] = true
		c.Upcoming = append(c.Upcoming, occ)
	}

	sort.SliceStable(c.Past, func(i, j int) bool {
		return c.Past[i].EndsAt.After(c.Past[j].EndsAt)
	})
	return c
}
