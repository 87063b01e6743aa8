package schedule

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/morkath/clanhall/internal/model"
)

// maxVirtualPerEvent caps how many virtual occurrences a single definition
// may generate per expansion, no matter how far the horizon or stop date
// reaches. Downstream views depend on this exact bound for "how far into
// the future repeats are ever shown".
const maxVirtualPerEvent = 200

// Occurrence is one concrete instance in time of an event: either the
// stored definition itself or a computed repetition. Occurrences are
// recomputed on every expansion and never persisted.
type Occurrence struct {
	model.Event

	// DisplayKey is a stable identity for rendering: the definition id for
	// the original, "id:dayKey:seq" for virtual repetitions.
	DisplayKey string `json:"display_key"`

	// Virtual marks computed repetitions that have no stored record of
	// their own.
	Virtual bool `json:"virtual"`
}

// Expand materializes every occurrence of the given definitions up to and
// including horizon, sorted ascending by start time (stable for ties).
//
// Each definition contributes its original occurrence exactly once, then,
// if recurring, virtual repetitions strictly later than its own start,
// each keeping the original's duration. A stop date bounds the series at
// the end of that day in RefZone; the horizon bounds it otherwise.
func Expand(events []model.Event, horizon time.Time) []Occurrence {
	var out []Occurrence
	for _, ev := range events {
		out = append(out, Occurrence{
			Event:      ev,
			DisplayKey: strconv.FormatInt(ev.ID, 10),
		})
		if ev.Recurrence == model.RecurrenceNone || ev.Recurrence == "" {
			continue
		}

		duration := ev.EndsAt.Sub(ev.StartsAt)
		limit := horizon
		if ev.RecurrenceEnd != nil {
			if stop := endOfDay(*ev.RecurrenceEnd); stop.Before(limit) {
				limit = stop
			}
		}

		// Advance before the loop: the first virtual occurrence is the
		// second occurrence in time, never a duplicate of the original.
		cursor := Advance(ev.StartsAt, ev.Recurrence)
		for seq := 1; !cursor.After(limit) && seq <= maxVirtualPerEvent; seq++ {
			repeat := ev
			repeat.StartsAt = cursor
			repeat.EndsAt = cursor.Add(duration)
			out = append(out, Occurrence{
				Event:      repeat,
				DisplayKey: fmt.Sprintf("%d:%s:%d", ev.ID, DayKey(cursor), seq),
				Virtual:    true,
			})
			cursor = Advance(cursor, ev.Recurrence)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartsAt.Before(out[j].StartsAt)
	})
	return out
}
