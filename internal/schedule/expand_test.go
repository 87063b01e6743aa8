package schedule

import (
	"fmt"
	"testing"
	"time"

	"github.com/morkath/clanhall/internal/model"
)

func testEvent(id int64, start, end time.Time, r model.RecurrenceType) model.Event {
	return model.Event{
		ID:         id,
		Title:      fmt.Sprintf("Event %d", id),
		StartsAt:   start,
		EndsAt:     end,
		Recurrence: r,
	}
}

func TestExpandNonRecurring(t *testing.T) {
	ev := testEvent(1,
		time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 1, 14, 0, 0, 0, time.UTC),
		model.RecurrenceNone)
	horizon := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)

	occs := Expand([]model.Event{ev}, horizon)
	if len(occs) != 1 {
		t.Fatalf("got %d occurrences, want 1", len(occs))
	}
	occ := occs[0]
	if occ.Virtual {
		t.Error("original occurrence must not be virtual")
	}
	if occ.DisplayKey != "1" {
		t.Errorf("DisplayKey = %q, want %q", occ.DisplayKey, "1")
	}
	if !occ.StartsAt.Equal(ev.StartsAt) || !occ.EndsAt.Equal(ev.EndsAt) {
		t.Errorf("occurrence times changed: %v-%v", occ.StartsAt, occ.EndsAt)
	}
}

func TestExpandWeekly(t *testing.T) {
	// The raid on Feb 1 repeats weekly with no stop date; a horizon of
	// Mar 1 00:00 admits Feb 1, 8, 15, 22.
	ev := testEvent(1,
		time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 1, 14, 0, 0, 0, time.UTC),
		model.RecurrenceWeekly)
	horizon := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	occs := Expand([]model.Event{ev}, horizon)
	if len(occs) != 4 {
		t.Fatalf("got %d occurrences, want 4", len(occs))
	}

	wantDays := []int{1, 8, 15, 22}
	for i, occ := range occs {
		if occ.StartsAt.Day() != wantDays[i] {
			t.Errorf("occ[%d] day = %d, want %d", i, occ.StartsAt.Day(), wantDays[i])
		}
		if occ.StartsAt.Hour() != 12 {
			t.Errorf("occ[%d] hour = %d, want 12", i, occ.StartsAt.Hour())
		}
		if got := occ.EndsAt.Sub(occ.StartsAt); got != 2*time.Hour {
			t.Errorf("occ[%d] duration = %v, want 2h", i, got)
		}
		if (i == 0) == occ.Virtual {
			t.Errorf("occ[%d] Virtual = %v", i, occ.Virtual)
		}
	}

	if occs[1].DisplayKey != "1:2026-02-08:1" {
		t.Errorf("first virtual key = %q, want %q", occs[1].DisplayKey, "1:2026-02-08:1")
	}
	if occs[3].DisplayKey != "1:2026-02-22:3" {
		t.Errorf("third virtual key = %q, want %q", occs[3].DisplayKey, "1:2026-02-22:3")
	}
}

func TestExpandNeverDuplicatesOriginal(t *testing.T) {
	ev := testEvent(7,
		time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC),
		model.RecurrenceDaily)
	horizon := time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)

	occs := Expand([]model.Event{ev}, horizon)
	for i, occ := range occs[1:] {
		if !occ.StartsAt.After(ev.StartsAt) {
			t.Errorf("virtual occ[%d] starts at %v, not after the original %v", i+1, occ.StartsAt, ev.StartsAt)
		}
	}
}

func TestExpandMonthlyClamping(t *testing.T) {
	ev := testEvent(2,
		time.Date(2026, 1, 31, 18, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 31, 20, 0, 0, 0, time.UTC),
		model.RecurrenceMonthly)
	horizon := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	occs := Expand([]model.Event{ev}, horizon)
	if len(occs) != 3 {
		t.Fatalf("got %d occurrences, want 3", len(occs))
	}
	second := occs[1].StartsAt
	if second.Month() != time.February || second.Day() != 28 {
		t.Errorf("second occurrence = %v, want Feb 28", second)
	}
}

func TestExpandStopDateInclusive(t *testing.T) {
	// Stop date bounds the series at end of that day, so an occurrence on
	// the stop date itself is still generated.
	stop := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	ev := testEvent(3,
		time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 1, 13, 0, 0, 0, time.UTC),
		model.RecurrenceWeekly)
	ev.RecurrenceEnd = &stop
	horizon := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	occs := Expand([]model.Event{ev}, horizon)
	if len(occs) != 3 {
		t.Fatalf("got %d occurrences, want 3 (Feb 1, 8, 15)", len(occs))
	}
	last := occs[len(occs)-1].StartsAt
	if last.Day() != 15 {
		t.Errorf("last occurrence day = %d, want 15", last.Day())
	}
}

func TestExpandHorizonBound(t *testing.T) {
	ev := testEvent(4,
		time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 1, 13, 0, 0, 0, time.UTC),
		model.RecurrenceWeekly)
	horizon := time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)

	occs := Expand([]model.Event{ev}, horizon)
	for _, occ := range occs {
		if occ.StartsAt.After(horizon) {
			t.Errorf("occurrence %v beyond horizon %v", occ.StartsAt, horizon)
		}
	}
	// Horizon is inclusive: Feb 15 12:00 itself qualifies.
	if len(occs) != 3 {
		t.Fatalf("got %d occurrences, want 3", len(occs))
	}
}

func TestExpandIterationCap(t *testing.T) {
	ev := testEvent(5,
		time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
		model.RecurrenceWeekly)
	horizon := time.Date(2036, 1, 1, 0, 0, 0, 0, time.UTC) // ten years out

	occs := Expand([]model.Event{ev}, horizon)
	if len(occs) > 1+maxVirtualPerEvent {
		t.Fatalf("got %d occurrences, cap is %d", len(occs), 1+maxVirtualPerEvent)
	}
	if len(occs) != 1+maxVirtualPerEvent {
		t.Errorf("got %d occurrences, want exactly %d for a far horizon", len(occs), 1+maxVirtualPerEvent)
	}
}

func TestExpandZeroDuration(t *testing.T) {
	start := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	ev := testEvent(6, start, start, model.RecurrenceDaily) // open-ended
	horizon := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)

	occs := Expand([]model.Event{ev}, horizon)
	if len(occs) != 3 {
		t.Fatalf("got %d occurrences, want 3", len(occs))
	}
	for i, occ := range occs {
		if !occ.StartsAt.Equal(occ.EndsAt) {
			t.Errorf("occ[%d] should keep zero duration: %v-%v", i, occ.StartsAt, occ.EndsAt)
		}
	}
}

func TestExpandSortsAcrossDefinitions(t *testing.T) {
	a := testEvent(1,
		time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 10, 13, 0, 0, 0, time.UTC),
		model.RecurrenceNone)
	b := testEvent(2,
		time.Date(2026, 2, 3, 19, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 3, 21, 0, 0, 0, time.UTC),
		model.RecurrenceWeekly)
	horizon := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	occs := Expand([]model.Event{a, b}, horizon)
	for i := 1; i < len(occs); i++ {
		if occs[i].StartsAt.Before(occs[i-1].StartsAt) {
			t.Fatalf("occurrences out of order at %d: %v after %v", i, occs[i].StartsAt, occs[i-1].StartsAt)
		}
	}
}

func TestExpandDoesNotMutateInput(t *testing.T) {
	start := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	events := []model.Event{testEvent(1, start, start.Add(time.Hour), model.RecurrenceDaily)}
	Expand(events, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	if !events[0].StartsAt.Equal(start) {
		t.Error("Expand mutated the input definition's start")
	}
	if events[0].Recurrence != model.RecurrenceDaily {
		t.Error("Expand mutated the input definition's recurrence")
	}
}
