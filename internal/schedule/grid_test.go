package schedule

import (
	"testing"
	"time"
)

func TestBuildMonthAlways42Cells(t *testing.T) {
	anchors := []time.Time{
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),  // Feb, starts on Sunday
		time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), // anchor mid-month
		time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),  // June, starts on Monday
		time.Date(2027, 2, 1, 0, 0, 0, 0, time.UTC),  // Feb in a 28-day year starting Monday
		time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), // month with a DST-style boundary in local zones
	}

	for _, anchor := range anchors {
		cells := BuildMonth(anchor, "", nil)
		if len(cells) != 42 {
			t.Errorf("BuildMonth(%v) returned %d cells, want 42", anchor, len(cells))
		}
	}
}

func TestBuildMonthStartsOnMonday(t *testing.T) {
	// March 2026 begins on a Sunday; the grid must lead with Monday Feb 23.
	anchor := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	cells := BuildMonth(anchor, "", nil)

	if cells[0].Date.Weekday() != time.Monday {
		t.Fatalf("first cell weekday = %v, want Monday", cells[0].Date.Weekday())
	}
	if cells[0].Key != "2026-02-23" {
		t.Errorf("first cell = %q, want 2026-02-23", cells[0].Key)
	}
	if cells[0].InMonth {
		t.Error("leading cell from February must not be InMonth")
	}
}

func TestBuildMonthMondayFirstOfMonth(t *testing.T) {
	// June 2026 begins on a Monday: no leading spill, cell 0 is June 1.
	anchor := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	cells := BuildMonth(anchor, "", nil)

	if cells[0].Key != "2026-06-01" {
		t.Fatalf("first cell = %q, want 2026-06-01", cells[0].Key)
	}
	if !cells[0].InMonth {
		t.Error("June 1 must be InMonth")
	}
	// Six weeks always: the tail runs into July.
	if cells[41].Key != "2026-07-12" {
		t.Errorf("last cell = %q, want 2026-07-12", cells[41].Key)
	}
}

func TestBuildMonthTodayFlag(t *testing.T) {
	anchor := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	cells := BuildMonth(anchor, "2026-03-10", nil)

	var todays int
	for _, c := range cells {
		if c.Today {
			todays++
			if c.Key != "2026-03-10" {
				t.Errorf("Today set on %q", c.Key)
			}
		}
	}
	if todays != 1 {
		t.Errorf("Today flagged on %d cells, want 1", todays)
	}

	// A todayKey outside the grid simply marks nothing.
	for _, c := range BuildMonth(anchor, "2030-01-01", nil) {
		if c.Today {
			t.Errorf("Today set on %q for out-of-grid today", c.Key)
		}
	}
}

func TestBuildMonthBuckets(t *testing.T) {
	occ := Occurrence{DisplayKey: "1"}
	occ.ID = 1
	occ.StartsAt = time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)
	occ.EndsAt = time.Date(2026, 3, 10, 22, 0, 0, 0, time.UTC)
	byDay := GroupByDay([]Occurrence{occ})

	anchor := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	cells := BuildMonth(anchor, "", byDay)

	for _, c := range cells {
		want := 0
		if c.Key == "2026-03-10" {
			want = 1
		}
		if len(c.Occurrences) != want {
			t.Errorf("cell %q has %d occurrences, want %d", c.Key, len(c.Occurrences), want)
		}
	}
}
