package schedule

import (
	"testing"
	"time"
)

func TestDayKey(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), "2026-03-10"},
		{time.Date(2026, 3, 10, 23, 59, 59, 0, time.UTC), "2026-03-10"},
		{time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC), "2026-01-02"},
		{time.Date(99, 12, 31, 6, 0, 0, 0, time.UTC), "0099-12-31"},
	}

	for _, tt := range tests {
		if got := DayKey(tt.in); got != tt.want {
			t.Errorf("DayKey(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDayKeySameDayDifferentTimes(t *testing.T) {
	morning := time.Date(2026, 7, 4, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 7, 4, 22, 30, 0, 0, time.UTC)
	if DayKey(morning) != DayKey(evening) {
		t.Errorf("same day mapped to different keys: %q vs %q", DayKey(morning), DayKey(evening))
	}
}

func TestParseDayKey(t *testing.T) {
	got, ok := ParseDayKey("2026-03-10")
	if !ok {
		t.Fatal("ParseDayKey rejected a valid key")
	}
	want := time.Date(2026, 3, 10, 0, 0, 0, 0, RefZone)
	if !got.Equal(want) {
		t.Errorf("ParseDayKey = %v, want %v", got, want)
	}
}

func TestParseDayKeyInvalid(t *testing.T) {
	tests := []string{
		"",
		"2026-03",
		"2026-3-10",   // missing zero padding
		"2026-00-10",  // zero month
		"2026-13-01",  // impossible month
		"2026-02-30",  // impossible day, must not roll into March
		"2025-02-29",  // not a leap year
		"garbage",
		"2026-03-10T00:00:00Z",
	}

	for _, input := range tests {
		if _, ok := ParseDayKey(input); ok {
			t.Errorf("ParseDayKey(%q) should be rejected", input)
		}
	}
}

func TestParseDayKeyLeapDay(t *testing.T) {
	if _, ok := ParseDayKey("2028-02-29"); !ok {
		t.Error("ParseDayKey rejected a real leap day")
	}
}

func TestDayKeyRoundTrip(t *testing.T) {
	keys := []string{"2026-01-01", "2026-02-28", "2028-02-29", "2026-12-31"}
	for _, key := range keys {
		parsed, ok := ParseDayKey(key)
		if !ok {
			t.Errorf("ParseDayKey(%q) rejected", key)
			continue
		}
		if got := DayKey(parsed); got != key {
			t.Errorf("roundtrip %q -> %q", key, got)
		}
	}
}
