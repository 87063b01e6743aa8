package model

import "time"

// RecurrenceType describes how often an event repeats.
type RecurrenceType string

const (
	RecurrenceNone     RecurrenceType = "none"
	RecurrenceDaily    RecurrenceType = "daily"
	RecurrenceWeekly   RecurrenceType = "weekly"
	RecurrenceBiweekly RecurrenceType = "biweekly"
	RecurrenceMonthly  RecurrenceType = "monthly"
)

// ValidRecurrence reports whether s is a known recurrence type.
func ValidRecurrence(s string) bool {
	switch RecurrenceType(s) {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceBiweekly, RecurrenceMonthly:
		return true
	}
	return false
}

// Event is a stored clan event definition. Recurring events are stored once;
// their repetitions are computed on demand and never written back.
type Event struct {
	ID            int64          `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Location      string         `json:"location"`
	StartsAt      time.Time      `json:"starts_at"`
	EndsAt        time.Time      `json:"ends_at"` // equal to StartsAt means open-ended
	Organizer     string         `json:"organizer"`
	Recurrence    RecurrenceType `json:"recurrence"`
	RecurrenceEnd *time.Time     `json:"recurrence_end"` // nil = no stop date
	BannerURL     *string        `json:"banner_url"`
	Pinned        bool           `json:"pinned"`
	ForumPostID   *int64         `json:"forum_post_id"`
	AuthorName    string         `json:"author_name"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     *time.Time     `json:"updated_at"`
}
