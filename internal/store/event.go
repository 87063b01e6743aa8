package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/morkath/clanhall/internal/model"
)

type EventStore struct {
	db *sql.DB
}

func NewEventStore(db *sql.DB) *EventStore {
	return &EventStore{db: db}
}

const eventCols = `id, title, description, location, starts_at, ends_at, organizer,
	recurrence, recurrence_end, banner_url, pinned, forum_post_id, author_name,
	created_at, updated_at`

func scanEvent(scanner interface{ Scan(...any) error }) (*model.Event, error) {
	var e model.Event
	var pinnedInt int
	var recurrenceEnd, updatedAt sql.NullTime
	var bannerURL sql.NullString
	var forumPostID sql.NullInt64

	err := scanner.Scan(&e.ID, &e.Title, &e.Description, &e.Location, &e.StartsAt, &e.EndsAt,
		&e.Organizer, &e.Recurrence, &recurrenceEnd, &bannerURL, &pinnedInt, &forumPostID,
		&e.AuthorName, &e.CreatedAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	e.Pinned = pinnedInt != 0
	if recurrenceEnd.Valid {
		e.RecurrenceEnd = &recurrenceEnd.Time
	}
	if updatedAt.Valid {
		e.UpdatedAt = &updatedAt.Time
	}
	if bannerURL.Valid {
		e.BannerURL = &bannerURL.String
	}
	if forumPostID.Valid {
		e.ForumPostID = &forumPostID.Int64
	}
	return &e, nil
}

func (s *EventStore) Create(e model.Event) (*model.Event, error) {
	var pinnedInt int
	if e.Pinned {
		pinnedInt = 1
	}

	result, err := s.db.Exec(
		`INSERT INTO events (title, description, location, starts_at, ends_at, organizer,
		 recurrence, recurrence_end, banner_url, pinned, forum_post_id, author_name)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Title, e.Description, e.Location, e.StartsAt.UTC(), e.EndsAt.UTC(), e.Organizer,
		string(e.Recurrence), nullTime(e.RecurrenceEnd), nullString(e.BannerURL),
		pinnedInt, nullInt64(e.ForumPostID), e.AuthorName,
	)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return s.GetByID(id)
}

func (s *EventStore) GetByID(id int64) (*model.Event, error) {
	row := s.db.QueryRow(`SELECT `+eventCols+` FROM events WHERE id = ?`, id)
	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query event: %w", err)
	}
	return e, nil
}

// List returns all event definitions ordered by start time. Recurring
// definitions are returned once each; their repetitions are computed by the
// schedule package, never stored.
func (s *EventStore) List() ([]model.Event, error) {
	rows, err := s.db.Query(`SELECT ` + eventCols + ` FROM events ORDER BY starts_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

// ListRelevant returns definitions that can still produce an occurrence at
// or after cutoff: anything not yet ended, plus every recurring definition
// without a stop date or with a stop date at or after cutoff.
func (s *EventStore) ListRelevant(cutoff time.Time) ([]model.Event, error) {
	rows, err := s.db.Query(
		`SELECT `+eventCols+` FROM events
		 WHERE ends_at >= ?
		    OR (recurrence != 'none' AND (recurrence_end IS NULL OR recurrence_end >= ?))
		 ORDER BY starts_at ASC, id ASC`,
		cutoff.UTC(), cutoff.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("query relevant events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (s *EventStore) Update(id int64, e model.Event) (*model.Event, error) {
	var pinnedInt int
	if e.Pinned {
		pinnedInt = 1
	}

	_, err := s.db.Exec(
		`UPDATE events
		 SET title = ?, description = ?, location = ?, starts_at = ?, ends_at = ?, organizer = ?,
		     recurrence = ?, recurrence_end = ?, banner_url = ?, pinned = ?, forum_post_id = ?,
		     author_name = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		e.Title, e.Description, e.Location, e.StartsAt.UTC(), e.EndsAt.UTC(), e.Organizer,
		string(e.Recurrence), nullTime(e.RecurrenceEnd), nullString(e.BannerURL),
		pinnedInt, nullInt64(e.ForumPostID), e.AuthorName, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	return s.GetByID(id)
}

func (s *EventStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt64(n *int64) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *n, Valid: true}
}
