package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/morkath/clanhall/internal/model"
)

type MemberStore struct {
	db *sql.DB
}

func NewMemberStore(db *sql.DB) *MemberStore {
	return &MemberStore{db: db}
}

const memberCols = `id, name, rank, class, joined_at, notes, created_at, updated_at`

func scanMember(scanner interface{ Scan(...any) error }) (*model.Member, error) {
	var m model.Member
	var joinedAt sql.NullTime
	err := scanner.Scan(&m.ID, &m.Name, &m.Rank, &m.Class, &joinedAt, &m.Notes, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if joinedAt.Valid {
		m.JoinedAt = &joinedAt.Time
	}
	return &m, nil
}

func (s *MemberStore) Create(name, rank, class string, joinedAt *time.Time, notes string) (*model.Member, error) {
	result, err := s.db.Exec(
		`INSERT INTO members (name, rank, class, joined_at, notes) VALUES (?, ?, ?, ?, ?)`,
		name, rank, class, nullTime(joinedAt), notes,
	)
	if err != nil {
		return nil, fmt.Errorf("insert member: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *MemberStore) GetByID(id int64) (*model.Member, error) {
	row := s.db.QueryRow(`SELECT `+memberCols+` FROM members WHERE id = ?`, id)
	m, err := scanMember(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	return m, nil
}

func (s *MemberStore) GetByName(name string) (*model.Member, error) {
	row := s.db.QueryRow(`SELECT `+memberCols+` FROM members WHERE name = ?`, name)
	m, err := scanMember(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get member by name: %w", err)
	}
	return m, nil
}

func (s *MemberStore) List() ([]model.Member, error) {
	rows, err := s.db.Query(`SELECT ` + memberCols + ` FROM members ORDER BY name COLLATE NOCASE ASC`)
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	defer rows.Close()

	var members []model.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

func (s *MemberStore) Update(id int64, name, rank, class string, joinedAt *time.Time, notes string) (*model.Member, error) {
	_, err := s.db.Exec(
		`UPDATE members SET name = ?, rank = ?, class = ?, joined_at = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		name, rank, class, nullTime(joinedAt), notes, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update member: %w", err)
	}
	return s.GetByID(id)
}

// Upsert creates the member or, if a member with the same name exists,
// updates its rank, class, and join date. Used by the roster importer.
func (s *MemberStore) Upsert(name, rank, class string, joinedAt *time.Time) (*model.Member, error) {
	existing, err := s.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return s.Create(name, rank, class, joinedAt, "")
	}
	return s.Update(existing.ID, name, rank, class, joinedAt, existing.Notes)
}

func (s *MemberStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM members WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	return nil
}
