package model

import "time"

// Member is one entry in the clan roster.
type Member struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Rank      string     `json:"rank"`
	Class     string     `json:"class"`
	JoinedAt  *time.Time `json:"joined_at"`
	Notes     string     `json:"notes"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
