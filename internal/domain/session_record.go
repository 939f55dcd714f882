package domain

import "time"

// SessionRecord is a live quiz session as kept between requests
type SessionRecord struct {
	ID        string    `json:"id"`
	Snapshot  Snapshot  `json:"snapshot"`
	StartedAt time.Time `json:"started_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
