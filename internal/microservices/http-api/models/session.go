package models

import (
	"time"

	"churchhub/internal/access"
)

// Session is the server-side half of an issued token. It is kept in the
// session store, not the relational database.
type Session struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	Role      access.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
	ExpiresAt time.Time   `json:"expires_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
