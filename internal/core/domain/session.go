package domain

import "time"

// DefaultSessionTTL is how long a login stays valid. There is no renewal.
const DefaultSessionTTL = 7 * 24 * time.Hour

// Session binds an opaque cookie value to a user.
// Role is a copy of the user's role at login time and is kept for auditing
// only; authorization always re-reads the role from the user record.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is no longer valid at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
