package model

import "time"

// SessionState tracks the marketplace auth session.
type SessionState struct {
	AuthData   string    `json:"auth_data"`
	ObtainedAt time.Time `json:"obtained_at"`
	ExpiresAt  time.Time `json:"expires_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Valid reports whether the session holds auth data that has not expired at now.
func (s *SessionState) Valid(now time.Time) bool {
	if s == nil || s.AuthData == "" {
		return false
	}
	return s.ExpiresAt.IsZero() || now.Before(s.ExpiresAt)
}
