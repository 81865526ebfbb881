// Package models holds the client-side view of RecipeHub resources as the
// API returns them.
package models

import "time"

// Session is what a successful login leaves behind. It is passed explicitly
// to every authenticated API call.
type Session struct {
	UserID       string
	Name         string
	Email        string
	Token        string
	RefreshToken string
	ExpiresAt    time.Time
}

// LoggedIn reports whether s carries an access token.
func (s *Session) LoggedIn() bool {
	return s != nil && s.Token != ""
}

// AccessExpired reports whether the access token is past its expiry; a
// zero ExpiresAt never expires.
func (s *Session) AccessExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
