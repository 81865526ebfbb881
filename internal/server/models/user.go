// Package models defines server-side data models persisted by the repositories.
package models

import "time"

// User is a registered account. Email is stored normalized (trimmed,
// lower-cased) and is unique across users.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}
