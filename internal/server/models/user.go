// Package models defines the server-side account records persisted next to
// the pantry items.
package models

import "time"

// User is a registered account. PasswordHash is a bcrypt hash.
type User struct {
	ID           string
	UserName     string
	PasswordHash string
	CreatedAt    time.Time
}
