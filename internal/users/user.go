// Package users implements the reviewer identity domain.
// Users are created lazily on first successful login and keyed by email.
package users

import "time"

// User represents an authenticated reviewer.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
