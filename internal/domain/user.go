package domain

import "time"

// User is a row of the signups table. PasswordHash is a bcrypt hash, never the
// raw credential.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

