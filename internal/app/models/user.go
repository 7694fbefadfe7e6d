package models

import "time"

// User is a local account created on first successful OAuth callback and
// keyed by the provider's subject identifier. There is no local credential
// storage; Google owns authentication.
type User struct {
	ID        int64     `json:"id" db:"id"`
	GoogleID  string    `json:"-" db:"google_id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	Photo     string    `json:"photo" db:"photo"`
	IsAdmin   bool      `json:"isAdmin" db:"is_admin"`
	LastLogin time.Time `json:"lastLogin" db:"last_login"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
