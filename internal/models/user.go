package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user record in the database
type UserDB struct {
	ID           uuid.UUID `json:"id" db:"id"`                 // Primary key
	Username     string    `json:"username" db:"username"`     // Unique username (case-insensitive)
	Email        string    `json:"email" db:"email"`           // Unique email (case-insensitive)
	PasswordHash string    `json:"-" db:"password_hash"`       // Bcrypt hash, never serialized
	IsAdmin      bool      `json:"is_admin" db:"is_admin"`     // Elevated access flag
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt    time.Time `json:"-" db:"updated_at"`          // Last update timestamp
}

// UserPage is a single page of the user listing.
type UserPage struct {
	Users      []UserDB `json:"users"`
	Total      int64    `json:"total"`
	Page       int      `json:"page"`
	Limit      int      `json:"limit"`
	TotalPages int      `json:"total_pages"`
}
