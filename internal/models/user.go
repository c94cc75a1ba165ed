package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user record in the database
type UserDB struct {
	UserID       uuid.UUID `json:"id" db:"user_id"`            // Primary key
	Username     string    `json:"username" db:"username"`     // Unique username
	Email        string    `json:"email" db:"email"`           // Unique email
	FullName     string    `json:"fullName" db:"full_name"`    // Display name
	PasswordHash string    `json:"-" db:"password_hash"`       // Bcrypt hash, never serialized
	RefreshToken *string   `json:"-" db:"refresh_token"`       // Current refresh token, nil when logged out
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"` // Last update timestamp
}

// UserResponse is the public profile shape returned by the API.
// Password hash and refresh token are never part of it.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToResponse converts a DB record into its public profile representation.
func (u *UserDB) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.UserID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt,
	}
}
