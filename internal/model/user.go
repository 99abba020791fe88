package model

import "time"

// UserID uniquely identifies a user
type UserID string

// User is an account that can log in and own custom games
type User struct {
	ID           UserID
	Username     string // login username (unique, immutable)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
}
