package domain

import (
	"errors"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserExists = errors.New("username or email already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrTooManyAttempts = errors.New("too many failed login attempts")

// User models an authenticated principal in the system.
// PasswordHash is never serialized to any external interface.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
