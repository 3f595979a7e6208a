package domain

import "time"

type User struct {
	ID           string
	FirstName    string
	LastName     string
	BirthDate    *time.Time
	Email        string
	PasswordHash string
	Image        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ResetToken is a single-use, time-bounded secret authorizing one
// password change for the bound user.
type ResetToken struct {
	ID        string
	Token     string
	UserID    string
	ExpiresAt time.Time
}
