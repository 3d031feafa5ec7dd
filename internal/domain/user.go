package domain

import "time"

type UserStatus string

const (
	StatusActive   UserStatus = "ACTIVE"
	StatusInactive UserStatus = "INACTIVE"
)

func IsValidStatus(s string) bool {
	return s == string(StatusActive) || s == string(StatusInactive)
}

// DefaultPassword is assigned when an admin creates a user without one.
const DefaultPassword = "password123"

type User struct {
	ID           string
	Name         string
	Email        string
	Role         string
	PasswordHash string
	AvatarURL    string
	Status       string
	// Version is bumped on every write and used for compare-and-swap updates.
	Version   int64
	UpdatedAt time.Time
}

func (u User) Active() bool {
	return u.Status != string(StatusInactive)
}

// UserPatch carries the fields of a partial update; nil means "keep".
type UserPatch struct {
	Name         *string
	Email        *string
	AvatarURL    *string
	Status       *string
	PasswordHash *string
}
