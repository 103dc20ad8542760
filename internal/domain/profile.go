package domain

import (
	"time"
)

// Profile represents an authenticated manager identity.
type Profile struct {
	ID        string
	Email     string
	FullName  *string
	AvatarURL *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
