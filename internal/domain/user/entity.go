package user

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
	StatusDeleted  Status = "Deleted"
)

type Type string

const (
	TypeBeginner     Type = "Beginner"
	TypeIntermediate Type = "Intermediate"
	TypeAdvanced     Type = "Advanced"
)

func ValidType(t Type) bool {
	switch t {
	case TypeBeginner, TypeIntermediate, TypeAdvanced:
		return true
	}
	return false
}

// OTP is the pending one-time passcode on a user record. Code is nil unless
// a code has been requested and not yet consumed or cleared.
type OTP struct {
	Code      *int
	ExpiresAt *time.Time
}

type User struct {
	ID                uuid.UUID
	Fullname          string
	Email             string
	PasswordHash      string
	Status            Status
	Type              Type
	About             []string
	Goals             []string
	Preference        []string
	Image             string
	OTP               OTP
	PasswordChangedAt *time.Time
	IsAdmin           bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ChangedPasswordAfter reports whether the password was changed after the
// given token issue time. Tokens issued before the last change are stale.
func (u User) ChangedPasswordAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return issuedAt.Before(*u.PasswordChangedAt)
}
