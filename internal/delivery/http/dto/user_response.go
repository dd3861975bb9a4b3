package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/onoja123/Modi-backend/internal/domain/user"
)

// UserResponse is the outward shape of a user record. Password hash and the
// admin flag never leave the service.
type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Fullname   string    `json:"fullname"`
	Email      string    `json:"email"`
	Status     string    `json:"status"`
	UserType   string    `json:"userType,omitempty"`
	About      []string  `json:"about"`
	Goals      []string  `json:"goals"`
	Preference []string  `json:"preference"`
	Image      string    `json:"image,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Fullname:   u.Fullname,
		Email:      u.Email,
		Status:     string(u.Status),
		UserType:   string(u.Type),
		About:      emptyIfNil(u.About),
		Goals:      emptyIfNil(u.Goals),
		Preference: emptyIfNil(u.Preference),
		Image:      u.Image,
		CreatedAt:  u.CreatedAt,
	}
}

func emptyIfNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
