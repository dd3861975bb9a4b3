package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/onoja123/Modi-backend/internal/domain/waitlist"
)

type WaitlistEntryResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewWaitlistEntryResponse(e waitlist.Entry) WaitlistEntryResponse {
	return WaitlistEntryResponse{ID: e.ID, Email: e.Email, CreatedAt: e.CreatedAt}
}
