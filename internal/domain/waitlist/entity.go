package waitlist

import (
	"time"

	"github.com/google/uuid"
)

type Entry struct {
	ID        uuid.UUID
	Email     string
	CreatedAt time.Time
}
