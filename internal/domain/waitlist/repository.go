package waitlist

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("waitlist entry not found")

type Repository interface {
	Create(ctx context.Context, e Entry) error
	GetByEmail(ctx context.Context, email string) (Entry, error)
}
