package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("user not found")

type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	// GetByOTPCode finds the user holding the given pending code with an
	// expiry at or after now. Consumed and expired codes do not match.
	GetByOTPCode(ctx context.Context, code int, now time.Time) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u User) error
	// UpsertByEmail creates or refreshes a user from an OAuth profile and
	// returns the stored record.
	UpsertByEmail(ctx context.Context, email, fullname, image string) (User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
