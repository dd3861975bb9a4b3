package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/onoja123/Modi-backend/internal/domain/user"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

const cacheTTL = 10 * time.Minute

// Cache is the read cache in front of profile lookups. A nil-safe no-op
// implementation is acceptable.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type Service struct {
	users user.Repository
	cache Cache
}

func NewService(users user.Repository, cache Cache) *Service {
	return &Service{users: users, cache: cache}
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (user.User, error) {
	key := cacheKey(userID)

	if s.cache != nil {
		var cached user.User
		if ok, err := s.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, ErrInternal
	}

	u = sanitizeUser(u)
	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, u, cacheTTL)
	}
	return u, nil
}

func (s *Service) UpdateAbout(ctx context.Context, userID uuid.UUID, about []string) (user.User, error) {
	if len(about) == 0 {
		return user.User{}, ErrInvalidInput
	}
	return s.update(ctx, userID, func(u *user.User) { u.About = about })
}

func (s *Service) UpdateGoals(ctx context.Context, userID uuid.UUID, goals []string) (user.User, error) {
	if len(goals) == 0 {
		return user.User{}, ErrInvalidInput
	}
	return s.update(ctx, userID, func(u *user.User) { u.Goals = goals })
}

func (s *Service) UpdatePreference(ctx context.Context, userID uuid.UUID, preference []string) (user.User, error) {
	if len(preference) == 0 {
		return user.User{}, ErrInvalidInput
	}
	return s.update(ctx, userID, func(u *user.User) { u.Preference = preference })
}

func (s *Service) UpdateType(ctx context.Context, userID uuid.UUID, t user.Type) (user.User, error) {
	if !user.ValidType(t) {
		return user.User{}, ErrInvalidInput
	}
	return s.update(ctx, userID, func(u *user.User) { u.Type = t })
}

// update applies a field mutation, persists it and drops the cached profile.
func (s *Service) update(ctx context.Context, userID uuid.UUID, mutate func(*user.User)) (user.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, ErrInternal
	}

	mutate(&u)

	if err := s.users.Update(ctx, u); err != nil {
		return user.User{}, ErrInternal
	}

	if s.cache != nil {
		_ = s.cache.Delete(ctx, cacheKey(userID))
	}
	return sanitizeUser(u), nil
}

func cacheKey(userID uuid.UUID) string {
	return "profile:" + userID.String()
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
