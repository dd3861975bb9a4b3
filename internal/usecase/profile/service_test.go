package profile

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/onoja123/Modi-backend/internal/domain/user"
)

type mockUserRepo struct {
	byID map[uuid.UUID]user.User

	getCalls  int
	updateErr error
}

func newMockUserRepo(users ...user.User) *mockUserRepo {
	m := &mockUserRepo{byID: map[uuid.UUID]user.User{}}
	for _, u := range users {
		m.byID[u.ID] = u
	}
	return m
}

func (m *mockUserRepo) Create(_ context.Context, u user.User) error {
	m.byID[u.ID] = u
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	m.getCalls++
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrNotFound
}

func (m *mockUserRepo) GetByOTPCode(context.Context, int, time.Time) (user.User, error) {
	return user.User{}, user.ErrNotFound
}

func (m *mockUserRepo) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }

func (m *mockUserRepo) Update(_ context.Context, u user.User) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.byID[u.ID]; !ok {
		return user.ErrNotFound
	}
	m.byID[u.ID] = u
	return nil
}

func (m *mockUserRepo) UpsertByEmail(context.Context, string, string, string) (user.User, error) {
	return user.User{}, errors.New("not implemented")
}

func (m *mockUserRepo) Delete(context.Context, uuid.UUID) error { return nil }

type mockCache struct {
	data    map[string][]byte
	deleted []string
}

func newMockCache() *mockCache {
	return &mockCache{data: map[string][]byte{}}
}

func (c *mockCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, out)
}

func (c *mockCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *mockCache) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	c.deleted = append(c.deleted, key)
	return nil
}

func activeUser() user.User {
	return user.User{
		ID:           uuid.New(),
		Fullname:     "Jane Doe",
		Email:        "jane@example.com",
		PasswordHash: "hash",
		Status:       user.StatusActive,
	}
}

func TestGetProfile_CachesResult(t *testing.T) {
	u := activeUser()
	repo := newMockUserRepo(u)
	c := newMockCache()
	svc := NewService(repo, c)
	ctx := context.Background()

	got, err := svc.GetProfile(ctx, u.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.PasswordHash != "" {
		t.Fatalf("password hash leaked")
	}

	// Second read is served from the cache.
	if _, err := svc.GetProfile(ctx, u.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.getCalls != 1 {
		t.Fatalf("expected one repository read, got %d", repo.getCalls)
	}
}

func TestGetProfile_NotFound(t *testing.T) {
	svc := NewService(newMockUserRepo(), newMockCache())

	_, err := svc.GetProfile(context.Background(), uuid.New())
	if !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected user.ErrNotFound, got %v", err)
	}
}

func TestGetProfile_NilCache(t *testing.T) {
	u := activeUser()
	svc := NewService(newMockUserRepo(u), nil)

	if _, err := svc.GetProfile(context.Background(), u.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestUpdateFields(t *testing.T) {
	u := activeUser()
	repo := newMockUserRepo(u)
	c := newMockCache()
	svc := NewService(repo, c)
	ctx := context.Background()

	got, err := svc.UpdateAbout(ctx, u.ID, []string{"I build backends"})
	if err != nil {
		t.Fatalf("UpdateAbout: %v", err)
	}
	if len(got.About) != 1 {
		t.Fatalf("about not applied: %+v", got)
	}

	if _, err := svc.UpdateGoals(ctx, u.ID, []string{"learn Go"}); err != nil {
		t.Fatalf("UpdateGoals: %v", err)
	}
	if _, err := svc.UpdatePreference(ctx, u.ID, []string{"remote"}); err != nil {
		t.Fatalf("UpdatePreference: %v", err)
	}
	got, err = svc.UpdateType(ctx, u.ID, user.TypeBeginner)
	if err != nil {
		t.Fatalf("UpdateType: %v", err)
	}
	if got.Type != user.TypeBeginner {
		t.Fatalf("type not applied: %+v", got)
	}

	if len(c.deleted) != 4 {
		t.Fatalf("expected 4 cache invalidations, got %d", len(c.deleted))
	}
}

func TestUpdateFields_InvalidInput(t *testing.T) {
	u := activeUser()
	svc := NewService(newMockUserRepo(u), newMockCache())
	ctx := context.Background()

	if _, err := svc.UpdateAbout(ctx, u.ID, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty about: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.UpdateGoals(ctx, u.ID, []string{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty goals: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.UpdatePreference(ctx, u.ID, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty preference: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.UpdateType(ctx, u.ID, user.Type("Wizard")); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad type: expected ErrInvalidInput, got %v", err)
	}
}

func TestUpdateFields_UserNotFound(t *testing.T) {
	svc := NewService(newMockUserRepo(), newMockCache())

	_, err := svc.UpdateAbout(context.Background(), uuid.New(), []string{"x"})
	if !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected user.ErrNotFound, got %v", err)
	}
}
