package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/onoja123/Modi-backend/internal/domain/waitlist"
)

type mockWaitlistRepo struct {
	byEmail   map[string]waitlist.Entry
	createErr error
}

func newMockWaitlistRepo(entries ...waitlist.Entry) *mockWaitlistRepo {
	m := &mockWaitlistRepo{byEmail: map[string]waitlist.Entry{}}
	for _, e := range entries {
		m.byEmail[e.Email] = e
	}
	return m
}

func (m *mockWaitlistRepo) Create(_ context.Context, e waitlist.Entry) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.byEmail[e.Email] = e
	return nil
}

func (m *mockWaitlistRepo) GetByEmail(_ context.Context, email string) (waitlist.Entry, error) {
	e, ok := m.byEmail[email]
	if !ok {
		return waitlist.Entry{}, waitlist.ErrNotFound
	}
	return e, nil
}

func TestWaitlist_AddUser_Success(t *testing.T) {
	repo := newMockWaitlistRepo()
	mailer := &mockMailer{}
	uc := NewWaitlistUsecase(repo, mailer, nil)

	e, err := uc.AddUser(context.Background(), " Jane@Example.COM ")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if e.Email != "jane@example.com" {
		t.Fatalf("email not normalized: %q", e.Email)
	}
	if _, ok := repo.byEmail["jane@example.com"]; !ok {
		t.Fatalf("entry not stored")
	}
	if mailer.sent != 1 {
		t.Fatalf("expected one confirmation mail, got %d", mailer.sent)
	}
}

func TestWaitlist_AddUser_InvalidEmail(t *testing.T) {
	uc := NewWaitlistUsecase(newMockWaitlistRepo(), &mockMailer{}, nil)

	for _, email := range []string{"", "   ", "not-an-email"} {
		if _, err := uc.AddUser(context.Background(), email); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("email %q: expected ErrInvalidInput, got %v", email, err)
		}
	}
}

func TestWaitlist_AddUser_Duplicate(t *testing.T) {
	repo := newMockWaitlistRepo(waitlist.Entry{Email: "jane@example.com"})
	uc := NewWaitlistUsecase(repo, &mockMailer{}, nil)

	_, err := uc.AddUser(context.Background(), "jane@example.com")
	if !errors.Is(err, ErrAlreadyOnWaitlist) {
		t.Fatalf("expected ErrAlreadyOnWaitlist, got %v", err)
	}
}

func TestWaitlist_AddUser_MailFailureStillSucceeds(t *testing.T) {
	repo := newMockWaitlistRepo()
	uc := NewWaitlistUsecase(repo, &mockMailer{err: errors.New("smtp down")}, nil)

	e, err := uc.AddUser(context.Background(), "jane@example.com")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if e.Email != "jane@example.com" {
		t.Fatalf("unexpected entry: %+v", e)
	}
}
