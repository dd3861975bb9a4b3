package usecase

import (
	"context"
	"errors"
	"log"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/onoja123/Modi-backend/internal/domain/waitlist"
	infmail "github.com/onoja123/Modi-backend/internal/infrastructure/mail"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrAlreadyOnWaitlist = errors.New("already on waitlist")
	ErrInternal          = errors.New("internal error")
)

type WaitlistUsecase interface {
	AddUser(ctx context.Context, email string) (waitlist.Entry, error)
}

type Waitlist struct {
	entries waitlist.Repository
	mailer  infmail.Mailer
	logger  *log.Logger
}

func NewWaitlistUsecase(entries waitlist.Repository, mailer infmail.Mailer, logger *log.Logger) *Waitlist {
	if logger == nil {
		logger = log.Default()
	}
	return &Waitlist{entries: entries, mailer: mailer, logger: logger}
}

// AddUser records an email on the waitlist. The confirmation email is
// best-effort: a mail failure never loses the signup.
func (w *Waitlist) AddUser(ctx context.Context, email string) (waitlist.Entry, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return waitlist.Entry{}, ErrInvalidInput
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return waitlist.Entry{}, ErrInvalidInput
	}

	_, err := w.entries.GetByEmail(ctx, email)
	if err == nil {
		return waitlist.Entry{}, ErrAlreadyOnWaitlist
	}
	if !errors.Is(err, waitlist.ErrNotFound) {
		return waitlist.Entry{}, ErrInternal
	}

	e := waitlist.Entry{
		ID:        uuid.New(),
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}

	if err := w.entries.Create(ctx, e); err != nil {
		if _, exErr := w.entries.GetByEmail(ctx, email); exErr == nil {
			return waitlist.Entry{}, ErrAlreadyOnWaitlist
		}
		return waitlist.Entry{}, ErrInternal
	}

	sendErr := w.mailer.Send(ctx,
		infmail.Message{To: e.Email, Subject: "Welcome to the waitlist 🚀"},
		"waitlist",
		map[string]string{"email": e.Email},
	)
	if sendErr != nil {
		w.logger.Printf("waitlist: confirmation mail to %s failed: %v", e.Email, sendErr)
	}

	return e, nil
}
