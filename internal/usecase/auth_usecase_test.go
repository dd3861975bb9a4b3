package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/onoja123/Modi-backend/internal/domain/user"
	infmail "github.com/onoja123/Modi-backend/internal/infrastructure/mail"
	"github.com/onoja123/Modi-backend/internal/pkg/googleauth"
	"github.com/onoja123/Modi-backend/internal/pkg/jwt"
	"github.com/onoja123/Modi-backend/internal/pkg/otp"
	ucauth "github.com/onoja123/Modi-backend/internal/usecase/auth"
)

type mockUserRepo struct {
	byID map[uuid.UUID]user.User

	upserted []string
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
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *mockUserRepo) GetByOTPCode(_ context.Context, code int, now time.Time) (user.User, error) {
	for _, u := range m.byID {
		if u.OTP.Code != nil && *u.OTP.Code == code && u.OTP.ExpiresAt != nil && !u.OTP.ExpiresAt.Before(now) {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	if errors.Is(err, user.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (m *mockUserRepo) Update(_ context.Context, u user.User) error {
	if _, ok := m.byID[u.ID]; !ok {
		return user.ErrNotFound
	}
	m.byID[u.ID] = u
	return nil
}

func (m *mockUserRepo) UpsertByEmail(ctx context.Context, email, fullname, image string) (user.User, error) {
	m.upserted = append(m.upserted, email)
	if u, err := m.GetByEmail(ctx, email); err == nil {
		u.Fullname = fullname
		u.Image = image
		m.byID[u.ID] = u
		return u, nil
	}
	u := user.User{
		ID:           uuid.New(),
		Email:        email,
		Fullname:     fullname,
		Image:        image,
		Status:       user.StatusActive,
		PasswordHash: "stored-hash",
	}
	m.byID[u.ID] = u
	return u, nil
}

func (m *mockUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.byID, id)
	return nil
}

type mockMailer struct {
	err  error
	sent int
}

func (m *mockMailer) Send(context.Context, infmail.Message, string, map[string]string) error {
	if m.err != nil {
		return m.err
	}
	m.sent++
	return nil
}

type mockJWT struct {
	token string
	err   error
}

func (m mockJWT) Generate(uuid.UUID) (string, error) { return m.token, m.err }
func (m mockJWT) Validate(string) (jwt.Claims, error) {
	return jwt.Claims{}, jwt.ErrTokenInvalid
}

type mockGoogle struct {
	authURL     string
	exchangeErr error
	profile     googleauth.Profile
	profileErr  error
}

func (m mockGoogle) AuthURL() string { return m.authURL }
func (m mockGoogle) Exchange(context.Context, string) (*oauth2.Token, error) {
	if m.exchangeErr != nil {
		return nil, m.exchangeErr
	}
	return &oauth2.Token{AccessToken: "provider-token"}, nil
}
func (m mockGoogle) FetchProfile(context.Context, *oauth2.Token) (googleauth.Profile, error) {
	return m.profile, m.profileErr
}

func newTestAuth(repo *mockUserRepo, mailer *mockMailer, jwtSvc jwt.Service, google googleauth.Client) *Auth {
	return NewAuthUsecase(repo, mailer, otp.NewGenerator(), jwtSvc, google)
}

func TestAuth_Signup_IssuesToken(t *testing.T) {
	uc := newTestAuth(newMockUserRepo(), &mockMailer{}, mockJWT{token: "session-token"}, mockGoogle{})

	usr, token, err := uc.Signup(context.Background(), ucauth.SignupInput{
		Fullname: "Jane Doe",
		Email:    "jane@example.com",
		Password: "secret-pass",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if token != "session-token" {
		t.Fatalf("expected session token, got %q", token)
	}
	if usr.Email != "jane@example.com" {
		t.Fatalf("unexpected user: %+v", usr)
	}
}

func TestAuth_Signup_TokenFailureDeletesUser(t *testing.T) {
	repo := newMockUserRepo()
	uc := newTestAuth(repo, &mockMailer{}, mockJWT{err: errors.New("no key")}, mockGoogle{})

	_, _, err := uc.Signup(context.Background(), ucauth.SignupInput{
		Fullname: "Jane Doe",
		Email:    "jane@example.com",
		Password: "secret-pass",
	})
	if !errors.Is(err, ucauth.ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("expected the created user to be deleted, %d left", len(repo.byID))
	}
}

func TestAuth_GoogleAuthURL(t *testing.T) {
	uc := newTestAuth(newMockUserRepo(), &mockMailer{}, mockJWT{}, mockGoogle{authURL: "https://accounts.google.com/o/oauth2/auth?x=1"})
	if got := uc.GoogleAuthURL(); got != "https://accounts.google.com/o/oauth2/auth?x=1" {
		t.Fatalf("unexpected auth URL: %q", got)
	}
}

func TestAuth_GoogleCallback(t *testing.T) {
	repo := newMockUserRepo()
	uc := newTestAuth(repo, &mockMailer{}, mockJWT{token: "session-token"}, mockGoogle{
		profile: googleauth.Profile{Email: " Jane@Example.COM ", Name: "Jane Doe", Picture: "https://img.example/p.png"},
	})

	usr, token, err := uc.GoogleCallback(context.Background(), "auth-code")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if token != "session-token" {
		t.Fatalf("expected session token, got %q", token)
	}
	if usr.PasswordHash != "" {
		t.Fatalf("password hash leaked")
	}
	if len(repo.upserted) != 1 || repo.upserted[0] != "jane@example.com" {
		t.Fatalf("expected normalized upsert email, got %v", repo.upserted)
	}
	if usr.Status != user.StatusActive {
		t.Fatalf("expected Active user, got %s", usr.Status)
	}
}

func TestAuth_GoogleCallback_Errors(t *testing.T) {
	uc := newTestAuth(newMockUserRepo(), &mockMailer{}, mockJWT{token: "session-token"}, mockGoogle{})
	if _, _, err := uc.GoogleCallback(context.Background(), ""); !errors.Is(err, ucauth.ErrInvalidInput) {
		t.Fatalf("empty code: expected ErrInvalidInput, got %v", err)
	}

	uc = newTestAuth(newMockUserRepo(), &mockMailer{}, mockJWT{token: "session-token"}, mockGoogle{exchangeErr: errors.New("denied")})
	if _, _, err := uc.GoogleCallback(context.Background(), "auth-code"); !errors.Is(err, ucauth.ErrInternal) {
		t.Fatalf("exchange failure: expected ErrInternal, got %v", err)
	}

	uc = newTestAuth(newMockUserRepo(), &mockMailer{}, mockJWT{token: "session-token"}, mockGoogle{profile: googleauth.Profile{Email: ""}})
	if _, _, err := uc.GoogleCallback(context.Background(), "auth-code"); !errors.Is(err, ucauth.ErrInternal) {
		t.Fatalf("empty profile email: expected ErrInternal, got %v", err)
	}
}
