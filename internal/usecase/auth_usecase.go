package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/onoja123/Modi-backend/internal/domain/user"
	infmail "github.com/onoja123/Modi-backend/internal/infrastructure/mail"
	"github.com/onoja123/Modi-backend/internal/pkg/googleauth"
	"github.com/onoja123/Modi-backend/internal/pkg/jwt"
	"github.com/onoja123/Modi-backend/internal/pkg/otp"
	ucauth "github.com/onoja123/Modi-backend/internal/usecase/auth"
)

type AuthUsecase interface {
	Signup(ctx context.Context, in ucauth.SignupInput) (user.User, string, error)
	Verify(ctx context.Context, otpCode string) error
	Login(ctx context.Context, in ucauth.LoginInput) (user.User, string, error)
	ResendVerification(ctx context.Context, email string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, in ucauth.ResetPasswordInput) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, in ucauth.UpdatePasswordInput) error
	GoogleAuthURL() string
	GoogleCallback(ctx context.Context, code string) (user.User, string, error)
}

// Auth layers session-token issuance and the Google OAuth flow on top of the
// credential service.
type Auth struct {
	authSvc *ucauth.Service
	users   user.Repository
	jwt     jwt.Service
	google  googleauth.Client
}

func NewAuthUsecase(users user.Repository, mailer infmail.Mailer, gen *otp.Generator, jwtSvc jwt.Service, google googleauth.Client) *Auth {
	return &Auth{
		authSvc: ucauth.NewService(users, mailer, gen),
		users:   users,
		jwt:     jwtSvc,
		google:  google,
	}
}

func (u *Auth) Signup(ctx context.Context, in ucauth.SignupInput) (user.User, string, error) {
	usr, err := u.authSvc.Signup(ctx, in)
	if err != nil {
		return user.User{}, "", err
	}

	token, err := u.jwt.Generate(usr.ID)
	if err != nil {
		// Signup is atomic from the caller's view: no token, no user.
		_ = u.users.Delete(ctx, usr.ID)
		return user.User{}, "", ucauth.ErrInternal
	}
	return usr, token, nil
}

func (u *Auth) Verify(ctx context.Context, otpCode string) error {
	return u.authSvc.Verify(ctx, otpCode)
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (user.User, string, error) {
	usr, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return user.User{}, "", err
	}

	token, err := u.jwt.Generate(usr.ID)
	if err != nil {
		return user.User{}, "", ucauth.ErrInternal
	}
	return usr, token, nil
}

func (u *Auth) ResendVerification(ctx context.Context, email string) error {
	return u.authSvc.ResendVerification(ctx, email)
}

func (u *Auth) ForgotPassword(ctx context.Context, email string) error {
	return u.authSvc.ForgotPassword(ctx, email)
}

func (u *Auth) ResetPassword(ctx context.Context, in ucauth.ResetPasswordInput) error {
	return u.authSvc.ResetPassword(ctx, in)
}

func (u *Auth) UpdatePassword(ctx context.Context, userID uuid.UUID, in ucauth.UpdatePasswordInput) error {
	return u.authSvc.UpdatePassword(ctx, userID, in)
}

func (u *Auth) GoogleAuthURL() string {
	return u.google.AuthURL()
}

// GoogleCallback exchanges the authorization code, fetches the profile and
// upserts the user by email, so returning visitors keep their account.
func (u *Auth) GoogleCallback(ctx context.Context, code string) (user.User, string, error) {
	if code == "" {
		return user.User{}, "", ucauth.ErrInvalidInput
	}

	providerToken, err := u.google.Exchange(ctx, code)
	if err != nil {
		return user.User{}, "", ucauth.ErrInternal
	}

	profile, err := u.google.FetchProfile(ctx, providerToken)
	if err != nil || profile.Email == "" {
		return user.User{}, "", ucauth.ErrInternal
	}

	email := strings.ToLower(strings.TrimSpace(profile.Email))
	usr, err := u.users.UpsertByEmail(ctx, email, profile.Name, profile.Picture)
	if err != nil {
		return user.User{}, "", ucauth.ErrInternal
	}

	token, err := u.jwt.Generate(usr.ID)
	if err != nil {
		return user.User{}, "", ucauth.ErrInternal
	}

	usr.PasswordHash = ""
	return usr, token, nil
}
