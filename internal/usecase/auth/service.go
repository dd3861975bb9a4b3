package auth

import (
	"context"
	"errors"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/onoja123/Modi-backend/internal/domain/user"
	infmail "github.com/onoja123/Modi-backend/internal/infrastructure/mail"
	"github.com/onoja123/Modi-backend/internal/pkg/otp"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrEmailTaken       = errors.New("email already taken")
	ErrUserNotFound     = errors.New("user not found")
	ErrOTPInvalid       = errors.New("otp invalid or expired")
	ErrAlreadyVerified  = errors.New("account already verified")
	ErrNotVerified      = errors.New("account not verified")
	ErrWrongPassword    = errors.New("incorrect password")
	ErrPasswordMismatch = errors.New("password confirmation mismatch")
	ErrMailSend         = errors.New("could not send email")
	ErrInternal         = errors.New("internal error")
)

const (
	signupOTPTTL = 10 * time.Minute
	resendOTPTTL = 5 * time.Minute
)

type SignupInput struct {
	Fullname string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type ResetPasswordInput struct {
	OTPCode         string
	Password        string
	PasswordConfirm string
}

type UpdatePasswordInput struct {
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// Service implements the credential lifecycle: signup with OTP email
// verification, login, OTP resend, and the password reset/update flows.
type Service struct {
	users  user.Repository
	mailer infmail.Mailer
	otp    *otp.Generator

	now func() time.Time
}

func NewService(users user.Repository, mailer infmail.Mailer, gen *otp.Generator) *Service {
	return &Service{users: users, mailer: mailer, otp: gen, now: time.Now}
}

// Signup creates an Inactive user with a pending verification code and sends
// the welcome email. If the email cannot be dispatched the freshly created
// record is deleted again, so either the pending user exists or nothing does.
func (s *Service) Signup(ctx context.Context, in SignupInput) (user.User, error) {
	email := normalizeEmail(in.Email)
	if strings.TrimSpace(in.Fullname) == "" || !isValidEmail(email) || !isValidPassword(in.Password) {
		return user.User{}, ErrInvalidInput
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.User{}, ErrInternal
	}
	if exists {
		return user.User{}, ErrEmailTaken
	}

	code, err := s.otp.Generate(signupOTPTTL)
	if err != nil {
		return user.User{}, ErrInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, ErrInternal
	}

	u := user.User{
		ID:           uuid.New(),
		Fullname:     strings.TrimSpace(in.Fullname),
		Email:        email,
		PasswordHash: string(hash),
		Status:       user.StatusInactive,
		OTP: user.OTP{
			Code:      &code.Value,
			ExpiresAt: &code.ExpiresAt,
		},
		CreatedAt: s.now().UTC(),
	}

	if err := s.users.Create(ctx, u); err != nil {
		exists, exErr := s.users.ExistsByEmail(ctx, email)
		if exErr == nil && exists {
			return user.User{}, ErrEmailTaken
		}
		return user.User{}, ErrInternal
	}

	// The welcome template carries no OTP code; users get one via the
	// resend endpoint. Known product gap, kept as-is pending clarification.
	err = s.mailer.Send(ctx,
		infmail.Message{To: u.Email, Subject: "Welcome 🚀"},
		"welcome",
		map[string]string{"fullname": u.Fullname},
	)
	if err != nil {
		_ = s.users.Delete(ctx, u.ID)
		return user.User{}, ErrInternal
	}

	return sanitizeUser(u), nil
}

// Verify activates the user holding the given non-expired code and consumes
// the code.
func (s *Service) Verify(ctx context.Context, otpCode string) error {
	code, ok := parseOTPCode(otpCode)
	if !ok {
		return ErrInvalidInput
	}

	u, err := s.users.GetByOTPCode(ctx, code, s.now())
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrOTPInvalid
		}
		return ErrInternal
	}

	if u.Status == user.StatusActive {
		return ErrAlreadyVerified
	}

	u.Status = user.StatusActive
	u.OTP.Code = nil

	if err := s.users.Update(ctx, u); err != nil {
		return ErrInternal
	}
	return nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, ErrInvalidInput
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrUserNotFound
		}
		return user.User{}, ErrInternal
	}

	if u.Status == user.StatusInactive {
		return user.User{}, ErrNotVerified
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, ErrWrongPassword
	}

	return sanitizeUser(u), nil
}

// ResendVerification issues a fresh short-lived code to an unverified user.
// If the email cannot be sent the pending code is cleared so a stale code
// never outlives a failed dispatch.
func (s *Service) ResendVerification(ctx context.Context, email string) error {
	return s.issueOTP(ctx, email, issueOTPParams{
		rejectActive: true,
		subject:      "Verification Link 🚀!",
		template:     "resend-otp",
	})
}

// ForgotPassword issues a reset code with the same dispatch-failure policy
// as ResendVerification.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	return s.issueOTP(ctx, email, issueOTPParams{
		rejectActive: false,
		subject:      "Forgot password 🚀!",
		template:     "forgot-password",
	})
}

type issueOTPParams struct {
	rejectActive bool
	subject      string
	template     string
}

func (s *Service) issueOTP(ctx context.Context, email string, p issueOTPParams) error {
	email = normalizeEmail(email)
	if email == "" {
		return ErrInvalidInput
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrUserNotFound
		}
		return ErrInternal
	}

	if p.rejectActive && u.Status == user.StatusActive {
		return ErrAlreadyVerified
	}

	code, err := s.otp.Generate(resendOTPTTL)
	if err != nil {
		return ErrInternal
	}

	u.OTP = user.OTP{Code: &code.Value, ExpiresAt: &code.ExpiresAt}
	if err := s.users.Update(ctx, u); err != nil {
		return ErrInternal
	}

	err = s.mailer.Send(ctx,
		infmail.Message{To: u.Email, Subject: p.subject},
		p.template,
		map[string]string{"fullname": u.Fullname, "otp": code.String()},
	)
	if err != nil {
		u.OTP.Code = nil
		_ = s.users.Update(ctx, u)
		return ErrMailSend
	}

	return nil
}

// ResetPassword consumes a non-expired code and replaces the password. Any
// session token issued before this point becomes invalid.
func (s *Service) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	if in.OTPCode == "" || in.Password == "" || in.PasswordConfirm == "" {
		return ErrInvalidInput
	}
	code, ok := parseOTPCode(in.OTPCode)
	if !ok {
		return ErrInvalidInput
	}

	u, err := s.users.GetByOTPCode(ctx, code, s.now())
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrOTPInvalid
		}
		return ErrInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return ErrInternal
	}

	changedAt := s.now().UTC()
	u.PasswordHash = string(hash)
	u.PasswordChangedAt = &changedAt
	u.OTP.Code = nil

	if err := s.users.Update(ctx, u); err != nil {
		return ErrInternal
	}
	return nil
}

// UpdatePassword rotates the password of an authenticated user after
// re-verifying the current one.
func (s *Service) UpdatePassword(ctx context.Context, userID uuid.UUID, in UpdatePasswordInput) error {
	if in.CurrentPassword == "" || in.NewPassword == "" || in.ConfirmPassword == "" {
		return ErrInvalidInput
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrUserNotFound
		}
		return ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return ErrWrongPassword
	}

	if in.NewPassword != in.ConfirmPassword {
		return ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrInternal
	}

	changedAt := s.now().UTC()
	u.PasswordHash = string(hash)
	u.PasswordChangedAt = &changedAt

	if err := s.users.Update(ctx, u); err != nil {
		return ErrInternal
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidEmail(email string) bool {
	if email == "" {
		return false
	}
	_, err := mail.ParseAddress(email)
	return err == nil
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= 8
}

func parseOTPCode(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	code, err := strconv.Atoi(raw)
	if err != nil || code < 0 {
		return 0, false
	}
	return code, true
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
