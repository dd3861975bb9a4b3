package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/onoja123/Modi-backend/internal/delivery/http/dto"
	"github.com/onoja123/Modi-backend/internal/delivery/http/middleware"
	"github.com/onoja123/Modi-backend/internal/pkg/response"
	"github.com/onoja123/Modi-backend/internal/usecase"
	ucauth "github.com/onoja123/Modi-backend/internal/usecase/auth"
)

const sessionCookieName = "jwt"

// AuthHandlerConfig controls the session cookie the handler sets alongside
// the token in the response body.
type AuthHandlerConfig struct {
	CookieTTL    time.Duration
	SecureCookie bool
}

type AuthHandler struct {
	uc  usecase.AuthUsecase
	cfg AuthHandlerConfig
}

type signupRequest struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyRequest struct {
	OTPCode string `json:"otpCode"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	OTPCode         string `json:"otpCode"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func NewAuthHandler(uc usecase.AuthUsecase, cfg AuthHandlerConfig) *AuthHandler {
	return &AuthHandler{uc: uc, cfg: cfg}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/signup", h.Signup)
	r.Post("/verify", h.Verify)
	r.Post("/login", h.Login)
	r.Post("/resendverification", h.ResendVerification)
	r.Post("/forgotpassword", h.ForgotPassword)
	r.Post("/resetpassword", h.ResetPassword)
	r.Post("/logout", h.Logout)
	r.Get("/google/login", h.GoogleLogin)
	r.Get("/google/callback", h.GoogleCallback)
}

// RegisterProtectedRoutes registers the routes that require a valid session.
func (h *AuthHandler) RegisterProtectedRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/updatepassword", h.UpdatePassword)
}

func (h *AuthHandler) Signup(c fiber.Ctx) error {
	var req signupRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}

	usr, token, err := h.uc.Signup(c.Context(), ucauth.SignupInput{
		Fullname: req.Fullname,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, ucauth.ErrInvalidInput):
			return middleware.NewAppError(fiber.StatusBadRequest, "Please provide fullname, email and password", err)
		case errors.Is(err, ucauth.ErrEmailTaken):
			return middleware.NewAppError(fiber.StatusBadRequest, "The email address is already taken", err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, "Couldn't create the user. Please try again.", err)
		}
	}

	h.setSessionCookie(c, token)
	return response.SuccessWithToken(c, fiber.StatusCreated, token, fiber.Map{
		"user": dto.NewUserResponse(usr),
	})
}

func (h *AuthHandler) Verify(c fiber.Ctx) error {
	var req verifyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}

	if err := h.uc.Verify(c.Context(), req.OTPCode); err != nil {
		switch {
		case errors.Is(err, ucauth.ErrInvalidInput):
			return middleware.NewAppError(fiber.StatusBadRequest, "Please provide an OTP code", err)
		case errors.Is(err, ucauth.ErrOTPInvalid):
			return middleware.NewAppError(fiber.StatusBadRequest, "This OTP code has expired or is invalid, please check and try again.", err)
		case errors.Is(err, ucauth.ErrAlreadyVerified):
			return middleware.NewAppError(fiber.StatusBadRequest, "Your account has already been verified.", err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
		}
	}

	return response.Success(c, fiber.StatusOK, "OTP verified successfully 🚀!", nil)
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}

	usr, token, err := h.uc.Login(c.Context(), ucauth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, ucauth.ErrInvalidInput):
			return middleware.NewAppError(fiber.StatusBadRequest, "Please provide email and password", err)
		case errors.Is(err, ucauth.ErrUserNotFound):
			return middleware.NewAppError(fiber.StatusNotFound, "User does not exist", err)
		case errors.Is(err, ucauth.ErrNotVerified):
			return middleware.NewAppError(fiber.StatusBadRequest, "Please verify your email and try again.", err)
		case errors.Is(err, ucauth.ErrWrongPassword):
			return middleware.NewAppError(fiber.StatusUnauthorized, "Incorrect email or password.", err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
		}
	}

	h.setSessionCookie(c, token)
	return response.SuccessWithToken(c, fiber.StatusOK, token, fiber.Map{
		"user": dto.NewUserResponse(usr),
	})
}

func (h *AuthHandler) ResendVerification(c fiber.Ctx) error {
	var req emailRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}

	if err := h.uc.ResendVerification(c.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, ucauth.ErrInvalidInput):
			return middleware.NewAppError(fiber.StatusBadRequest, "Please provide an email address", err)
		case errors.Is(err, ucauth.ErrUserNotFound):
			return middleware.NewAppError(fiber.StatusNotFound, "User does not exist", err)
		case errors.Is(err, ucauth.ErrAlreadyVerified):
			return middleware.NewAppError(fiber.StatusBadRequest, "Account has already been verified", err)
		case errors.Is(err, ucauth.ErrMailSend):
			return middleware.NewAppError(fiber.StatusInternalServerError, "Couldn't send the verification email", err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
		}
	}

	return response.Success(c, fiber.StatusOK, "Verification code sent successfully 🚀!", nil)
}

func (h *AuthHandler) ForgotPassword(c fiber.Ctx) error {
	var req emailRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}

	if err := h.uc.ForgotPassword(c.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, ucauth.ErrInvalidInput):
			return middleware.NewAppError(fiber.StatusBadRequest, "Please provide an email address", err)
		case errors.Is(err, ucauth.ErrUserNotFound):
			return middleware.NewAppError(fiber.StatusNotFound, "There is no user with this email address.", err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, "An error occurred while resetting the password", err)
		}
	}

	return response.Success(c, fiber.StatusOK, "Email sent successfully 🚀!", nil)
}

func (h *AuthHandler) ResetPassword(c fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}

	err := h.uc.ResetPassword(c.Context(), ucauth.ResetPasswordInput{
		OTPCode:         req.OTPCode,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		switch {
		case errors.Is(err, ucauth.ErrInvalidInput):
			return middleware.NewAppError(fiber.StatusBadRequest, "Please provide an OTP code and try again.", err)
		case errors.Is(err, ucauth.ErrOTPInvalid):
			return middleware.NewAppError(fiber.StatusBadRequest, "This OTP code has expired or is invalid", err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, "An error occurred while resetting the password", err)
		}
	}

	return response.Success(c, fiber.StatusOK, "Password updated successfully!", nil)
}

func (h *AuthHandler) UpdatePassword(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil)
	}

	var req updatePasswordRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}

	err := h.uc.UpdatePassword(c.Context(), userID, ucauth.UpdatePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, ucauth.ErrInvalidInput):
			return middleware.NewAppError(fiber.StatusBadRequest, "Please provide current password, new password, and confirm password", err)
		case errors.Is(err, ucauth.ErrUserNotFound):
			return middleware.NewAppError(fiber.StatusNotFound, "User not found", err)
		case errors.Is(err, ucauth.ErrWrongPassword):
			return middleware.NewAppError(fiber.StatusUnauthorized, "Current password is incorrect", err)
		case errors.Is(err, ucauth.ErrPasswordMismatch):
			return middleware.NewAppError(fiber.StatusBadRequest, "New password and confirm password don't match", err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, "An error occurred while updating the password", err)
		}
	}

	return response.Success(c, fiber.StatusOK, "Password updated successfully!", nil)
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    "loggedout",
		Expires:  time.Now().Add(10 * time.Second),
		HTTPOnly: true,
		Secure:   h.cfg.SecureCookie,
	})

	return response.Success(c, fiber.StatusOK, "Successfully logged out", nil)
}

func (h *AuthHandler) GoogleLogin(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, "", fiber.Map{
		"authorizationUrl": h.uc.GoogleAuthURL(),
	})
}

func (h *AuthHandler) GoogleCallback(c fiber.Ctx) error {
	if provErr := c.Query("error"); provErr != "" {
		return middleware.NewAppError(fiber.StatusUnauthorized, provErr, nil)
	}

	code := c.Query("code")
	if code == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid request", nil)
	}

	usr, token, err := h.uc.GoogleCallback(c.Context(), code)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "problem getting information", err)
	}

	h.setSessionCookie(c, token)
	return response.SuccessWithToken(c, fiber.StatusOK, token, fiber.Map{
		"user": dto.NewUserResponse(usr),
	})
}

func (h *AuthHandler) setSessionCookie(c fiber.Ctx, token string) {
	cookie := fiber.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		HTTPOnly: true,
		Secure:   h.cfg.SecureCookie,
	}
	if h.cfg.CookieTTL > 0 {
		cookie.Expires = time.Now().Add(h.cfg.CookieTTL)
	}
	c.Cookie(&cookie)
}
