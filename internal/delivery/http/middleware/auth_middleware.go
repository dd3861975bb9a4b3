package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/onoja123/Modi-backend/internal/domain/user"
	"github.com/onoja123/Modi-backend/internal/pkg/jwt"
	"github.com/onoja123/Modi-backend/internal/pkg/response"
)

const (
	CtxUserIDKey = "user_id"
	CtxUserKey   = "user"
)

// AuthMiddleware guards protected routes. A request passes only with a valid
// bearer token whose user still exists and whose password has not changed
// since the token was issued.
type AuthMiddleware struct {
	jwt   jwt.Service
	users user.Repository
}

func NewAuthMiddleware(jwtSvc jwt.Service, users user.Repository) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc, users: users}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "You are not logged in! Please log in to get access.", nil)
		}

		claims, err := m.jwt.Validate(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Your token has expired. Please log in again to get a new token.", err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token. Please log in again to get a new token.", err)
		}

		usr, err := m.users.GetByID(c.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return NewAppError(fiber.StatusUnauthorized, "The user belonging to this token does no longer exist.", err)
			}
			return NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
		}

		if usr.ChangedPasswordAfter(claims.IssuedTime()) {
			return NewAppError(fiber.StatusUnauthorized, "User recently changed password, please login again!", nil)
		}

		c.Locals(CtxUserIDKey, usr.ID)
		c.Locals(CtxUserKey, usr)

		return c.Next()
	}
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
