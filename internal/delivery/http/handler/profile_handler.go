package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/onoja123/Modi-backend/internal/delivery/http/dto"
	"github.com/onoja123/Modi-backend/internal/delivery/http/middleware"
	"github.com/onoja123/Modi-backend/internal/domain/user"
	"github.com/onoja123/Modi-backend/internal/pkg/response"
	"github.com/onoja123/Modi-backend/internal/usecase"
	ucprofile "github.com/onoja123/Modi-backend/internal/usecase/profile"
)

type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

type aboutRequest struct {
	About []string `json:"about"`
}

type goalsRequest struct {
	Goals []string `json:"goals"`
}

type preferenceRequest struct {
	Preference []string `json:"preference"`
}

type userTypeRequest struct {
	UserType string `json:"userType"`
}

func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/get-profile", h.GetProfile)
	r.Put("/add-about", h.UpdateAbout)
	r.Put("/add-goals", h.UpdateGoals)
	r.Put("/add-preference", h.UpdatePreference)
	r.Put("/add-usertype", h.UpdateType)
}

func (h *ProfileHandler) GetProfile(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil)
	}

	usr, err := h.uc.GetProfile(c.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "No profile found", err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}

	return response.Success(c, fiber.StatusOK, "", fiber.Map{
		"profile": dto.NewUserResponse(usr),
	})
}

func (h *ProfileHandler) UpdateAbout(c fiber.Ctx) error {
	var req aboutRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}

	usr, err := h.uc.UpdateAbout(c.Context(), localUserID(c), req.About)
	if err != nil {
		return h.mapUpdateError(err, "Please provide your about")
	}

	return response.Success(c, fiber.StatusOK, "Added your about successfully", fiber.Map{
		"user": dto.NewUserResponse(usr),
	})
}

func (h *ProfileHandler) UpdateGoals(c fiber.Ctx) error {
	var req goalsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}

	usr, err := h.uc.UpdateGoals(c.Context(), localUserID(c), req.Goals)
	if err != nil {
		return h.mapUpdateError(err, "Please provide your goals")
	}

	return response.Success(c, fiber.StatusOK, "Added your goals successfully", fiber.Map{
		"user": dto.NewUserResponse(usr),
	})
}

func (h *ProfileHandler) UpdatePreference(c fiber.Ctx) error {
	var req preferenceRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}

	usr, err := h.uc.UpdatePreference(c.Context(), localUserID(c), req.Preference)
	if err != nil {
		return h.mapUpdateError(err, "Please provide your preference")
	}

	return response.Success(c, fiber.StatusOK, "Added your preference successfully", fiber.Map{
		"user": dto.NewUserResponse(usr),
	})
}

func (h *ProfileHandler) UpdateType(c fiber.Ctx) error {
	var req userTypeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}

	usr, err := h.uc.UpdateType(c.Context(), localUserID(c), user.Type(req.UserType))
	if err != nil {
		return h.mapUpdateError(err, "Please provide a valid user type")
	}

	return response.Success(c, fiber.StatusOK, "Added your userType successfully", fiber.Map{
		"user": dto.NewUserResponse(usr),
	})
}

func (h *ProfileHandler) mapUpdateError(err error, invalidMsg string) error {
	switch {
	case errors.Is(err, ucprofile.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, invalidMsg, err)
	case errors.Is(err, user.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
}

func localUserID(c fiber.Ctx) uuid.UUID {
	if id, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
