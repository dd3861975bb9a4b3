package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/onoja123/Modi-backend/internal/delivery/http/dto"
	"github.com/onoja123/Modi-backend/internal/delivery/http/middleware"
	"github.com/onoja123/Modi-backend/internal/pkg/response"
	"github.com/onoja123/Modi-backend/internal/usecase"
)

type WaitlistHandler struct {
	uc usecase.WaitlistUsecase
}

type waitlistRequest struct {
	Email string `json:"email"`
}

func NewWaitlistHandler(uc usecase.WaitlistUsecase) *WaitlistHandler {
	return &WaitlistHandler{uc: uc}
}

func (h *WaitlistHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/adduser", h.AddUser)
}

func (h *WaitlistHandler) AddUser(c fiber.Ctx) error {
	var req waitlistRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}

	entry, err := h.uc.AddUser(c.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			return middleware.NewAppError(fiber.StatusBadRequest, "Please provide a valid email address", err)
		case errors.Is(err, usecase.ErrAlreadyOnWaitlist):
			return middleware.NewAppError(fiber.StatusBadRequest, "You are already on the waitlist. See you at launch!", err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
		}
	}

	return response.Success(c, fiber.StatusOK, "You are added to the waitlist. See you at launch!", fiber.Map{
		"newUser": dto.NewWaitlistEntryResponse(entry),
	})
}
