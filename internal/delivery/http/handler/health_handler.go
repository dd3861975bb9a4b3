package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/onoja123/Modi-backend/internal/pkg/response"
)

type HealthHandler struct {
	appName string
}

func NewHealthHandler(appName string) *HealthHandler {
	return &HealthHandler{appName: appName}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, "ok", fiber.Map{
		"service": h.appName,
	})
}
