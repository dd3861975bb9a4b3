package routes

import (
	"github.com/gofiber/fiber/v3"

	"github.com/onoja123/Modi-backend/internal/delivery/http/handler"
	"github.com/onoja123/Modi-backend/internal/delivery/http/middleware"
)

// Registry wires every handler onto the fiber app. All API routes live under
// /api/v1; the health probe stays at the root.
type Registry struct {
	health   *handler.HealthHandler
	auth     *handler.AuthHandler
	profile  *handler.ProfileHandler
	waitlist *handler.WaitlistHandler
	guard    *middleware.AuthMiddleware
}

func NewRegistry(
	health *handler.HealthHandler,
	auth *handler.AuthHandler,
	profile *handler.ProfileHandler,
	waitlist *handler.WaitlistHandler,
	guard *middleware.AuthMiddleware,
) *Registry {
	return &Registry{
		health:   health,
		auth:     auth,
		profile:  profile,
		waitlist: waitlist,
		guard:    guard,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)
	r.registerAPI(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	auth := v1.Group("/auth")
	r.auth.RegisterRoutes(auth)
	r.auth.RegisterProtectedRoutes(auth.Group("", r.guard.Middleware()))

	profile := v1.Group("/profile", r.guard.Middleware())
	r.profile.RegisterRoutes(profile)

	waitlist := v1.Group("/waitlist")
	r.waitlist.RegisterRoutes(waitlist)
}
