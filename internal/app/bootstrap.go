package app

import (
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/onoja123/Modi-backend/internal/config"
	"github.com/onoja123/Modi-backend/internal/delivery/http/handler"
	"github.com/onoja123/Modi-backend/internal/delivery/http/middleware"
	"github.com/onoja123/Modi-backend/internal/delivery/http/routes"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	app := &App{Fiber: f, Container: c}
	return app, c.Close, nil
}

func registerGlobalMiddleware(f *fiber.App, c *Container) {
	f.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
	f.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
}

func registerRoutes(f *fiber.App, c *Container) {
	guard := middleware.NewAuthMiddleware(c.JWT, c.Users)

	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.Config.App.AppName),
		handler.NewAuthHandler(c.Auth, handler.AuthHandlerConfig{
			CookieTTL:    c.Config.JWT.CookieTTL,
			SecureCookie: c.Config.App.IsProduction(),
		}),
		handler.NewProfileHandler(c.Profile),
		handler.NewWaitlistHandler(c.WaitlistFlow),
		guard,
	)
	registry.Register(f)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
