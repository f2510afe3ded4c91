package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/guild-support-bot/internal/api/http/handlers"
	"github.com/spec-kit/guild-support-bot/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Gateway        *handlers.GatewayHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/token", cfg.Auth.Token)

	gateway := app.Group("/gateway", cfg.AuthMiddleware.Handle)
	gateway.Post("/messages", cfg.Gateway.Message)
	gateway.Post("/interactions", cfg.Gateway.Interaction)
}
