package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/algo-tracker/internal/api/http/handlers"
	"github.com/spec-kit/algo-tracker/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Problems       *handlers.ProblemsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/validate-token", cfg.Auth.ValidateToken)
	authGroup.Post("/forgot-password", cfg.Auth.ForgotPassword)

	problems := api.Group("/problems", cfg.AuthMiddleware.Handle)
	problems.Post("/add", cfg.Problems.Add)
	problems.Get("/all", cfg.Problems.List)
	problems.Get("/tags", cfg.Problems.Tags)
	problems.Get("/:id", cfg.Problems.Get)
	problems.Put("/:id", cfg.Problems.Update)
	problems.Delete("/:id", cfg.Problems.Delete)
}
