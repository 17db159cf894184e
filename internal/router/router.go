package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/roster-api/internal/config"
	"github.com/noah-isme/roster-api/internal/handler"
	"github.com/noah-isme/roster-api/internal/middleware"
	"github.com/noah-isme/roster-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler    *handler.AuthHandler
	StudentHandler *handler.StudentHandler
	DebugHandler   *handler.DebugHandler
	JWTGuard       fiber.Handler
	SessionGuard   fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.Handler())

	// Use provided guards, or no-ops if nil
	jwtGuard := deps.JWTGuard
	if jwtGuard == nil {
		jwtGuard = func(c *fiber.Ctx) error { return c.Next() }
	}
	sessionGuard := deps.SessionGuard
	if sessionGuard == nil {
		sessionGuard = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.DebugHandler != nil {
		deps.DebugHandler.Register(app.Group("/test"))
	}

	if deps.AuthHandler != nil {
		auth := app.Group("/auth")
		loginLimiter := middleware.RateLimit("login", 20, time.Minute)
		auth.Use("/login-jwt", loginLimiter)
		auth.Use("/login-cookie", loginLimiter)
		deps.AuthHandler.Register(auth, jwtGuard, sessionGuard)
	}

	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(app.Group("/students"), jwtGuard, sessionGuard)
	}

	// Catch-all for unrouted paths.
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":     "route not found",
			"pathTried": c.OriginalURL(),
			"method":    c.Method(),
		})
	})
}
