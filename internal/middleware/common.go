package middleware

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
)

// Config customises the request pipeline.
type Config struct {
	Logger *zerolog.Logger
}

// Register attaches the shared request pipeline. Order matters: recovery
// runs first so the catch-all responder sees panics, correlation runs before
// metrics so failure logs carry the request id, and CORS runs last since the
// cookie login flow needs credentialed cross-origin responses.
func Register(app *fiber.App, cfg Config) {
	obsLogger := zerolog.New(io.Discard)
	if cfg.Logger != nil {
		obsLogger = *cfg.Logger
	}

	app.Use(recover.New())
	app.Use(CorrelationID())
	app.Use(Observability(obsLogger))
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, Cookie, X-Correlation-ID",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
	}))
}
