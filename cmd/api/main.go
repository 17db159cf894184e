package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/roster-api/internal/config"
	"github.com/noah-isme/roster-api/internal/handler"
	"github.com/noah-isme/roster-api/internal/middleware"
	"github.com/noah-isme/roster-api/internal/repository"
	"github.com/noah-isme/roster-api/internal/router"
	"github.com/noah-isme/roster-api/internal/service"
	"github.com/noah-isme/roster-api/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	studentRepo, err := repository.NewFileStudentRepository(cfg.StudentsFile, logger)
	if err != nil {
		log.Fatalf("failed to open student store: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	studentService := service.NewStudentService(studentRepo, validate, logger)
	authService := service.NewAuthService(cfg, validate, logger)

	authHandler := handler.NewAuthHandler(authService, cfg, logger)
	studentHandler := handler.NewStudentHandler(studentService, logger)
	debugHandler := handler.NewDebugHandler()

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "internal server error"
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
				message = fiberErr.Message
			}
			if code >= fiber.StatusInternalServerError {
				logger.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
			}
			return utils.SendError(c, code, message)
		},
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:    authHandler,
		StudentHandler: studentHandler,
		DebugHandler:   debugHandler,
		JWTGuard:       middleware.JWTProtected(cfg.JWTSecret),
		SessionGuard:   middleware.SessionProtected(cfg.SessionCookieName, cfg.SessionToken),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
