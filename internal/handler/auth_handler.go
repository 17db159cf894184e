package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/roster-api/internal/config"
	"github.com/noah-isme/roster-api/internal/dto"
	"github.com/noah-isme/roster-api/internal/middleware"
	"github.com/noah-isme/roster-api/internal/service"
	"github.com/noah-isme/roster-api/internal/utils"
)

// AuthHandler serves login, logout and identity endpoints.
type AuthHandler struct {
	service service.AuthService
	cfg     config.Config
	logger  zerolog.Logger
}

// NewAuthHandler constructs an auth handler.
func NewAuthHandler(svc service.AuthService, cfg config.Config, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: svc,
		cfg:     cfg,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register wires the auth routes. Guards for the me endpoints are supplied by
// the router so this handler stays pipeline-agnostic.
func (h *AuthHandler) Register(router fiber.Router, jwtGuard, sessionGuard fiber.Handler) {
	router.Post("/login-jwt", h.loginJWT)
	router.Get("/me", jwtGuard, h.me)
	router.Post("/login-cookie", h.loginCookie)
	router.Get("/me-cookie", sessionGuard, h.me)
	router.Post("/logout-cookie", h.logoutCookie)
}

func (h *AuthHandler) loginJWT(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.LoginJWT(c.Context(), payload)
	if err != nil {
		return h.respondLoginError(c, err)
	}

	return c.JSON(response)
}

func (h *AuthHandler) loginCookie(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	user, token, err := h.service.LoginCookie(c.Context(), payload)
	if err != nil {
		return h.respondLoginError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.SessionCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(fiber.Map{"message": "session cookie set", "user": user})
}

func (h *AuthHandler) logoutCookie(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.SessionCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Expires:  time.Now().Add(-time.Hour),
	})

	return c.JSON(fiber.Map{"message": "session cookie cleared"})
}

// me reports the identity the active guard attached to the request. It is
// shared by the bearer and cookie variants; the guard decides who you are.
func (h *AuthHandler) me(c *fiber.Ctx) error {
	return c.JSON(dto.IdentityResponse{User: middleware.IdentityFromContext(c)})
}

func (h *AuthHandler) respondLoginError(c *fiber.Ctx, err error) error {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return utils.SendValidationError(c, "invalid login payload", validationErr.Details)
	case errors.Is(err, service.ErrInvalidCredentials):
		return utils.SendError(c, fiber.StatusUnauthorized, "invalid credentials")
	default:
		h.logger.Error().Err(err).Msg("login failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "login failed")
	}
}
