package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/roster-api/internal/config"
	"github.com/noah-isme/roster-api/internal/dto"
)

// ErrInvalidCredentials indicates the presented username/password pair does
// not match the accepted credential.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService issues bearer tokens and session cookie values for the demo
// credential carried in configuration.
type AuthService interface {
	LoginJWT(ctx context.Context, req dto.LoginRequest) (dto.TokenResponse, error)
	LoginCookie(ctx context.Context, req dto.LoginRequest) (dto.Identity, string, error)
}

type authService struct {
	cfg       config.Config
	validator *validator.Validate
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewAuthService constructs the auth service.
func NewAuthService(cfg config.Config, validate *validator.Validate, logger zerolog.Logger) AuthService {
	return &authService{
		cfg:       cfg,
		validator: validate,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/roster-api/internal/service/auth"),
	}
}

func (s *authService) LoginJWT(ctx context.Context, req dto.LoginRequest) (dto.TokenResponse, error) {
	_, span := s.tracer.Start(ctx, "auth.login_jwt")
	defer span.End()
	span.SetAttributes(attribute.String("auth.username", req.Username))

	if err := s.checkCredentials(req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "login rejected")
		return dto.TokenResponse{}, err
	}

	now := time.Now()
	expiry := now.Add(s.cfg.JWTTokenTTL)

	claims := jwt.MapClaims{
		"username": req.Username,
		"role":     s.cfg.DemoRole,
		"iat":      now.Unix(),
		"exp":      expiry.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "signing failed")
		return dto.TokenResponse{}, fmt.Errorf("sign token: %w", err)
	}

	s.logger.Info().Str("username", req.Username).Msg("issued bearer token")

	return dto.TokenResponse{
		Token:     signed,
		ExpiresIn: int64(s.cfg.JWTTokenTTL.Seconds()),
		User:      dto.Identity{Username: req.Username, Role: s.cfg.DemoRole},
	}, nil
}

func (s *authService) LoginCookie(ctx context.Context, req dto.LoginRequest) (dto.Identity, string, error) {
	_, span := s.tracer.Start(ctx, "auth.login_cookie")
	defer span.End()
	span.SetAttributes(attribute.String("auth.username", req.Username))

	if err := s.checkCredentials(req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "login rejected")
		return dto.Identity{}, "", err
	}

	s.logger.Info().Str("username", req.Username).Msg("issued session cookie")

	// One shared fixed session value; no per-login session entity exists.
	return dto.Identity{Username: req.Username, Role: s.cfg.DemoRole}, s.cfg.SessionToken, nil
}

func (s *authService) checkCredentials(req dto.LoginRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return &ValidationError{Details: []string{"username and password are required"}}
	}

	if req.Username != s.cfg.DemoUsername || req.Password != s.cfg.DemoPassword {
		return ErrInvalidCredentials
	}

	return nil
}
