package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName      string
	AppEnv       string
	AppPort      string
	JWTSecret    string
	JWTTokenTTL  time.Duration
	StudentsFile string

	// Demo credential accepted by the login endpoints. Injected rather than
	// hard-coded so tests can swap identities without touching logic.
	DemoUsername string
	DemoPassword string
	DemoRole     string

	// SessionToken is the one cookie value the session guard accepts.
	SessionToken      string
	SessionCookieName string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("ROSTER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Roster API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "3000")
	v.SetDefault("jwt.token_ttl", "1h")
	v.SetDefault("students.file", "students.json")
	v.SetDefault("demo.username", "testuser")
	v.SetDefault("demo.password", "password123")
	v.SetDefault("demo.role", "student-admin")
	v.SetDefault("session.token", "valid-session-token-12345")
	v.SetDefault("session.cookie_name", "sessionToken")

	ttlString := v.GetString("jwt.token_ttl")
	if ttlString == "" {
		ttlString = "1h"
	}

	ttl, err := time.ParseDuration(ttlString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid jwt token ttl: %w", err)
	}

	cfg := Config{
		AppName:           v.GetString("app.name"),
		AppEnv:            v.GetString("app.env"),
		AppPort:           v.GetString("app.port"),
		JWTSecret:         v.GetString("jwt.secret"),
		JWTTokenTTL:       ttl,
		StudentsFile:      v.GetString("students.file"),
		DemoUsername:      v.GetString("demo.username"),
		DemoPassword:      v.GetString("demo.password"),
		DemoRole:          v.GetString("demo.role"),
		SessionToken:      v.GetString("session.token"),
		SessionCookieName: v.GetString("session.cookie_name"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	return cfg, nil
}
