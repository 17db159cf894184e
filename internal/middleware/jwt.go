package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/roster-api/internal/dto"
	"github.com/noah-isme/roster-api/internal/utils"
)

// Locals keys populated by the auth guards.
const (
	LocalsUsername = "username"
	LocalsUserRole = "user_role"
)

// JWTProtected returns a middleware that validates JWT bearer tokens. On
// success the decoded {username, role} payload is exposed to downstream
// handlers through Locals.
func JWTProtected(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := c.Get("Authorization")
		if authorization == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authorization header missing")
		}

		parts := strings.Split(authorization, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return utils.SendErrorWithHint(c, fiber.StatusUnauthorized,
				"malformed authorization header",
				"expected format: Bearer <token>")
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid or expired token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token claims")
		}

		if username, ok := claims["username"].(string); ok {
			c.Locals(LocalsUsername, username)
		}
		if role, ok := claims["role"].(string); ok {
			c.Locals(LocalsUserRole, role)
		}

		return c.Next()
	}
}

// IdentityFromContext returns the identity the active guard attached to the
// request, if any.
func IdentityFromContext(c *fiber.Ctx) dto.Identity {
	identity := dto.Identity{}
	if username, ok := c.Locals(LocalsUsername).(string); ok {
		identity.Username = username
	}
	if role, ok := c.Locals(LocalsUserRole).(string); ok {
		identity.Role = role
	}
	return identity
}
