package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/roster-api/internal/utils"
)

// Fixed identity injected by the cookie guard. It does not vary with the
// credential that logged in; the login endpoints only hand out one shared
// session value, so there is nothing per-user to recover here.
const (
	SessionUsername = "cookieUser"
	SessionRole     = "cookie-tester"
)

// SessionProtected returns a middleware that accepts requests carrying the
// one configured session cookie value.
func SessionProtected(cookieName, validToken string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cookie := c.Cookies(cookieName)
		if cookie == "" {
			return utils.SendErrorWithHint(c, fiber.StatusUnauthorized,
				"session cookie missing",
				"login via POST /auth/login-cookie first")
		}

		if subtle.ConstantTimeCompare([]byte(cookie), []byte(validToken)) != 1 {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid session")
		}

		c.Locals(LocalsUsername, SessionUsername)
		c.Locals(LocalsUserRole, SessionRole)

		return c.Next()
	}
}
