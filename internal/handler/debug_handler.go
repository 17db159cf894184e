package handler

import (
	"github.com/gofiber/fiber/v2"
)

// DebugHandler exposes the request-inspection endpoints used when exercising
// the API by hand.
type DebugHandler struct {
	demoCookieName string
}

// NewDebugHandler constructs a debug handler.
func NewDebugHandler() *DebugHandler {
	return &DebugHandler{demoCookieName: "demoCookie"}
}

// Register wires the debug routes.
func (h *DebugHandler) Register(router fiber.Router) {
	router.Get("/headers", h.headers)
	router.Get("/set-cookie", h.setCookie)
	router.Get("/get-cookies", h.getCookies)
}

func (h *DebugHandler) headers(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"headers": c.GetReqHeaders()})
}

func (h *DebugHandler) setCookie(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.demoCookieName,
		Value:    "hello-from-server",
		Path:     "/",
		HTTPOnly: true,
	})

	return c.JSON(fiber.Map{"message": "demo cookie set", "cookie": h.demoCookieName})
}

func (h *DebugHandler) getCookies(c *fiber.Ctx) error {
	cookies := map[string]string{}
	c.Request().Header.VisitAllCookie(func(key, value []byte) {
		cookies[string(key)] = string(value)
	})

	return c.JSON(fiber.Map{"cookies": cookies})
}
