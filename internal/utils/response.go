package utils

import "github.com/gofiber/fiber/v2"

// ErrorResponse is the common error payload returned to clients.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details []string    `json:"details,omitempty"`
	Hint    string      `json:"hint,omitempty"`
	Student interface{} `json:"student,omitempty"`
}

// SendError sends an error JSON response with the given status code.
func SendError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "error"
	}

	return c.Status(status).JSON(ErrorResponse{Error: message})
}

// SendValidationError reports every collected field violation in one response.
func SendValidationError(c *fiber.Ctx, message string, details []string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   message,
		Details: details,
	})
}

// SendErrorWithHint attaches a short remediation hint to the error payload.
func SendErrorWithHint(c *fiber.Ctx, status int, message, hint string) error {
	return c.Status(status).JSON(ErrorResponse{Error: message, Hint: hint})
}

// SendConflict reports a duplicate-email rejection along with the record
// already holding the contested address.
func SendConflict(c *fiber.Ctx, message string, student interface{}) error {
	return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
		Error:   message,
		Student: student,
	})
}
