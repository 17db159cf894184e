package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/roster-api/internal/dto"
	"github.com/noah-isme/roster-api/internal/middleware"
	"github.com/noah-isme/roster-api/internal/repository"
	"github.com/noah-isme/roster-api/internal/service"
	"github.com/noah-isme/roster-api/internal/utils"
)

// StudentHandler serves the student CRUD endpoints.
type StudentHandler struct {
	service service.StudentService
	logger  zerolog.Logger
}

// NewStudentHandler constructs a student handler.
func NewStudentHandler(svc service.StudentService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		service: svc,
		logger:  logger.With().Str("component", "student_handler").Logger(),
	}
}

// Register wires the student routes. Reads are public; mutations require the
// bearer guard. The two protected demo routes exercise each guard in
// isolation.
func (h *StudentHandler) Register(router fiber.Router, jwtGuard, sessionGuard fiber.Handler) {
	router.Get("/protected/cookie-only", sessionGuard, h.protectedProbe)
	router.Get("/protected/jwt-only", jwtGuard, h.protectedProbe)

	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Post("", jwtGuard, h.create)
	router.Put("/:id", jwtGuard, h.replace)
	router.Patch("/:id", jwtGuard, h.patch)
	router.Delete("/:id", jwtGuard, h.remove)
}

func (h *StudentHandler) list(c *fiber.Ctx) error {
	response, err := h.service.List(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list students")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list students")
	}

	return c.JSON(response)
}

func (h *StudentHandler) get(c *fiber.Ctx) error {
	id, err := parseStudentID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "student id must be a number")
	}

	student, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.respondStudentError(c, id, err)
	}

	return c.JSON(student)
}

func (h *StudentHandler) create(c *fiber.Ctx) error {
	var payload dto.StudentWriteRequest
	if err := c.BodyParser(&payload); err != nil {
		return respondBodyParseError(c, err)
	}

	student, err := h.service.Create(c.Context(), payload)
	if err != nil {
		return h.respondStudentError(c, 0, err)
	}

	return c.Status(fiber.StatusCreated).JSON(student)
}

func (h *StudentHandler) replace(c *fiber.Ctx) error {
	id, err := parseStudentID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "student id must be a number")
	}

	var payload dto.StudentWriteRequest
	if err := c.BodyParser(&payload); err != nil {
		return respondBodyParseError(c, err)
	}

	student, err := h.service.Replace(c.Context(), id, payload)
	if err != nil {
		return h.respondStudentError(c, id, err)
	}

	return c.JSON(student)
}

func (h *StudentHandler) patch(c *fiber.Ctx) error {
	id, err := parseStudentID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "student id must be a number")
	}

	var payload dto.StudentPatchRequest
	if err := c.BodyParser(&payload); err != nil {
		return respondBodyParseError(c, err)
	}

	student, err := h.service.Patch(c.Context(), id, payload)
	if err != nil {
		return h.respondStudentError(c, id, err)
	}

	return c.JSON(student)
}

func (h *StudentHandler) remove(c *fiber.Ctx) error {
	id, err := parseStudentID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "student id must be a number")
	}

	student, err := h.service.Delete(c.Context(), id)
	if err != nil {
		return h.respondStudentError(c, id, err)
	}

	return c.JSON(student)
}

func (h *StudentHandler) protectedProbe(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "access granted",
		"user":    middleware.IdentityFromContext(c),
	})
}

func (h *StudentHandler) respondStudentError(c *fiber.Ctx, id int, err error) error {
	var validationErr *service.ValidationError
	var duplicateErr *repository.DuplicateEmailError
	switch {
	case errors.As(err, &validationErr):
		return utils.SendValidationError(c, "invalid student payload", validationErr.Details)
	case errors.As(err, &duplicateErr):
		return utils.SendConflict(c, "email already in use", duplicateErr.Existing)
	case errors.Is(err, repository.ErrStudentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, fmt.Sprintf("Student with id %d not found", id))
	default:
		h.logger.Error().Err(err).Int("student_id", id).Msg("student operation failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}

// respondBodyParseError names the offending field when the body carries the
// wrong JSON type, so a fractional age reads like every other field
// violation instead of a bare "invalid payload".
func respondBodyParseError(c *fiber.Ctx, err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return utils.SendValidationError(c, "invalid student payload", []string{typeMismatch(typeErr.Field)})
	}
	return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
}

func typeMismatch(field string) string {
	switch field {
	case "age":
		return "age must be a whole number"
	case "name", "email":
		return field + " must be text"
	case "isActive":
		return "isActive must be a boolean"
	default:
		return field + " has the wrong type"
	}
}

func parseStudentID(c *fiber.Ctx) (int, error) {
	return strconv.Atoi(c.Params("id"))
}
