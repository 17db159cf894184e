package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/roster-api/internal/dto"
	"github.com/noah-isme/roster-api/internal/models"
	"github.com/noah-isme/roster-api/internal/repository"
)

// ValidationError aggregates field violations for a rejected payload.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Details, "; "))
}

// StudentService orchestrates student CRUD use cases.
type StudentService interface {
	List(ctx context.Context) (dto.StudentListResponse, error)
	Get(ctx context.Context, id int) (models.Student, error)
	Create(ctx context.Context, req dto.StudentWriteRequest) (models.Student, error)
	Replace(ctx context.Context, id int, req dto.StudentWriteRequest) (models.Student, error)
	Patch(ctx context.Context, id int, req dto.StudentPatchRequest) (models.Student, error)
	Delete(ctx context.Context, id int) (models.Student, error)
}

type studentService struct {
	repo      repository.StudentRepository
	validator *validator.Validate
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewStudentService constructs the student service.
func NewStudentService(repo repository.StudentRepository, validate *validator.Validate, logger zerolog.Logger) StudentService {
	return &studentService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "student_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/roster-api/internal/service/student"),
	}
}

func (s *studentService) List(ctx context.Context) (dto.StudentListResponse, error) {
	ctx, span := s.tracer.Start(ctx, "student.list")
	defer span.End()

	students, err := s.repo.List(ctx)
	if err != nil {
		span.RecordError(err)
		return dto.StudentListResponse{}, err
	}

	span.SetAttributes(attribute.Int("student.count", len(students)))
	return dto.StudentListResponse{Count: len(students), Data: students}, nil
}

func (s *studentService) Get(ctx context.Context, id int) (models.Student, error) {
	ctx, span := s.tracer.Start(ctx, "student.get")
	defer span.End()
	span.SetAttributes(attribute.Int("student.id", id))

	student, err := s.repo.Get(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, "not found")
		return models.Student{}, err
	}

	return student, nil
}

func (s *studentService) Create(ctx context.Context, req dto.StudentWriteRequest) (models.Student, error) {
	ctx, span := s.tracer.Start(ctx, "student.create")
	defer span.End()

	if err := s.validateFull(req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return models.Student{}, err
	}

	created, err := s.repo.Create(ctx, studentFromRequest(req))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "create rejected")
		return models.Student{}, err
	}

	span.SetAttributes(attribute.Int("student.id", created.ID))
	return created, nil
}

func (s *studentService) Replace(ctx context.Context, id int, req dto.StudentWriteRequest) (models.Student, error) {
	ctx, span := s.tracer.Start(ctx, "student.replace")
	defer span.End()
	span.SetAttributes(attribute.Int("student.id", id))

	if err := s.validateFull(req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return models.Student{}, err
	}

	updated, err := s.repo.Replace(ctx, id, studentFromRequest(req))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "replace rejected")
		return models.Student{}, err
	}

	return updated, nil
}

func (s *studentService) Patch(ctx context.Context, id int, req dto.StudentPatchRequest) (models.Student, error) {
	ctx, span := s.tracer.Start(ctx, "student.patch")
	defer span.End()
	span.SetAttributes(attribute.Int("student.id", id))

	// Partial updates fail fast on the first invalid present field, unlike
	// full writes which report every violation at once.
	if req.Name != nil && *req.Name == "" {
		return models.Student{}, s.patchViolation(span, "name must be non-empty text")
	}
	if req.Age != nil && *req.Age <= 0 {
		return models.Student{}, s.patchViolation(span, "age must be a positive number")
	}
	if req.Email != nil && *req.Email == "" {
		return models.Student{}, s.patchViolation(span, "email must be non-empty text")
	}

	patch := repository.StudentPatch{
		Name:     req.Name,
		Age:      req.Age,
		Email:    req.Email,
		IsActive: req.IsActive,
	}

	updated, err := s.repo.Patch(ctx, id, patch)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "patch rejected")
		return models.Student{}, err
	}

	return updated, nil
}

func (s *studentService) Delete(ctx context.Context, id int) (models.Student, error) {
	ctx, span := s.tracer.Start(ctx, "student.delete")
	defer span.End()
	span.SetAttributes(attribute.Int("student.id", id))

	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "delete rejected")
		return models.Student{}, err
	}

	return removed, nil
}

func (s *studentService) patchViolation(span trace.Span, detail string) error {
	err := &ValidationError{Details: []string{detail}}
	span.RecordError(err)
	span.SetStatus(codes.Error, "validation failed")
	return err
}

// validateFull checks a create/replace payload and collects every violation
// into one ordered list so the caller reports all problems in one response.
func (s *studentService) validateFull(req dto.StudentWriteRequest) error {
	err := s.validator.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	details := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		details = append(details, fieldViolation(fieldErr))
	}

	return &ValidationError{Details: details}
}

func fieldViolation(fieldErr validator.FieldError) string {
	switch fieldErr.Field() {
	case "Name":
		return "name is required and must be non-empty text"
	case "Age":
		if fieldErr.Tag() == "gt" {
			return "age must be a positive number"
		}
		return "age is required and must be a positive number"
	case "Email":
		return "email is required and must be non-empty text"
	case "IsActive":
		return "isActive is required and must be a boolean"
	default:
		return fmt.Sprintf("%s is invalid", fieldErr.Field())
	}
}

func studentFromRequest(req dto.StudentWriteRequest) models.Student {
	return models.Student{
		Name:     *req.Name,
		Age:      *req.Age,
		Email:    *req.Email,
		IsActive: *req.IsActive,
	}
}
