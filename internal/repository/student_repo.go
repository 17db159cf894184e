package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/noah-isme/roster-api/internal/models"
)

// ErrStudentNotFound indicates no record exists for the requested id.
var ErrStudentNotFound = errors.New("student not found")

// DuplicateEmailError rejects a write that would leave two records with
// case-insensitively equal emails. It carries the record already holding
// the contested address so handlers can include it in the 409 payload.
type DuplicateEmailError struct {
	Existing models.Student
}

func (e *DuplicateEmailError) Error() string {
	return fmt.Sprintf("email %q already in use by student %d", e.Existing.Email, e.Existing.ID)
}

// StudentPatch carries the fields of a partial update. Nil fields leave the
// stored record untouched.
type StudentPatch struct {
	Name     *string
	Age      *int
	Email    *string
	IsActive *bool
}

// StudentRepository provides access to the student collection. Mutations are
// durable before they return.
type StudentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	Get(ctx context.Context, id int) (models.Student, error)
	Create(ctx context.Context, student models.Student) (models.Student, error)
	Replace(ctx context.Context, id int, student models.Student) (models.Student, error)
	Patch(ctx context.Context, id int, patch StudentPatch) (models.Student, error)
	Delete(ctx context.Context, id int) (models.Student, error)
}

func sameEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// findDuplicate returns the first record other than exceptID holding email.
func findDuplicate(students []models.Student, email string, exceptID int) *models.Student {
	for i := range students {
		if students[i].ID == exceptID {
			continue
		}
		if sameEmail(students[i].Email, email) {
			return &students[i]
		}
	}
	return nil
}
