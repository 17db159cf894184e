package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/noah-isme/roster-api/internal/models"
)

// fileStudentRepository mirrors a flat JSON array file in memory. The whole
// file is read once at open and rewritten in full after every mutation. A
// single mutex serialises all access, closing the read-modify-write race a
// shared mutable collection would otherwise have.
type fileStudentRepository struct {
	mu       sync.Mutex
	path     string
	students []models.Student
	logger   zerolog.Logger
}

// NewFileStudentRepository opens the store backed by the JSON file at path.
// A missing file is treated as an empty collection.
func NewFileStudentRepository(path string, logger zerolog.Logger) (StudentRepository, error) {
	repo := &fileStudentRepository{
		path:   path,
		logger: logger.With().Str("component", "student_repository").Logger(),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			repo.students = []models.Student{}
			return repo, nil
		}
		return nil, fmt.Errorf("read students file: %w", err)
	}

	if err := json.Unmarshal(data, &repo.students); err != nil {
		return nil, fmt.Errorf("parse students file: %w", err)
	}

	return repo, nil
}

// persist writes the given collection to disk atomically (temp file in the
// same directory, then rename). The caller must hold mu. The in-memory slice
// is only swapped in by the caller after persist succeeds, so a failed write
// leaves memory and disk consistent.
func (r *fileStudentRepository) persist(students []models.Student) error {
	data, err := json.MarshalIndent(students, "", "  ")
	if err != nil {
		return fmt.Errorf("encode students: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, ".students-*.json")
	if err != nil {
		return fmt.Errorf("create temp students file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write students file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close students file: %w", err)
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace students file: %w", err)
	}

	return nil
}

func (r *fileStudentRepository) List(ctx context.Context) ([]models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Student, len(r.students))
	copy(out, r.students)
	return out, nil
}

func (r *fileStudentRepository) Get(ctx context.Context, id int) (models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, student := range r.students {
		if student.ID == id {
			return student, nil
		}
	}
	return models.Student{}, ErrStudentNotFound
}

func (r *fileStudentRepository) Create(ctx context.Context, student models.Student) (models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if dup := findDuplicate(r.students, student.Email, -1); dup != nil {
		return models.Student{}, &DuplicateEmailError{Existing: *dup}
	}

	maxID := 0
	for _, existing := range r.students {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	student.ID = maxID + 1

	next := make([]models.Student, len(r.students), len(r.students)+1)
	copy(next, r.students)
	next = append(next, student)

	if err := r.persist(next); err != nil {
		r.logger.Error().Err(err).Msg("failed to persist student create")
		return models.Student{}, err
	}

	r.students = next
	return student, nil
}

func (r *fileStudentRepository) Replace(ctx context.Context, id int, student models.Student) (models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return models.Student{}, ErrStudentNotFound
	}

	if dup := findDuplicate(r.students, student.Email, id); dup != nil {
		return models.Student{}, &DuplicateEmailError{Existing: *dup}
	}

	student.ID = id
	next := make([]models.Student, len(r.students))
	copy(next, r.students)
	next[idx] = student

	if err := r.persist(next); err != nil {
		r.logger.Error().Err(err).Msg("failed to persist student replace")
		return models.Student{}, err
	}

	r.students = next
	return student, nil
}

func (r *fileStudentRepository) Patch(ctx context.Context, id int, patch StudentPatch) (models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return models.Student{}, ErrStudentNotFound
	}

	if patch.Email != nil {
		if dup := findDuplicate(r.students, *patch.Email, id); dup != nil {
			return models.Student{}, &DuplicateEmailError{Existing: *dup}
		}
	}

	updated := r.students[idx]
	if patch.Name != nil {
		updated.Name = *patch.Name
	}
	if patch.Age != nil {
		updated.Age = *patch.Age
	}
	if patch.Email != nil {
		updated.Email = *patch.Email
	}
	if patch.IsActive != nil {
		updated.IsActive = *patch.IsActive
	}

	next := make([]models.Student, len(r.students))
	copy(next, r.students)
	next[idx] = updated

	if err := r.persist(next); err != nil {
		r.logger.Error().Err(err).Msg("failed to persist student patch")
		return models.Student{}, err
	}

	r.students = next
	return updated, nil
}

func (r *fileStudentRepository) Delete(ctx context.Context, id int) (models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return models.Student{}, ErrStudentNotFound
	}

	removed := r.students[idx]
	next := make([]models.Student, 0, len(r.students)-1)
	next = append(next, r.students[:idx]...)
	next = append(next, r.students[idx+1:]...)

	if err := r.persist(next); err != nil {
		r.logger.Error().Err(err).Msg("failed to persist student delete")
		return models.Student{}, err
	}

	r.students = next
	return removed, nil
}

// indexOf returns the slice index of the record with the given id, or -1.
// Caller must hold mu.
func (r *fileStudentRepository) indexOf(id int) int {
	for i := range r.students {
		if r.students[i].ID == id {
			return i
		}
	}
	return -1
}
