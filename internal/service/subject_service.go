package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/labtracker-service/internal/auth"
	"github.com/spec-kit/labtracker-service/internal/domain"
	"github.com/spec-kit/labtracker-service/internal/repository"
	apperrors "github.com/spec-kit/labtracker-service/pkg/util"
)

// SubjectCreateInput describes subject creation payload.
type SubjectCreateInput struct {
	Name      string
	Course    *int16
	TeacherID string
}

// SubjectUpdateInput describes a partial subject update.
type SubjectUpdateInput struct {
	Name      *string
	Course    *int16
	TeacherID *string
}

// Empty reports whether no field is set.
func (in SubjectUpdateInput) Empty() bool {
	return in.Name == nil && in.Course == nil && in.TeacherID == nil
}

// SubjectService manages course entries in a user's tracker.
type SubjectService struct {
	subjects repository.SubjectRepository
	teachers repository.TeacherRepository
}

// NewSubjectService builds the service.
func NewSubjectService(subjects repository.SubjectRepository, teachers repository.TeacherRepository) *SubjectService {
	return &SubjectService{subjects: subjects, teachers: teachers}
}

// Create adds a subject owned by the acting user. The referenced teacher
// must exist and belong to the same user.
func (s *SubjectService) Create(ctx context.Context, actor *domain.User, input SubjectCreateInput) (*domain.Subject, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	if input.Course != nil && (*input.Course < 1 || *input.Course > 8) {
		return nil, apperrors.NewValidationError("course must be between 1 and 8", nil)
	}
	if err := s.checkTeacher(ctx, actor, input.TeacherID); err != nil {
		return nil, err
	}

	subject := &domain.Subject{
		Name:      name,
		Course:    input.Course,
		TeacherID: input.TeacherID,
		UserID:    actor.ID,
	}
	if err := s.subjects.Create(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

// Get returns a single subject, fetched first, then ownership-checked.
func (s *SubjectService) Get(ctx context.Context, actor *domain.User, id string) (*domain.Subject, error) {
	subject, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("subject", nil)
		}
		return nil, err
	}
	if !auth.CanAccessItem(actor, subject) {
		return nil, apperrors.NewForbidden("not enough permissions")
	}
	return subject, nil
}

// List returns the acting user's subjects.
func (s *SubjectService) List(ctx context.Context, actor *domain.User) ([]domain.Subject, error) {
	return s.subjects.ListByOwner(ctx, actor.ID)
}

// Update patches a subject owned by the acting user.
func (s *SubjectService) Update(ctx context.Context, actor *domain.User, id string, input SubjectUpdateInput) (*domain.Subject, error) {
	if input.Empty() {
		return nil, apperrors.NewValidationError("at least one field must be set", nil)
	}

	subject, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name must not be empty", nil)
		}
		subject.Name = name
	}
	if input.Course != nil {
		if *input.Course < 1 || *input.Course > 8 {
			return nil, apperrors.NewValidationError("course must be between 1 and 8", nil)
		}
		subject.Course = input.Course
	}
	if input.TeacherID != nil {
		if err := s.checkTeacher(ctx, actor, *input.TeacherID); err != nil {
			return nil, err
		}
		subject.TeacherID = *input.TeacherID
	}

	if err := s.subjects.Update(ctx, subject); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("subject", nil)
		}
		return nil, err
	}
	return subject, nil
}

// Delete removes a subject owned by the acting user.
func (s *SubjectService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	if err := s.subjects.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("subject", nil)
		}
		return err
	}
	return nil
}

func (s *SubjectService) checkTeacher(ctx context.Context, actor *domain.User, teacherID string) error {
	teacher, err := s.teachers.GetByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("teacher", nil)
		}
		return err
	}
	if !auth.CanAccessItem(actor, teacher) {
		return apperrors.NewForbidden("not enough permissions")
	}
	return nil
}
