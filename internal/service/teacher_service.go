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

// TeacherCreateInput describes teacher creation payload.
type TeacherCreateInput struct {
	Name        string
	Surname     string
	FatherName  *string
	PhoneNumber *string
}

// TeacherService manages instructor entries in a user's tracker.
type TeacherService struct {
	teachers repository.TeacherRepository
}

// NewTeacherService builds the service.
func NewTeacherService(teachers repository.TeacherRepository) *TeacherService {
	return &TeacherService{teachers: teachers}
}

// Create adds a teacher owned by the acting user.
func (s *TeacherService) Create(ctx context.Context, actor *domain.User, input TeacherCreateInput) (*domain.Teacher, error) {
	name := strings.TrimSpace(input.Name)
	surname := strings.TrimSpace(input.Surname)
	if name == "" || surname == "" {
		return nil, apperrors.NewValidationError("name and surname required", nil)
	}

	teacher := &domain.Teacher{
		Name:        name,
		Surname:     surname,
		FatherName:  input.FatherName,
		PhoneNumber: input.PhoneNumber,
		UserID:      actor.ID,
	}
	if err := s.teachers.Create(ctx, teacher); err != nil {
		return nil, err
	}
	return teacher, nil
}

// Get returns a single teacher. The item is fetched first; a missing id is
// not found, an existing item owned by someone else is forbidden.
func (s *TeacherService) Get(ctx context.Context, actor *domain.User, id string) (*domain.Teacher, error) {
	teacher, err := s.teachers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("teacher", nil)
		}
		return nil, err
	}
	if !auth.CanAccessItem(actor, teacher) {
		return nil, apperrors.NewForbidden("not enough permissions")
	}
	return teacher, nil
}

// List returns the acting user's teachers.
func (s *TeacherService) List(ctx context.Context, actor *domain.User) ([]domain.Teacher, error) {
	return s.teachers.ListByOwner(ctx, actor.ID)
}

// Delete removes a teacher owned by the acting user.
func (s *TeacherService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	if err := s.teachers.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("teacher", nil)
		}
		return err
	}
	return nil
}
