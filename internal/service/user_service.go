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

// UserUpdateInput describes a partial account update.
type UserUpdateInput struct {
	Username *string
	Email    *string
}

// Empty reports whether no field is set.
func (in UserUpdateInput) Empty() bool {
	return in.Username == nil && in.Email == nil
}

// UserService manages stored accounts beyond registration and login.
type UserService struct {
	users repository.UserRepository
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// GetByID returns the account with the given id.
func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}

// Update patches username and/or email on the target account. Account
// access rules apply: self always, admin over non-admin otherwise.
func (s *UserService) Update(ctx context.Context, actor *domain.User, userID string, input UserUpdateInput) (*domain.User, error) {
	if input.Empty() {
		return nil, apperrors.NewValidationError("at least one field must be set", nil)
	}

	target, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !auth.CanAccessIdentity(actor, target) {
		return nil, apperrors.NewForbidden("not enough permissions")
	}

	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if username == "" {
			return nil, apperrors.NewValidationError("username must not be empty", nil)
		}
		if existing, err := s.users.GetByUsername(ctx, username); err == nil {
			if existing.ID != target.ID {
				return nil, ErrAlreadyExists
			}
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		target.Username = username
	}
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if email == "" {
			return nil, apperrors.NewValidationError("email must not be empty", nil)
		}
		if existing, err := s.users.GetByEmail(ctx, email); err == nil {
			if existing.ID != target.ID {
				return nil, ErrAlreadyExists
			}
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		target.Email = email
	}

	if err := s.users.Update(ctx, target); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return target, nil
}

// Delete removes the target account, subject to account access rules.
func (s *UserService) Delete(ctx context.Context, actor *domain.User, userID string) error {
	target, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CanAccessIdentity(actor, target) {
		return apperrors.NewForbidden("not enough permissions")
	}

	if err := s.users.Delete(ctx, target.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return err
	}
	return nil
}
