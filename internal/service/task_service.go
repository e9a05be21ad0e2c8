package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/labtracker-service/internal/auth"
	"github.com/spec-kit/labtracker-service/internal/domain"
	"github.com/spec-kit/labtracker-service/internal/events"
	"github.com/spec-kit/labtracker-service/internal/repository"
	apperrors "github.com/spec-kit/labtracker-service/pkg/util"
)

// TaskCreateInput describes task creation payload.
type TaskCreateInput struct {
	Name        string
	Description *string
	Deadline    *time.Time
	Type        *domain.TaskType
	Priority    domain.TaskPriority
	SubjectID   string
}

// TaskUpdateInput describes a partial task update.
type TaskUpdateInput struct {
	Name        *string
	Description *string
	Deadline    *time.Time
	Type        *domain.TaskType
	Priority    *domain.TaskPriority
}

// Empty reports whether no field is set.
func (in TaskUpdateInput) Empty() bool {
	return in.Name == nil && in.Description == nil && in.Deadline == nil &&
		in.Type == nil && in.Priority == nil
}

// TaskListFilter describes task listing filters for the acting user.
type TaskListFilter struct {
	SubjectID    *string
	Types        []domain.TaskType
	Priorities   []domain.TaskPriority
	DeadlineFrom *time.Time
	DeadlineTo   *time.Time
	Limit        int
	Offset       int
}

// TaskService manages units of academic work in a user's tracker.
type TaskService struct {
	tasks      repository.TaskRepository
	subjects   repository.SubjectRepository
	dispatcher events.Dispatcher
}

// NewTaskService builds the service.
func NewTaskService(tasks repository.TaskRepository, subjects repository.SubjectRepository, dispatcher events.Dispatcher) *TaskService {
	return &TaskService{tasks: tasks, subjects: subjects, dispatcher: dispatcher}
}

// Create adds a task owned by the acting user. The referenced subject must
// exist and belong to the same user.
func (s *TaskService) Create(ctx context.Context, actor *domain.User, input TaskCreateInput) (*domain.Task, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	if input.Type != nil && !domain.ValidTaskType(*input.Type) {
		return nil, apperrors.NewValidationError("unknown task type", nil)
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.TaskPriorityStandard
	}
	if !domain.ValidTaskPriority(priority) {
		return nil, apperrors.NewValidationError("unknown priority", nil)
	}
	if err := s.checkSubject(ctx, actor, input.SubjectID); err != nil {
		return nil, err
	}

	task := &domain.Task{
		Name:        name,
		Description: input.Description,
		Deadline:    input.Deadline,
		Type:        input.Type,
		Priority:    priority,
		SubjectID:   input.SubjectID,
		UserID:      actor.ID,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:   events.EventTaskCreated,
		UserID: actor.ID,
		Payload: events.TaskCreatedPayload{
			TaskID:    task.ID,
			SubjectID: task.SubjectID,
			Name:      task.Name,
			Priority:  task.Priority,
			Deadline:  task.Deadline,
		},
	})
	return task, nil
}

// Get returns a single task, fetched first, then ownership-checked.
func (s *TaskService) Get(ctx context.Context, actor *domain.User, id string) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("task", nil)
		}
		return nil, err
	}
	if !auth.CanAccessItem(actor, task) {
		return nil, apperrors.NewForbidden("not enough permissions")
	}
	return task, nil
}

// List returns the acting user's tasks, filtered and ordered by deadline.
func (s *TaskService) List(ctx context.Context, actor *domain.User, filter TaskListFilter) ([]domain.Task, error) {
	repoFilter := repository.TaskFilter{
		UserID:       &actor.ID,
		SubjectID:    filter.SubjectID,
		Types:        filter.Types,
		Priorities:   filter.Priorities,
		DeadlineFrom: filter.DeadlineFrom,
		DeadlineTo:   filter.DeadlineTo,
		Limit:        filter.Limit,
		Offset:       filter.Offset,
	}
	return s.tasks.ListWithFilter(ctx, repoFilter)
}

// Update patches a task owned by the acting user.
func (s *TaskService) Update(ctx context.Context, actor *domain.User, id string, input TaskUpdateInput) (*domain.Task, error) {
	if input.Empty() {
		return nil, apperrors.NewValidationError("at least one field must be set", nil)
	}

	task, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name must not be empty", nil)
		}
		task.Name = name
	}
	if input.Description != nil {
		task.Description = input.Description
	}
	if input.Deadline != nil {
		task.Deadline = input.Deadline
	}
	if input.Type != nil {
		if !domain.ValidTaskType(*input.Type) {
			return nil, apperrors.NewValidationError("unknown task type", nil)
		}
		task.Type = input.Type
	}
	if input.Priority != nil {
		if !domain.ValidTaskPriority(*input.Priority) {
			return nil, apperrors.NewValidationError("unknown priority", nil)
		}
		task.Priority = *input.Priority
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("task", nil)
		}
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:   events.EventTaskUpdated,
		UserID: actor.ID,
		Payload: events.TaskUpdatedPayload{
			TaskID:   task.ID,
			Name:     task.Name,
			Deadline: task.Deadline,
		},
	})
	return task, nil
}

// Delete removes a task owned by the acting user.
func (s *TaskService) Delete(ctx context.Context, actor *domain.User, id string) error {
	task, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("task", nil)
		}
		return err
	}

	s.publish(ctx, events.Event{
		Type:   events.EventTaskDeleted,
		UserID: actor.ID,
		Payload: events.TaskDeletedPayload{
			TaskID:    task.ID,
			SubjectID: task.SubjectID,
		},
	})
	return nil
}

func (s *TaskService) checkSubject(ctx context.Context, actor *domain.User, subjectID string) error {
	subject, err := s.subjects.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("subject", nil)
		}
		return err
	}
	if !auth.CanAccessItem(actor, subject) {
		return apperrors.NewForbidden("not enough permissions")
	}
	return nil
}

func (s *TaskService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
