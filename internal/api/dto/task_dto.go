package dto

import (
	"time"

	"github.com/spec-kit/labtracker-service/internal/domain"
)

// TaskCreateRequest payload for new tasks.
type TaskCreateRequest struct {
	Name        string               `json:"name"`
	Description *string              `json:"description"`
	Deadline    *time.Time           `json:"deadline"`
	Type        *domain.TaskType     `json:"type"`
	Priority    domain.TaskPriority  `json:"priority"`
	SubjectID   string               `json:"subject_id"`
}

// TaskUpdateRequest payload for partial task updates.
type TaskUpdateRequest struct {
	Name        *string              `json:"name"`
	Description *string              `json:"description"`
	Deadline    *time.Time           `json:"deadline"`
	Type        *domain.TaskType     `json:"type"`
	Priority    *domain.TaskPriority `json:"priority"`
}

// TaskResponse is the outward shape of a task entry.
type TaskResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description *string             `json:"description,omitempty"`
	Deadline    *time.Time          `json:"deadline,omitempty"`
	Type        *domain.TaskType    `json:"type,omitempty"`
	Priority    domain.TaskPriority `json:"priority"`
	SubjectID   string              `json:"subject_id"`
}

// NewTaskResponse maps a domain task.
func NewTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		Deadline:    task.Deadline,
		Type:        task.Type,
		Priority:    task.Priority,
		SubjectID:   task.SubjectID,
	}
}

// NewTaskListResponse maps a slice of domain tasks.
func NewTaskListResponse(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i := range tasks {
		out[i] = NewTaskResponse(&tasks[i])
	}
	return out
}
