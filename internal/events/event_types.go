package events

import (
	"time"

	"github.com/spec-kit/labtracker-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventTaskCreated    EventType = "task_created"
	EventTaskUpdated    EventType = "task_updated"
	EventTaskDeleted    EventType = "task_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TaskCreatedPayload payload.
type TaskCreatedPayload struct {
	TaskID    string              `json:"task_id"`
	SubjectID string              `json:"subject_id"`
	Name      string              `json:"name"`
	Priority  domain.TaskPriority `json:"priority"`
	Deadline  *time.Time          `json:"deadline,omitempty"`
}

// TaskUpdatedPayload payload.
type TaskUpdatedPayload struct {
	TaskID   string     `json:"task_id"`
	Name     string     `json:"name"`
	Deadline *time.Time `json:"deadline,omitempty"`
}

// TaskDeletedPayload payload.
type TaskDeletedPayload struct {
	TaskID    string `json:"task_id"`
	SubjectID string `json:"subject_id"`
}
