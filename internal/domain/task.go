package domain

import "time"

// TaskType classifies a piece of academic work.
type TaskType string

const (
	TaskTypeLab          TaskType = "Lab"
	TaskTypeCoursework   TaskType = "Coursework"
	TaskTypeReport       TaskType = "Report"
	TaskTypePresentation TaskType = "Presentation"
	TaskTypeTypical      TaskType = "Typical"
)

// TaskPriority orders tasks by urgency.
type TaskPriority string

const (
	TaskPriorityStandard TaskPriority = "Standard"
	TaskPriorityMedium   TaskPriority = "Medium"
	TaskPriorityHigh     TaskPriority = "High"
)

// Task is a unit of academic work tied to a subject.
type Task struct {
	ID          string
	Name        string
	Description *string
	Deadline    *time.Time
	Type        *TaskType
	Priority    TaskPriority
	SubjectID   string
	UserID      string
}

// OwnerID returns the owning account id.
func (t *Task) OwnerID() string {
	return t.UserID
}

// ValidTaskType reports whether the value is a known task type.
func ValidTaskType(t TaskType) bool {
	switch t {
	case TaskTypeLab, TaskTypeCoursework, TaskTypeReport, TaskTypePresentation, TaskTypeTypical:
		return true
	}
	return false
}

// ValidTaskPriority reports whether the value is a known priority.
func ValidTaskPriority(p TaskPriority) bool {
	switch p {
	case TaskPriorityStandard, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}
