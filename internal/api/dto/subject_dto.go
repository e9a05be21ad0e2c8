package dto

import "github.com/spec-kit/labtracker-service/internal/domain"

// SubjectCreateRequest payload for new subjects.
type SubjectCreateRequest struct {
	Name      string `json:"name"`
	Course    *int16 `json:"course"`
	TeacherID string `json:"teacher_id"`
}

// SubjectUpdateRequest payload for partial subject updates.
type SubjectUpdateRequest struct {
	Name      *string `json:"name"`
	Course    *int16  `json:"course"`
	TeacherID *string `json:"teacher_id"`
}

// SubjectResponse is the outward shape of a subject entry.
type SubjectResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Course     *int16 `json:"course,omitempty"`
	TeacherID  string `json:"teacher_id"`
	TasksCount int    `json:"tasks_count"`
}

// NewSubjectResponse maps a domain subject.
func NewSubjectResponse(subject *domain.Subject) SubjectResponse {
	return SubjectResponse{
		ID:         subject.ID,
		Name:       subject.Name,
		Course:     subject.Course,
		TeacherID:  subject.TeacherID,
		TasksCount: subject.TasksCount,
	}
}

// NewSubjectListResponse maps a slice of domain subjects.
func NewSubjectListResponse(subjects []domain.Subject) []SubjectResponse {
	out := make([]SubjectResponse, len(subjects))
	for i := range subjects {
		out[i] = NewSubjectResponse(&subjects[i])
	}
	return out
}
