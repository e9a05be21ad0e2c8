package dto

import "github.com/spec-kit/labtracker-service/internal/domain"

// TeacherCreateRequest payload for new teachers.
type TeacherCreateRequest struct {
	Name        string  `json:"name"`
	Surname     string  `json:"surname"`
	FatherName  *string `json:"father_name"`
	PhoneNumber *string `json:"phone_number"`
}

// TeacherResponse is the outward shape of a teacher entry.
type TeacherResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Surname     string  `json:"surname"`
	FatherName  *string `json:"father_name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

// NewTeacherResponse maps a domain teacher.
func NewTeacherResponse(teacher *domain.Teacher) TeacherResponse {
	return TeacherResponse{
		ID:          teacher.ID,
		Name:        teacher.Name,
		Surname:     teacher.Surname,
		FatherName:  teacher.FatherName,
		PhoneNumber: teacher.PhoneNumber,
	}
}

// NewTeacherListResponse maps a slice of domain teachers.
func NewTeacherListResponse(teachers []domain.Teacher) []TeacherResponse {
	out := make([]TeacherResponse, len(teachers))
	for i := range teachers {
		out[i] = NewTeacherResponse(&teachers[i])
	}
	return out
}
