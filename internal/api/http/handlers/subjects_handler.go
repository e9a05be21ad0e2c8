package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/labtracker-service/internal/api/dto"
	"github.com/spec-kit/labtracker-service/internal/auth"
	"github.com/spec-kit/labtracker-service/internal/service"
	apperrors "github.com/spec-kit/labtracker-service/pkg/util"
)

// SubjectsHandler manages subject endpoints.
type SubjectsHandler struct {
	service *service.SubjectService
}

// NewSubjectsHandler constructs handler.
func NewSubjectsHandler(subjectService *service.SubjectService) *SubjectsHandler {
	return &SubjectsHandler{service: subjectService}
}

// Create POST /subjects.
func (h *SubjectsHandler) Create(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.SubjectCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.TeacherID == "" {
		return apperrors.NewValidationError("teacher_id required", nil)
	}

	subject, err := h.service.Create(c.Context(), actor, service.SubjectCreateInput{
		Name:      req.Name,
		Course:    req.Course,
		TeacherID: req.TeacherID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewSubjectResponse(subject)})
}

// List GET /subjects.
func (h *SubjectsHandler) List(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	subjects, err := h.service.List(c.Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSubjectListResponse(subjects)})
}

// Get GET /subjects/:subject_id.
func (h *SubjectsHandler) Get(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	subject, err := h.service.Get(c.Context(), actor, c.Params("subject_id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSubjectResponse(subject)})
}

// Update PATCH /subjects/:subject_id.
func (h *SubjectsHandler) Update(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.SubjectUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	subject, err := h.service.Update(c.Context(), actor, c.Params("subject_id"), service.SubjectUpdateInput{
		Name:      req.Name,
		Course:    req.Course,
		TeacherID: req.TeacherID,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSubjectResponse(subject)})
}

// Delete DELETE /subjects/:subject_id.
func (h *SubjectsHandler) Delete(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	subjectID := c.Params("subject_id")
	if err := h.service.Delete(c.Context(), actor, subjectID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": subjectID}})
}
