package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/labtracker-service/internal/api/dto"
	"github.com/spec-kit/labtracker-service/internal/auth"
	"github.com/spec-kit/labtracker-service/internal/service"
	apperrors "github.com/spec-kit/labtracker-service/pkg/util"
)

// TeachersHandler manages teacher endpoints.
type TeachersHandler struct {
	service *service.TeacherService
}

// NewTeachersHandler constructs handler.
func NewTeachersHandler(teacherService *service.TeacherService) *TeachersHandler {
	return &TeachersHandler{service: teacherService}
}

// Create POST /teachers.
func (h *TeachersHandler) Create(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.TeacherCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	teacher, err := h.service.Create(c.Context(), actor, service.TeacherCreateInput{
		Name:        req.Name,
		Surname:     req.Surname,
		FatherName:  req.FatherName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTeacherResponse(teacher)})
}

// List GET /teachers.
func (h *TeachersHandler) List(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	teachers, err := h.service.List(c.Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTeacherListResponse(teachers)})
}

// Get GET /teachers/:teacher_id.
func (h *TeachersHandler) Get(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	teacher, err := h.service.Get(c.Context(), actor, c.Params("teacher_id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTeacherResponse(teacher)})
}

// Delete DELETE /teachers/:teacher_id.
func (h *TeachersHandler) Delete(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	teacherID := c.Params("teacher_id")
	if err := h.service.Delete(c.Context(), actor, teacherID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": teacherID}})
}
