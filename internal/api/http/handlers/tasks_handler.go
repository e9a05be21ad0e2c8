package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/labtracker-service/internal/api/dto"
	"github.com/spec-kit/labtracker-service/internal/auth"
	"github.com/spec-kit/labtracker-service/internal/domain"
	"github.com/spec-kit/labtracker-service/internal/service"
	apperrors "github.com/spec-kit/labtracker-service/pkg/util"
)

// TasksHandler manages task endpoints.
type TasksHandler struct {
	service *service.TaskService
}

// NewTasksHandler constructs handler.
func NewTasksHandler(taskService *service.TaskService) *TasksHandler {
	return &TasksHandler{service: taskService}
}

// Create POST /tasks.
func (h *TasksHandler) Create(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.TaskCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.SubjectID == "" {
		return apperrors.NewValidationError("subject_id required", nil)
	}

	task, err := h.service.Create(c.Context(), actor, service.TaskCreateInput{
		Name:        req.Name,
		Description: req.Description,
		Deadline:    req.Deadline,
		Type:        req.Type,
		Priority:    req.Priority,
		SubjectID:   req.SubjectID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTaskResponse(task)})
}

// List GET /tasks.
func (h *TasksHandler) List(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	tasks, err := h.service.List(c.Context(), actor, parseTaskQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTaskListResponse(tasks)})
}

// Get GET /tasks/:task_id.
func (h *TasksHandler) Get(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	task, err := h.service.Get(c.Context(), actor, c.Params("task_id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTaskResponse(task)})
}

// Update PATCH /tasks/:task_id.
func (h *TasksHandler) Update(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.TaskUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	task, err := h.service.Update(c.Context(), actor, c.Params("task_id"), service.TaskUpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Deadline:    req.Deadline,
		Type:        req.Type,
		Priority:    req.Priority,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTaskResponse(task)})
}

// Delete DELETE /tasks/:task_id.
func (h *TasksHandler) Delete(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	taskID := c.Params("task_id")
	if err := h.service.Delete(c.Context(), actor, taskID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": taskID}})
}

func parseTaskQuery(c *fiber.Ctx) service.TaskListFilter {
	filter := service.TaskListFilter{}
	if subjectID := c.Query("subject_id"); subjectID != "" {
		filter.SubjectID = &subjectID
	}
	if typeStr := c.Query("type"); typeStr != "" {
		for _, part := range strings.Split(typeStr, ",") {
			filter.Types = append(filter.Types, domain.TaskType(strings.TrimSpace(part)))
		}
	}
	if priorityStr := c.Query("priority"); priorityStr != "" {
		for _, part := range strings.Split(priorityStr, ",") {
			filter.Priorities = append(filter.Priorities, domain.TaskPriority(strings.TrimSpace(part)))
		}
	}
	if from := parseTime(c.Query("deadline_from")); from != nil {
		filter.DeadlineFrom = from
	}
	if to := parseTime(c.Query("deadline_to")); to != nil {
		filter.DeadlineTo = to
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 50)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseTime(val string) *time.Time {
	if val == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return nil
	}
	return &t
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
