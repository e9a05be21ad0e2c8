package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/labtracker-service/internal/api/http/handlers"
	"github.com/spec-kit/labtracker-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Teachers       *handlers.TeachersHandler
	Subjects       *handlers.SubjectsHandler
	Tasks          *handlers.TasksHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	users := app.Group("/users")
	users.Post("/", cfg.Users.Register)
	users.Post("/auth", cfg.Users.Login)

	usersProtected := users.Group("", cfg.AuthMiddleware.Handle)
	usersProtected.Get("/me", cfg.Users.Me)
	usersProtected.Get("/:user_id", cfg.Users.Get)
	usersProtected.Patch("/:user_id", cfg.Users.Update)
	usersProtected.Delete("/:user_id", cfg.Users.Delete)

	teachers := app.Group("/teachers", cfg.AuthMiddleware.Handle)
	teachers.Post("/", cfg.Teachers.Create)
	teachers.Get("/", cfg.Teachers.List)
	teachers.Get("/:teacher_id", cfg.Teachers.Get)
	teachers.Delete("/:teacher_id", cfg.Teachers.Delete)

	subjects := app.Group("/subjects", cfg.AuthMiddleware.Handle)
	subjects.Post("/", cfg.Subjects.Create)
	subjects.Get("/", cfg.Subjects.List)
	subjects.Get("/:subject_id", cfg.Subjects.Get)
	subjects.Patch("/:subject_id", cfg.Subjects.Update)
	subjects.Delete("/:subject_id", cfg.Subjects.Delete)

	tasks := app.Group("/tasks", cfg.AuthMiddleware.Handle)
	tasks.Post("/", cfg.Tasks.Create)
	tasks.Get("/", cfg.Tasks.List)
	tasks.Get("/:task_id", cfg.Tasks.Get)
	tasks.Patch("/:task_id", cfg.Tasks.Update)
	tasks.Delete("/:task_id", cfg.Tasks.Delete)
}
