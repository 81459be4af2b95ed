// Package handlers_fiber wires HTTP delivery components.
package handlers_fiber

import (
	"team-task-manager/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves the HTTP API using service layer interfaces.
type Handler struct {
	log *zap.SugaredLogger
	uc  usecase.InterfaceUsecase
}

// NewHandler constructs an HTTP handler with service dependencies.
func NewHandler(log *zap.SugaredLogger, usecase usecase.InterfaceUsecase) *Handler {
	return &Handler{
		log: log,
		uc:  usecase,
	}
}

// Register mounts all API routes. Static stats segments are registered
// before the parameterized ones so they are not captured as ids.
func (h *Handler) Register(app *fiber.App) {
	teams := app.Group("/teams")
	teams.Post("/", h.CreateTeam)
	teams.Get("/", h.ListTeams)
	teams.Get("/stats/general", h.TeamStatsGeneral)
	teams.Get("/:id", h.GetTeam)
	teams.Get("/:id/stats", h.GetTeamStats)
	teams.Put("/:id", h.UpdateTeam)
	teams.Delete("/:id", h.DeleteTeam)

	users := app.Group("/users")
	users.Post("/", h.CreateUser)
	users.Get("/", h.ListUsers)
	users.Get("/:id", h.GetUser)
	users.Get("/:id/teams", h.GetUserTeams)
	users.Put("/:id", h.UpdateUser)
	users.Delete("/:id", h.DeleteUser)
	users.Post("/:id/teams/:team_id", h.AddUserToTeam)
	users.Delete("/:id/teams/:team_id", h.RemoveUserFromTeam)

	tasks := app.Group("/tasks")
	tasks.Post("/", h.CreateTask)
	tasks.Get("/", h.ListTasks)
	tasks.Get("/stats/general", h.TaskStatsGeneral)
	tasks.Get("/:id", h.GetTask)
	tasks.Put("/:id", h.UpdateTask)
	tasks.Delete("/:id", h.DeleteTask)
	tasks.Patch("/:id/status", h.SetTaskStatus)
	tasks.Patch("/:id/assign/:user_id", h.AssignTask)
}
