// Package repository contains repository interfaces for persistence layers.
package repository

import (
	"context"

	"team-task-manager/internal/entities"
)

// LifecycleInterface describes storage startup/shutdown hooks.
type LifecycleInterface interface {
	OnStart(_ context.Context) error
	OnStop(_ context.Context) error
}

// TeamInterface exposes team-related operations.
type TeamInterface interface {
	CreateTeam(ctx context.Context, name string, description *string) (*entities.Team, error)
	ListTeams(ctx context.Context, filter entities.TeamFilter) ([]entities.Team, error)
	GetTeam(ctx context.Context, teamID int64) (*entities.Team, error)
	GetTeamWithStats(ctx context.Context, teamID int64) (*entities.TeamWithStats, error)
	UpdateTeam(ctx context.Context, teamID int64, update entities.TeamUpdate) (*entities.Team, error)
	DeleteTeam(ctx context.Context, teamID int64) (*entities.Team, error)
	TeamStats(ctx context.Context) (entities.TeamStats, error)
}

// UserInterface exposes user-related operations.
type UserInterface interface {
	CreateUser(ctx context.Context, name, email string, active bool) (*entities.User, error)
	ListUsers(ctx context.Context, filter entities.UserFilter) ([]entities.User, error)
	GetUser(ctx context.Context, userID int64) (*entities.User, error)
	GetUserTeams(ctx context.Context, userID int64) (*entities.User, []entities.UserTeam, error)
	UpdateUser(ctx context.Context, userID int64, update entities.UserUpdate) (*entities.User, error)
	DeleteUser(ctx context.Context, userID int64) (*entities.User, error)
	AddUserToTeam(ctx context.Context, userID, teamID int64, role string) (*entities.Membership, error)
	RemoveUserFromTeam(ctx context.Context, userID, teamID int64) error
}

// TaskInterface exposes task-related operations.
type TaskInterface interface {
	CreateTask(ctx context.Context, task entities.Task) (*entities.Task, error)
	ListTasks(ctx context.Context, filter entities.TaskFilter) ([]entities.TaskDetails, error)
	GetTask(ctx context.Context, taskID int64) (*entities.TaskDetails, error)
	UpdateTask(ctx context.Context, taskID int64, update entities.TaskUpdate) (*entities.Task, error)
	DeleteTask(ctx context.Context, taskID int64) (*entities.Task, error)
	SetTaskStatus(ctx context.Context, taskID int64, status entities.TaskStatus) (*entities.StatusChange, error)
	AssignTask(ctx context.Context, taskID, userID int64) (*entities.Task, error)
	TaskStats(ctx context.Context) (entities.TaskStats, error)
}
