// Package dto defines transport request and response models.
package dto

import "time"

// ErrorCode is a machine-readable error discriminator.
type ErrorCode string

const (
	// CodeNotFound is returned when a referenced entity does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"
	// CodeTeamExists is returned on team name conflicts.
	CodeTeamExists ErrorCode = "TEAM_EXISTS"
	// CodeEmailExists is returned on user email conflicts.
	CodeEmailExists ErrorCode = "EMAIL_EXISTS"
	// CodeAlreadyInTeam is returned on duplicate membership.
	CodeAlreadyInTeam ErrorCode = "ALREADY_IN_TEAM"
	// CodeInvalidArgument is returned on validation failures.
	CodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// CodeInternal is returned on unexpected server errors.
	CodeInternal ErrorCode = "INTERNAL"
)

// ErrorResponse is the envelope for all error payloads.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries the error code and a descriptive message.
type ErrorBody struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// Team is the transport representation of a team.
type Team struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TeamWithStats extends Team with aggregate counts.
type TeamWithStats struct {
	Team
	TotalMembers int64 `json:"total_members"`
	TotalTasks   int64 `json:"total_tasks"`
}

// CreateTeamRequest is the body of POST /teams/.
type CreateTeamRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// UpdateTeamRequest is the body of PUT /teams/{id}; absent fields stay unchanged.
type UpdateTeamRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// User is the transport representation of a user.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateUserRequest is the body of POST /users/. Active defaults to true
// when omitted.
type CreateUserRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Active *bool  `json:"active"`
}

// UpdateUserRequest is the body of PUT /users/{id}.
type UpdateUserRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Active *bool   `json:"active"`
}

// UserTeam is one membership row joined with its team.
type UserTeam struct {
	TeamID      int64     `json:"team_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Role        string    `json:"role"`
	JoinedAt    time.Time `json:"joined_at"`
}

// UserTeamsResponse is the body of GET /users/{id}/teams.
type UserTeamsResponse struct {
	User       User       `json:"user"`
	Teams      []UserTeam `json:"teams"`
	TotalTeams int        `json:"total_teams"`
}

// MembershipResponse confirms POST /users/{id}/teams/{team_id}.
type MembershipResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
	TeamID  int64  `json:"team_id"`
	Role    string `json:"role"`
}

// RemoveMembershipResponse confirms DELETE /users/{id}/teams/{team_id}.
type RemoveMembershipResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
	TeamID  int64  `json:"team_id"`
}

// Task is the transport representation of a task.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	TeamID      int64      `json:"team_id"`
	AssigneeID  *int64     `json:"assignee_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DueDate     *time.Time `json:"due_date"`
	CompletedAt *time.Time `json:"completed_at"`
}

// TaskDetails extends Task with team and assignee identity from the
// joined listing shape.
type TaskDetails struct {
	Task
	TeamName      string  `json:"team_name"`
	AssigneeName  *string `json:"assignee_name"`
	AssigneeEmail *string `json:"assignee_email"`
}

// CreateTaskRequest is the body of POST /tasks/.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	TeamID      int64      `json:"team_id"`
	AssigneeID  *int64     `json:"assignee_id"`
}

// UpdateTaskRequest is the body of PUT /tasks/{id}.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	AssigneeID  *int64     `json:"assignee_id"`
	DueDate     *time.Time `json:"due_date"`
}

// SetStatusRequest is the body of PATCH /tasks/{id}/status.
type SetStatusRequest struct {
	Status string `json:"status"`
}

// StatusChangeResponse reports the status shortcut outcome.
type StatusChangeResponse struct {
	Message   string `json:"message"`
	TaskID    int64  `json:"task_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// AssignResponse confirms PATCH /tasks/{id}/assign/{user_id}.
type AssignResponse struct {
	Message string `json:"message"`
	TaskID  int64  `json:"task_id"`
	UserID  int64  `json:"user_id"`
}

// DeleteResponse confirms entity deletion.
type DeleteResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}
