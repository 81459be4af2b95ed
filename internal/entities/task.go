// Package entities contains core business entities.
package entities

import "time"

// TaskStatus enumerates task lifecycle states.
type TaskStatus string

const (
	// StatusPending marks a task as not yet started.
	StatusPending TaskStatus = "pending"
	// StatusInProgress marks a task as being worked on.
	StatusInProgress TaskStatus = "in_progress"
	// StatusCompleted marks a task as done.
	StatusCompleted TaskStatus = "completed"
	// StatusCancelled marks a task as abandoned.
	StatusCancelled TaskStatus = "cancelled"
)

// Valid reports whether the status is one of the known values.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// TaskPriority enumerates task urgency values.
type TaskPriority string

const (
	// PriorityLow marks a low urgency task.
	PriorityLow TaskPriority = "low"
	// PriorityMedium is the default urgency.
	PriorityMedium TaskPriority = "medium"
	// PriorityHigh marks a high urgency task.
	PriorityHigh TaskPriority = "high"
	// PriorityUrgent marks the highest urgency.
	PriorityUrgent TaskPriority = "urgent"
)

// Valid reports whether the priority is one of the known values.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Task is a unit of work owned by exactly one team, optionally assigned
// to one user.
type Task struct {
	ID          int64
	Title       string
	Description *string
	Status      TaskStatus
	Priority    TaskPriority
	TeamID      int64
	AssigneeID  *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DueDate     *time.Time
	CompletedAt *time.Time
}

// TaskDetails is a task joined with its team name and assignee identity.
// Assignee fields are nil when the task is unassigned.
type TaskDetails struct {
	Task
	TeamName      string
	AssigneeName  *string
	AssigneeEmail *string
}

// TaskFilter limits task listings. All provided filters apply conjunctively.
type TaskFilter struct {
	Skip       int
	Limit      int
	TeamID     *int64
	AssigneeID *int64
	Status     *TaskStatus
	Priority   *TaskPriority
	Search     *string
}

// TaskUpdate carries optional task fields; nil means leave unchanged.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	Priority    *TaskPriority
	AssigneeID  *int64
	DueDate     *time.Time
}

// StatusChange reports the outcome of a status shortcut mutation.
type StatusChange struct {
	TaskID    int64
	OldStatus TaskStatus
	NewStatus TaskStatus
}
