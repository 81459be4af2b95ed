// Package domain contains application Usecases orchestrating domain logic by task.
package domain

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"team-task-manager/internal/entities"
)

const (
	taskTitleMinLen = 3
	taskTitleMaxLen = 200
	taskDescMaxLen  = 2000
)

func validateTaskTitle(title string) error {
	n := utf8.RuneCountInString(title)
	if n < taskTitleMinLen || n > taskTitleMaxLen {
		return fmt.Errorf("%w: title must be %d-%d characters", entities.ErrInvalidArgument, taskTitleMinLen, taskTitleMaxLen)
	}
	return nil
}

func validateTaskDescription(description *string) error {
	if description != nil && utf8.RuneCountInString(*description) > taskDescMaxLen {
		return fmt.Errorf("%w: description must be at most %d characters", entities.ErrInvalidArgument, taskDescMaxLen)
	}
	return nil
}

func validateStatus(status entities.TaskStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", entities.ErrInvalidArgument, status)
	}
	return nil
}

func validatePriority(priority entities.TaskPriority) error {
	if !priority.Valid() {
		return fmt.Errorf("%w: unknown priority %q", entities.ErrInvalidArgument, priority)
	}
	return nil
}

// CreateTask creates a pending task owned by an existing team.
func (u *Usecase) CreateTask(ctx context.Context, task entities.Task) (*entities.Task, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	task.Title = strings.TrimSpace(task.Title)
	if err := validateTaskTitle(task.Title); err != nil {
		u.log.Errorw("failed to create task: invalid title")
		return nil, err
	}
	if err := validateTaskDescription(task.Description); err != nil {
		return nil, err
	}
	if task.Priority == "" {
		task.Priority = entities.PriorityMedium
	}
	if err := validatePriority(task.Priority); err != nil {
		return nil, err
	}
	res, err := u.repo.CreateTask(ctx, task)
	if err != nil {
		return nil, err
	}
	u.log.Infow("task create", "task_id", res.ID, "team_id", res.TeamID)
	return res, nil
}

// ListTasks returns joined task rows matching every provided filter.
func (u *Usecase) ListTasks(ctx context.Context, filter entities.TaskFilter) ([]entities.TaskDetails, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if filter.Status != nil {
		if err := validateStatus(*filter.Status); err != nil {
			return nil, err
		}
	}
	if filter.Priority != nil {
		if err := validatePriority(*filter.Priority); err != nil {
			return nil, err
		}
	}
	filter.Skip, filter.Limit = normalizeWindow(filter.Skip, filter.Limit)
	return u.repo.ListTasks(ctx, filter)
}

// Task returns a task with team and assignee details.
func (u *Usecase) Task(ctx context.Context, taskID int64) (*entities.TaskDetails, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.repo.GetTask(ctx, taskID)
}

// UpdateTask updates supplied fields, stamping or clearing completed_at on
// status transitions.
func (u *Usecase) UpdateTask(ctx context.Context, taskID int64, update entities.TaskUpdate) (*entities.Task, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if update.Title != nil {
		trimmed := strings.TrimSpace(*update.Title)
		if err := validateTaskTitle(trimmed); err != nil {
			return nil, err
		}
		update.Title = &trimmed
	}
	if err := validateTaskDescription(update.Description); err != nil {
		return nil, err
	}
	if update.Status != nil {
		if err := validateStatus(*update.Status); err != nil {
			return nil, err
		}
	}
	if update.Priority != nil {
		if err := validatePriority(*update.Priority); err != nil {
			return nil, err
		}
	}
	return u.repo.UpdateTask(ctx, taskID, update)
}

// DeleteTask removes the task.
func (u *Usecase) DeleteTask(ctx context.Context, taskID int64) (*entities.Task, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.repo.DeleteTask(ctx, taskID)
}

// SetTaskStatus applies the status shortcut and reports old and new values.
func (u *Usecase) SetTaskStatus(ctx context.Context, taskID int64, status entities.TaskStatus) (*entities.StatusChange, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := validateStatus(status); err != nil {
		return nil, err
	}
	return u.repo.SetTaskStatus(ctx, taskID, status)
}

// AssignTask assigns a task to an existing user unconditionally.
func (u *Usecase) AssignTask(ctx context.Context, taskID, userID int64) (*entities.Task, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.repo.AssignTask(ctx, taskID, userID)
}

// TaskStats returns totals grouped by status and priority.
func (u *Usecase) TaskStats(ctx context.Context) (entities.TaskStats, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.repo.TaskStats(ctx)
}
