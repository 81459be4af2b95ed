package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"team-task-manager/internal/entities"
	"team-task-manager/internal/metrics"

	"github.com/jackc/pgx/v5"
)

const (
	insertTaskQuery = `
INSERT INTO tasks(title, description, status, priority, team_id, assignee_id, due_date)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, title, description, status, priority, team_id, assignee_id,
          created_at, updated_at, due_date, completed_at`
	taskDetailsColumns = `
SELECT tk.id, tk.title, tk.description, tk.status, tk.priority, tk.team_id, tk.assignee_id,
       tk.created_at, tk.updated_at, tk.due_date, tk.completed_at,
       t.name, u.name, u.email
FROM tasks tk
JOIN teams t ON t.id = tk.team_id
LEFT JOIN users u ON u.id = tk.assignee_id`
	selectTaskDetailsQuery = taskDetailsColumns + `
WHERE tk.id = $1`
	// updateTaskQuery stamps completed_at on the transition into completed
	// only when it is still unset, and clears it on any other status value.
	// A NULL status parameter leaves both status and completed_at untouched.
	updateTaskQuery = `
UPDATE tasks
SET title = COALESCE($2, title),
    description = COALESCE($3, description),
    status = COALESCE($4, status),
    priority = COALESCE($5, priority),
    assignee_id = COALESCE($6, assignee_id),
    due_date = COALESCE($7, due_date),
    completed_at = CASE
        WHEN $4::text IS NULL THEN completed_at
        WHEN $4::text = 'completed' THEN COALESCE(completed_at, now())
        ELSE NULL
    END,
    updated_at = now()
WHERE id = $1
RETURNING id, title, description, status, priority, team_id, assignee_id,
          created_at, updated_at, due_date, completed_at`
	deleteTaskQuery = `
DELETE FROM tasks WHERE id=$1
RETURNING id, title, description, status, priority, team_id, assignee_id,
          created_at, updated_at, due_date, completed_at`
	selectTaskStatusQuery = `SELECT status FROM tasks WHERE id=$1 FOR UPDATE`
	setTaskStatusQuery    = `
UPDATE tasks
SET status = $2,
    completed_at = CASE
        WHEN $2::text = 'completed' THEN COALESCE(completed_at, now())
        ELSE NULL
    END,
    updated_at = now()
WHERE id = $1`
	assignTaskQuery = `
UPDATE tasks
SET assignee_id = $2, updated_at = now()
WHERE id = $1
RETURNING id, title, description, status, priority, team_id, assignee_id,
          created_at, updated_at, due_date, completed_at`
	countTasksQuery      = `SELECT COUNT(*) FROM tasks`
	tasksByStatusQuery   = `SELECT status, COUNT(*) FROM tasks GROUP BY status`
	tasksByPriorityQuery = `SELECT priority, COUNT(*) FROM tasks GROUP BY priority`
)

func scanTask(row pgx.Row, t *entities.Task) error {
	return row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.TeamID,
		&t.AssigneeID, &t.CreatedAt, &t.UpdatedAt, &t.DueDate, &t.CompletedAt)
}

// CreateTask inserts a pending task after resolving its team and, when
// given, its assignee.
func (p *Postgres) CreateTask(ctx context.Context, task entities.Task) (*entities.Task, error) {
	start := time.Now()

	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool
	if err := tx.QueryRow(ctx, teamExistsQuery, task.TeamID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("team lookup: %w", err)
	}
	if !exists {
		return nil, entities.ErrTeamNotFound
	}
	if task.AssigneeID != nil {
		if err := tx.QueryRow(ctx, userExistsQuery, *task.AssigneeID).Scan(&exists); err != nil {
			return nil, fmt.Errorf("assignee lookup: %w", err)
		}
		if !exists {
			return nil, entities.ErrUserNotFound
		}
	}

	var created entities.Task
	row := tx.QueryRow(ctx, insertTaskQuery,
		task.Title, task.Description, entities.StatusPending, task.Priority,
		task.TeamID, task.AssigneeID, task.DueDate)
	if err := scanTask(row, &created); err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	err = tx.Commit(ctx)
	metrics.ObserveOp("task_create", start, err)
	if err != nil {
		return nil, err
	}

	p.log.Infow("task created", "task_id", created.ID, "team_id", created.TeamID)
	return &created, nil
}

func buildTaskFilter(filter entities.TaskFilter) (string, []any) {
	conds := make([]string, 0, 5)
	args := make([]any, 0, 7)

	if filter.TeamID != nil {
		args = append(args, *filter.TeamID)
		conds = append(conds, fmt.Sprintf("tk.team_id = $%d", len(args)))
	}
	if filter.AssigneeID != nil {
		args = append(args, *filter.AssigneeID)
		conds = append(conds, fmt.Sprintf("tk.assignee_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conds = append(conds, fmt.Sprintf("tk.status = $%d", len(args)))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		conds = append(conds, fmt.Sprintf("tk.priority = $%d", len(args)))
	}
	if filter.Search != nil {
		args = append(args, "%"+*filter.Search+"%")
		conds = append(conds, fmt.Sprintf("(tk.title ILIKE $%d OR tk.description ILIKE $%d)", len(args), len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListTasks returns the joined task rows matching every provided filter.
func (p *Postgres) ListTasks(ctx context.Context, filter entities.TaskFilter) ([]entities.TaskDetails, error) {
	where, args := buildTaskFilter(filter)

	var sb strings.Builder
	sb.WriteString(taskDetailsColumns)
	sb.WriteString(where)
	sb.WriteString(" ORDER BY tk.id")
	args = append(args, filter.Skip)
	fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	args = append(args, filter.Limit)
	fmt.Fprintf(&sb, " LIMIT $%d", len(args))

	rows, err := p.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]entities.TaskDetails, 0)
	for rows.Next() {
		var td entities.TaskDetails
		err := rows.Scan(&td.ID, &td.Title, &td.Description, &td.Status, &td.Priority,
			&td.TeamID, &td.AssigneeID, &td.CreatedAt, &td.UpdatedAt, &td.DueDate,
			&td.CompletedAt, &td.TeamName, &td.AssigneeName, &td.AssigneeEmail)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, td)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}

	return tasks, nil
}

// GetTask fetches a task with team and assignee details.
func (p *Postgres) GetTask(ctx context.Context, taskID int64) (*entities.TaskDetails, error) {
	var td entities.TaskDetails
	err := p.db.QueryRow(ctx, selectTaskDetailsQuery, taskID).
		Scan(&td.ID, &td.Title, &td.Description, &td.Status, &td.Priority,
			&td.TeamID, &td.AssigneeID, &td.CreatedAt, &td.UpdatedAt, &td.DueDate,
			&td.CompletedAt, &td.TeamName, &td.AssigneeName, &td.AssigneeEmail)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &td, nil
}

// UpdateTask applies supplied fields with the completed_at transition rule.
// A supplied assignee must resolve to an existing user.
func (p *Postgres) UpdateTask(ctx context.Context, taskID int64, update entities.TaskUpdate) (*entities.Task, error) {
	start := time.Now()

	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if update.AssigneeID != nil {
		var exists bool
		if err := tx.QueryRow(ctx, userExistsQuery, *update.AssigneeID).Scan(&exists); err != nil {
			return nil, fmt.Errorf("assignee lookup: %w", err)
		}
		if !exists {
			return nil, entities.ErrUserNotFound
		}
	}

	var t entities.Task
	row := tx.QueryRow(ctx, updateTaskQuery, taskID,
		update.Title, update.Description, update.Status, update.Priority,
		update.AssigneeID, update.DueDate)
	if err := scanTask(row, &t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}

	err = tx.Commit(ctx)
	metrics.ObserveOp("task_update", start, err)
	if err != nil {
		return nil, err
	}

	p.log.Infow("task updated", "task_id", t.ID)
	return &t, nil
}

// DeleteTask removes the task.
func (p *Postgres) DeleteTask(ctx context.Context, taskID int64) (*entities.Task, error) {
	start := time.Now()

	var t entities.Task
	err := scanTask(p.db.QueryRow(ctx, deleteTaskQuery, taskID), &t)
	metrics.ObserveOp("task_delete", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("delete task: %w", err)
	}

	p.log.Infow("task deleted", "task_id", t.ID)
	return &t, nil
}

// SetTaskStatus mutates only the status, applying the completed_at rule,
// and reports the previous and new values.
func (p *Postgres) SetTaskStatus(ctx context.Context, taskID int64, status entities.TaskStatus) (*entities.StatusChange, error) {
	start := time.Now()

	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var old entities.TaskStatus
	if err := tx.QueryRow(ctx, selectTaskStatusQuery, taskID).Scan(&old); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("status lookup: %w", err)
	}

	if _, err := tx.Exec(ctx, setTaskStatusQuery, taskID, status); err != nil {
		return nil, fmt.Errorf("set status: %w", err)
	}

	err = tx.Commit(ctx)
	metrics.ObserveOp("task_set_status", start, err)
	if err != nil {
		return nil, err
	}

	p.log.Infow("task status changed", "task_id", taskID, "old", old, "new", status)
	return &entities.StatusChange{TaskID: taskID, OldStatus: old, NewStatus: status}, nil
}

// AssignTask sets the assignee unconditionally after resolving the user.
func (p *Postgres) AssignTask(ctx context.Context, taskID, userID int64) (*entities.Task, error) {
	start := time.Now()

	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool
	if err := tx.QueryRow(ctx, userExistsQuery, userID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("user lookup: %w", err)
	}
	if !exists {
		return nil, entities.ErrUserNotFound
	}

	var t entities.Task
	if err := scanTask(tx.QueryRow(ctx, assignTaskQuery, taskID, userID), &t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("assign task: %w", err)
	}

	err = tx.Commit(ctx)
	metrics.ObserveOp("task_assign", start, err)
	if err != nil {
		return nil, err
	}

	p.log.Infow("task assigned", "task_id", taskID, "user_id", userID)
	return &t, nil
}

// TaskStats returns the task total plus counts grouped by status and
// priority.
func (p *Postgres) TaskStats(ctx context.Context) (entities.TaskStats, error) {
	res := entities.TaskStats{
		ByStatus:   make(map[entities.TaskStatus]int64),
		ByPriority: make(map[entities.TaskPriority]int64),
	}

	if err := p.db.QueryRow(ctx, countTasksQuery).Scan(&res.TotalTasks); err != nil {
		return res, fmt.Errorf("count tasks: %w", err)
	}

	rows, err := p.db.Query(ctx, tasksByStatusQuery)
	if err != nil {
		return res, fmt.Errorf("stats by status: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status entities.TaskStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return res, fmt.Errorf("scan status stat: %w", err)
		}
		res.ByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return res, fmt.Errorf("iterate status stat: %w", err)
	}

	rows2, err := p.db.Query(ctx, tasksByPriorityQuery)
	if err != nil {
		return res, fmt.Errorf("stats by priority: %w", err)
	}
	defer rows2.Close()
	for rows2.Next() {
		var priority entities.TaskPriority
		var count int64
		if err := rows2.Scan(&priority, &count); err != nil {
			return res, fmt.Errorf("scan priority stat: %w", err)
		}
		res.ByPriority[priority] = count
	}
	if err := rows2.Err(); err != nil {
		return res, fmt.Errorf("iterate priority stat: %w", err)
	}

	return res, nil
}
