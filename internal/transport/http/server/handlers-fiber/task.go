package handlers_fiber

import (
	"fmt"
	"net/http"

	"team-task-manager/internal/dto"
	"team-task-manager/internal/entities"
	"team-task-manager/internal/mapper"

	"github.com/gofiber/fiber/v2"
)

// CreateTask creates a pending task owned by an existing team.
func (h *Handler) CreateTask(c *fiber.Ctx) error {
	var body dto.CreateTaskRequest
	if err := c.BodyParser(&body); err != nil {
		return invalidBody(c)
	}

	task := entities.Task{
		Title:       body.Title,
		Description: body.Description,
		TeamID:      body.TeamID,
		AssigneeID:  body.AssigneeID,
		DueDate:     body.DueDate,
	}
	if body.Priority != nil {
		task.Priority = entities.TaskPriority(*body.Priority)
	}

	created, err := h.uc.CreateTask(c.Context(), task)
	if err != nil {
		h.log.Infow("failed to create task", "error", err.Error())
		return writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(mapper.ToDTOTask(*created))
}

// ListTasks returns joined task rows matching every provided filter.
func (h *Handler) ListTasks(c *fiber.Ctx) error {
	filter := entities.TaskFilter{
		Skip:  c.QueryInt("skip", 0),
		Limit: c.QueryInt("limit", 100),
	}
	if raw := c.Query("team_id"); raw != "" {
		teamID := int64(c.QueryInt("team_id"))
		filter.TeamID = &teamID
	}
	if raw := c.Query("assignee_id"); raw != "" {
		assigneeID := int64(c.QueryInt("assignee_id"))
		filter.AssigneeID = &assigneeID
	}
	if raw := c.Query("status"); raw != "" {
		status := entities.TaskStatus(raw)
		filter.Status = &status
	}
	if raw := c.Query("priority"); raw != "" {
		priority := entities.TaskPriority(raw)
		filter.Priority = &priority
	}
	if search := c.Query("search"); search != "" {
		filter.Search = &search
	}

	tasks, err := h.uc.ListTasks(c.Context(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToDTOTaskDetailsList(tasks))
}

// GetTask returns a task with team and assignee details.
func (h *Handler) GetTask(c *fiber.Ctx) error {
	taskID, err := paramID(c, "id")
	if err != nil {
		return invalidParam(c, "task id")
	}

	task, err := h.uc.Task(c.Context(), taskID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToDTOTaskDetails(*task))
}

// UpdateTask updates supplied fields of a task, applying the completed_at
// transition rule on status changes.
func (h *Handler) UpdateTask(c *fiber.Ctx) error {
	taskID, err := paramID(c, "id")
	if err != nil {
		return invalidParam(c, "task id")
	}

	var body dto.UpdateTaskRequest
	if err := c.BodyParser(&body); err != nil {
		return invalidBody(c)
	}

	update := entities.TaskUpdate{
		Title:       body.Title,
		Description: body.Description,
		AssigneeID:  body.AssigneeID,
		DueDate:     body.DueDate,
	}
	if body.Status != nil {
		status := entities.TaskStatus(*body.Status)
		update.Status = &status
	}
	if body.Priority != nil {
		priority := entities.TaskPriority(*body.Priority)
		update.Priority = &priority
	}

	task, err := h.uc.UpdateTask(c.Context(), taskID, update)
	if err != nil {
		h.log.Infow("failed to update task", "error", err.Error(), "task_id", taskID)
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToDTOTask(*task))
}

// DeleteTask removes the task.
func (h *Handler) DeleteTask(c *fiber.Ctx) error {
	taskID, err := paramID(c, "id")
	if err != nil {
		return invalidParam(c, "task id")
	}

	task, err := h.uc.DeleteTask(c.Context(), taskID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(dto.DeleteResponse{
		Message: fmt.Sprintf("task %q deleted", task.Title),
		ID:      task.ID,
	})
}

// SetTaskStatus applies the status shortcut and reports old and new values.
func (h *Handler) SetTaskStatus(c *fiber.Ctx) error {
	taskID, err := paramID(c, "id")
	if err != nil {
		return invalidParam(c, "task id")
	}

	var body dto.SetStatusRequest
	if err := c.BodyParser(&body); err != nil {
		return invalidBody(c)
	}

	change, err := h.uc.SetTaskStatus(c.Context(), taskID, entities.TaskStatus(body.Status))
	if err != nil {
		h.log.Infow("failed to set task status", "error", err.Error(), "task_id", taskID)
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(dto.StatusChangeResponse{
		Message:   fmt.Sprintf("status changed from %q to %q", change.OldStatus, change.NewStatus),
		TaskID:    change.TaskID,
		OldStatus: string(change.OldStatus),
		NewStatus: string(change.NewStatus),
	})
}

// AssignTask assigns a task to an existing user.
func (h *Handler) AssignTask(c *fiber.Ctx) error {
	taskID, err := paramID(c, "id")
	if err != nil {
		return invalidParam(c, "task id")
	}
	userID, err := paramID(c, "user_id")
	if err != nil {
		return invalidParam(c, "user id")
	}

	task, err := h.uc.AssignTask(c.Context(), taskID, userID)
	if err != nil {
		h.log.Infow("failed to assign task", "error", err.Error(), "task_id", taskID, "user_id", userID)
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(dto.AssignResponse{
		Message: fmt.Sprintf("task %q assigned to user %d", task.Title, userID),
		TaskID:  task.ID,
		UserID:  userID,
	})
}

// TaskStatsGeneral returns the task total plus per-status and per-priority
// counts.
func (h *Handler) TaskStatsGeneral(c *fiber.Ctx) error {
	stats, err := h.uc.TaskStats(c.Context())
	if err != nil {
		h.log.Errorw("failed to get task stats", "error", err.Error())
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(stats)
}
