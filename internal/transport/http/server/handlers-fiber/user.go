package handlers_fiber

import (
	"fmt"
	"net/http"

	"team-task-manager/internal/dto"
	"team-task-manager/internal/entities"
	"team-task-manager/internal/mapper"

	"github.com/gofiber/fiber/v2"
)

// CreateUser creates a user with a unique email. Active defaults to true.
func (h *Handler) CreateUser(c *fiber.Ctx) error {
	var body dto.CreateUserRequest
	if err := c.BodyParser(&body); err != nil {
		return invalidBody(c)
	}

	active := true
	if body.Active != nil {
		active = *body.Active
	}

	user, err := h.uc.CreateUser(c.Context(), body.Name, body.Email, active)
	if err != nil {
		h.log.Infow("failed to create user", "error", err.Error())
		return writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(mapper.ToDTOUser(*user))
}

// ListUsers returns users with pagination and optional filters.
func (h *Handler) ListUsers(c *fiber.Ctx) error {
	filter := entities.UserFilter{
		Skip:  c.QueryInt("skip", 0),
		Limit: c.QueryInt("limit", 100),
	}
	if search := c.Query("search"); search != "" {
		filter.Search = &search
	}
	if raw := c.Query("active"); raw != "" {
		active := c.QueryBool("active")
		filter.Active = &active
	}

	users, err := h.uc.ListUsers(c.Context(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToDTOUserList(users))
}

// GetUser returns a user by id.
func (h *Handler) GetUser(c *fiber.Ctx) error {
	userID, err := paramID(c, "id")
	if err != nil {
		return invalidParam(c, "user id")
	}

	user, err := h.uc.User(c.Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToDTOUser(*user))
}

// GetUserTeams returns the user with the teams it belongs to.
func (h *Handler) GetUserTeams(c *fiber.Ctx) error {
	userID, err := paramID(c, "id")
	if err != nil {
		return invalidParam(c, "user id")
	}

	user, teams, err := h.uc.UserTeams(c.Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(dto.UserTeamsResponse{
		User:       mapper.ToDTOUser(*user),
		Teams:      mapper.ToDTOUserTeams(teams),
		TotalTeams: len(teams),
	})
}

// UpdateUser updates supplied fields of a user.
func (h *Handler) UpdateUser(c *fiber.Ctx) error {
	userID, err := paramID(c, "id")
	if err != nil {
		return invalidParam(c, "user id")
	}

	var body dto.UpdateUserRequest
	if err := c.BodyParser(&body); err != nil {
		return invalidBody(c)
	}

	user, err := h.uc.UpdateUser(c.Context(), userID, entities.UserUpdate{
		Name:   body.Name,
		Email:  body.Email,
		Active: body.Active,
	})
	if err != nil {
		h.log.Infow("failed to update user", "error", err.Error(), "user_id", userID)
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToDTOUser(*user))
}

// DeleteUser removes a user and its memberships; assigned tasks are
// released by the storage-level set-null policy.
func (h *Handler) DeleteUser(c *fiber.Ctx) error {
	userID, err := paramID(c, "id")
	if err != nil {
		return invalidParam(c, "user id")
	}

	user, err := h.uc.DeleteUser(c.Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(dto.DeleteResponse{
		Message: fmt.Sprintf("user %q deleted", user.Name),
		ID:      user.ID,
	})
}

// AddUserToTeam creates a membership; the role query param defaults to member.
func (h *Handler) AddUserToTeam(c *fiber.Ctx) error {
	userID, err := paramID(c, "id")
	if err != nil {
		return invalidParam(c, "user id")
	}
	teamID, err := paramID(c, "team_id")
	if err != nil {
		return invalidParam(c, "team id")
	}
	role := c.Query("role", entities.DefaultRole)

	m, err := h.uc.AddUserToTeam(c.Context(), userID, teamID, role)
	if err != nil {
		h.log.Infow("failed to add user to team", "error", err.Error(), "user_id", userID, "team_id", teamID)
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(dto.MembershipResponse{
		Message: fmt.Sprintf("user %d added to team %d as %s", m.UserID, m.TeamID, m.Role),
		UserID:  m.UserID,
		TeamID:  m.TeamID,
		Role:    m.Role,
	})
}

// RemoveUserFromTeam deletes the membership of the pair.
func (h *Handler) RemoveUserFromTeam(c *fiber.Ctx) error {
	userID, err := paramID(c, "id")
	if err != nil {
		return invalidParam(c, "user id")
	}
	teamID, err := paramID(c, "team_id")
	if err != nil {
		return invalidParam(c, "team id")
	}

	if err := h.uc.RemoveUserFromTeam(c.Context(), userID, teamID); err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(dto.RemoveMembershipResponse{
		Message: "user removed from team",
		UserID:  userID,
		TeamID:  teamID,
	})
}
