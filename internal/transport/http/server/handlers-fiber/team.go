package handlers_fiber

import (
	"fmt"
	"net/http"

	"team-task-manager/internal/dto"
	"team-task-manager/internal/entities"
	"team-task-manager/internal/mapper"

	"github.com/gofiber/fiber/v2"
)

// CreateTeam creates a team with a unique name.
func (h *Handler) CreateTeam(c *fiber.Ctx) error {
	var body dto.CreateTeamRequest
	if err := c.BodyParser(&body); err != nil {
		return invalidBody(c)
	}

	team, err := h.uc.CreateTeam(c.Context(), body.Name, body.Description)
	if err != nil {
		h.log.Infow("failed to create team", "error", err.Error())
		return writeError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(mapper.ToDTOTeam(*team))
}

// ListTeams returns teams with pagination and optional name search.
func (h *Handler) ListTeams(c *fiber.Ctx) error {
	filter := entities.TeamFilter{
		Skip:  c.QueryInt("skip", 0),
		Limit: c.QueryInt("limit", 100),
	}
	if search := c.Query("search"); search != "" {
		filter.Search = &search
	}

	teams, err := h.uc.ListTeams(c.Context(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToDTOTeamList(teams))
}

// GetTeam returns a team by id.
func (h *Handler) GetTeam(c *fiber.Ctx) error {
	teamID, err := paramID(c, "id")
	if err != nil {
		return invalidParam(c, "team id")
	}

	team, err := h.uc.Team(c.Context(), teamID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToDTOTeam(*team))
}

// GetTeamStats returns a team plus member and task counts.
func (h *Handler) GetTeamStats(c *fiber.Ctx) error {
	teamID, err := paramID(c, "id")
	if err != nil {
		return invalidParam(c, "team id")
	}

	team, err := h.uc.TeamWithStats(c.Context(), teamID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToDTOTeamWithStats(*team))
}

// UpdateTeam updates supplied fields of a team.
func (h *Handler) UpdateTeam(c *fiber.Ctx) error {
	teamID, err := paramID(c, "id")
	if err != nil {
		return invalidParam(c, "team id")
	}

	var body dto.UpdateTeamRequest
	if err := c.BodyParser(&body); err != nil {
		return invalidBody(c)
	}

	team, err := h.uc.UpdateTeam(c.Context(), teamID, entities.TeamUpdate{
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		h.log.Infow("failed to update team", "error", err.Error(), "team_id", teamID)
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToDTOTeam(*team))
}

// DeleteTeam removes a team; its tasks and memberships cascade away.
func (h *Handler) DeleteTeam(c *fiber.Ctx) error {
	teamID, err := paramID(c, "id")
	if err != nil {
		return invalidParam(c, "team id")
	}

	team, err := h.uc.DeleteTeam(c.Context(), teamID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(dto.DeleteResponse{
		Message: fmt.Sprintf("team %q deleted", team.Name),
		ID:      team.ID,
	})
}

// TeamStatsGeneral returns aggregate counters across all teams.
func (h *Handler) TeamStatsGeneral(c *fiber.Ctx) error {
	stats, err := h.uc.TeamStats(c.Context())
	if err != nil {
		h.log.Errorw("failed to get team stats", "error", err.Error())
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(stats)
}
