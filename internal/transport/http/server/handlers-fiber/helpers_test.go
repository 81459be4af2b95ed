package handlers_fiber

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"team-task-manager/internal/dto"
	"team-task-manager/internal/entities"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestWriteErrorNotFound(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "team", err: entities.ErrTeamNotFound, expected: "team not found"},
		{name: "user", err: entities.ErrUserNotFound, expected: "user not found"},
		{name: "task", err: entities.ErrTaskNotFound, expected: "task not found"},
		{name: "membership", err: entities.ErrMembershipNotFound, expected: "user is not in that team"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return writeError(c, tt.err)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, http.StatusNotFound, resp.StatusCode)

			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			require.Equal(t, dto.CodeNotFound, body.Error.Code)
			require.Equal(t, tt.expected, body.Error.Message)
		})
	}
}

func TestWriteErrorConflicts(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     dto.ErrorCode
		expected string
	}{
		{name: "team_exists", err: entities.ErrTeamExists, code: dto.CodeTeamExists, expected: "team name already exists"},
		{name: "email_exists", err: entities.ErrEmailExists, code: dto.CodeEmailExists, expected: "email already registered"},
		{name: "already_in_team", err: entities.ErrAlreadyInTeam, code: dto.CodeAlreadyInTeam, expected: "user already in team"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return writeError(c, tt.err)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			require.Equal(t, tt.code, body.Error.Code)
			require.Equal(t, tt.expected, body.Error.Message)
		})
	}
}

func TestWriteErrorInvalidArgument(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return writeError(c, entities.ErrInvalidArgument)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, dto.CodeInvalidArgument, body.Error.Code)
}

func TestParamIDRejectsGarbage(t *testing.T) {
	app := fiber.New()
	app.Get("/:id", func(c *fiber.Ctx) error {
		if _, err := paramID(c, "id"); err != nil {
			return invalidParam(c, "id")
		}
		return c.SendStatus(http.StatusOK)
	})

	for _, raw := range []string{"abc", "-1", "0"} {
		req := httptest.NewRequest(http.MethodGet, "/"+raw, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	}
}
