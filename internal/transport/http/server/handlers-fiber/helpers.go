package handlers_fiber

import (
	"errors"
	"fmt"
	"net/http"

	"team-task-manager/internal/dto"
	"team-task-manager/internal/entities"

	"github.com/gofiber/fiber/v2"
)

func writeError(c *fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	code := dto.CodeInternal
	msg := "internal error"

	switch {
	case errors.Is(err, entities.ErrInvalidArgument):
		status = http.StatusBadRequest
		code = dto.CodeInvalidArgument
		msg = err.Error()
	case errors.Is(err, entities.ErrTeamNotFound):
		status = http.StatusNotFound
		code = dto.CodeNotFound
		msg = "team not found"
	case errors.Is(err, entities.ErrUserNotFound):
		status = http.StatusNotFound
		code = dto.CodeNotFound
		msg = "user not found"
	case errors.Is(err, entities.ErrTaskNotFound):
		status = http.StatusNotFound
		code = dto.CodeNotFound
		msg = "task not found"
	case errors.Is(err, entities.ErrMembershipNotFound):
		status = http.StatusNotFound
		code = dto.CodeNotFound
		msg = "user is not in that team"
	case errors.Is(err, entities.ErrTeamExists):
		status = http.StatusBadRequest
		code = dto.CodeTeamExists
		msg = "team name already exists"
	case errors.Is(err, entities.ErrEmailExists):
		status = http.StatusBadRequest
		code = dto.CodeEmailExists
		msg = "email already registered"
	case errors.Is(err, entities.ErrAlreadyInTeam):
		status = http.StatusBadRequest
		code = dto.CodeAlreadyInTeam
		msg = "user already in team"
	default:
		msg = err.Error()
	}

	return c.Status(status).JSON(errorResponse(code, msg))
}

func errorResponse(code dto.ErrorCode, msg string) dto.ErrorResponse {
	return dto.ErrorResponse{Error: dto.ErrorBody{Code: code, Message: msg}}
}

func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", entities.ErrInvalidArgument, name)
	}
	return int64(id), nil
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(http.StatusBadRequest).JSON(errorResponse(dto.CodeInvalidArgument, "invalid body"))
}

func invalidParam(c *fiber.Ctx, name string) error {
	return c.Status(http.StatusBadRequest).JSON(errorResponse(dto.CodeInvalidArgument, "invalid "+name))
}
