// Package entities contains core business entities and errors.
package entities

import "errors"

var (
	// ErrInvalidArgument signals failed input validation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrTeamNotFound signals missing team.
	ErrTeamNotFound = errors.New("team not found")
	// ErrTeamExists signals team name conflict.
	ErrTeamExists = errors.New("team exists")
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailExists signals user email conflict.
	ErrEmailExists = errors.New("email exists")
	// ErrTaskNotFound signals missing task.
	ErrTaskNotFound = errors.New("task not found")
	// ErrAlreadyInTeam signals duplicate team membership.
	ErrAlreadyInTeam = errors.New("already in team")
	// ErrMembershipNotFound signals user is not a member of the team.
	ErrMembershipNotFound = errors.New("membership not found")
)
