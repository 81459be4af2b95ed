// Package domain contains application Usecases orchestrating domain logic by team.
package domain

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"team-task-manager/internal/entities"
)

const (
	teamNameMinLen = 3
	teamNameMaxLen = 100
	teamDescMaxLen = 500
)

func validateTeamName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < teamNameMinLen || n > teamNameMaxLen {
		return fmt.Errorf("%w: name must be %d-%d characters", entities.ErrInvalidArgument, teamNameMinLen, teamNameMaxLen)
	}
	return nil
}

func validateTeamDescription(description *string) error {
	if description != nil && utf8.RuneCountInString(*description) > teamDescMaxLen {
		return fmt.Errorf("%w: description must be at most %d characters", entities.ErrInvalidArgument, teamDescMaxLen)
	}
	return nil
}

// CreateTeam creates a team with a unique name.
func (u *Usecase) CreateTeam(ctx context.Context, name string, description *string) (*entities.Team, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	name = strings.TrimSpace(name)
	if err := validateTeamName(name); err != nil {
		u.log.Errorw("failed to create team: invalid name")
		return nil, err
	}
	if err := validateTeamDescription(description); err != nil {
		return nil, err
	}
	return u.repo.CreateTeam(ctx, name, description)
}

// ListTeams returns teams filtered by an optional name search.
func (u *Usecase) ListTeams(ctx context.Context, filter entities.TeamFilter) ([]entities.Team, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	filter.Skip, filter.Limit = normalizeWindow(filter.Skip, filter.Limit)
	return u.repo.ListTeams(ctx, filter)
}

// Team returns a team by id.
func (u *Usecase) Team(ctx context.Context, teamID int64) (*entities.Team, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.repo.GetTeam(ctx, teamID)
}

// TeamWithStats returns a team plus member and task counts.
func (u *Usecase) TeamWithStats(ctx context.Context, teamID int64) (*entities.TeamWithStats, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.repo.GetTeamWithStats(ctx, teamID)
}

// UpdateTeam updates supplied fields of a team.
func (u *Usecase) UpdateTeam(ctx context.Context, teamID int64, update entities.TeamUpdate) (*entities.Team, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if update.Name != nil {
		trimmed := strings.TrimSpace(*update.Name)
		if err := validateTeamName(trimmed); err != nil {
			return nil, err
		}
		update.Name = &trimmed
	}
	if err := validateTeamDescription(update.Description); err != nil {
		return nil, err
	}
	return u.repo.UpdateTeam(ctx, teamID, update)
}

// DeleteTeam removes a team; its tasks and memberships cascade away.
func (u *Usecase) DeleteTeam(ctx context.Context, teamID int64) (*entities.Team, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.repo.DeleteTeam(ctx, teamID)
}

// TeamStats returns aggregate counters across all teams.
func (u *Usecase) TeamStats(ctx context.Context) (entities.TeamStats, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.repo.TeamStats(ctx)
}
