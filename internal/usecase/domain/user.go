// Package domain contains application Usecases orchestrating domain logic by user.
package domain

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"team-task-manager/internal/entities"
)

const (
	userNameMinLen = 2
	userNameMaxLen = 100
)

func validateUserName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < userNameMinLen || n > userNameMaxLen {
		return fmt.Errorf("%w: name must be %d-%d characters", entities.ErrInvalidArgument, userNameMinLen, userNameMaxLen)
	}
	return nil
}

func validateEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email address", entities.ErrInvalidArgument)
	}
	return nil
}

// CreateUser creates a user with a unique email.
func (u *Usecase) CreateUser(ctx context.Context, name, email string, active bool) (*entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	name = strings.TrimSpace(name)
	if err := validateUserName(name); err != nil {
		u.log.Errorw("failed to create user: invalid name")
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		u.log.Errorw("failed to create user: invalid email")
		return nil, err
	}
	return u.repo.CreateUser(ctx, name, email, active)
}

// ListUsers returns users filtered by optional search and active state.
func (u *Usecase) ListUsers(ctx context.Context, filter entities.UserFilter) ([]entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	filter.Skip, filter.Limit = normalizeWindow(filter.Skip, filter.Limit)
	return u.repo.ListUsers(ctx, filter)
}

// User returns a user by id.
func (u *Usecase) User(ctx context.Context, userID int64) (*entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.repo.GetUser(ctx, userID)
}

// UserTeams returns the user plus its memberships joined with team data.
func (u *Usecase) UserTeams(ctx context.Context, userID int64) (*entities.User, []entities.UserTeam, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.repo.GetUserTeams(ctx, userID)
}

// UpdateUser updates supplied fields of a user.
func (u *Usecase) UpdateUser(ctx context.Context, userID int64, update entities.UserUpdate) (*entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if update.Name != nil {
		trimmed := strings.TrimSpace(*update.Name)
		if err := validateUserName(trimmed); err != nil {
			return nil, err
		}
		update.Name = &trimmed
	}
	if update.Email != nil {
		if err := validateEmail(*update.Email); err != nil {
			return nil, err
		}
	}
	return u.repo.UpdateUser(ctx, userID, update)
}

// DeleteUser removes a user together with its memberships. Assigned tasks
// lose their assignee through the storage-level set-null policy.
func (u *Usecase) DeleteUser(ctx context.Context, userID int64) (*entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.repo.DeleteUser(ctx, userID)
}

// AddUserToTeam creates a membership with the given role.
func (u *Usecase) AddUserToTeam(ctx context.Context, userID, teamID int64, role string) (*entities.Membership, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	role = strings.TrimSpace(role)
	if role == "" {
		role = entities.DefaultRole
	}
	return u.repo.AddUserToTeam(ctx, userID, teamID, role)
}

// RemoveUserFromTeam deletes the membership of the pair.
func (u *Usecase) RemoveUserFromTeam(ctx context.Context, userID, teamID int64) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.repo.RemoveUserFromTeam(ctx, userID, teamID)
}
