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
	insertUserQuery = `
INSERT INTO users(name, email, is_active)
VALUES ($1, $2, $3)
RETURNING id, name, email, is_active, created_at, updated_at`
	selectUserQuery  = `SELECT id, name, email, is_active, created_at, updated_at FROM users WHERE id=$1`
	selectUsersQuery = `SELECT id, name, email, is_active, created_at, updated_at FROM users`
	updateUserQuery  = `
UPDATE users
SET name = COALESCE($2, name),
    email = COALESCE($3, email),
    is_active = COALESCE($4, is_active),
    updated_at = now()
WHERE id = $1
RETURNING id, name, email, is_active, created_at, updated_at`
	deleteMembershipsByUserQuery = `DELETE FROM user_teams WHERE user_id=$1`
	deleteUserQuery              = `
DELETE FROM users WHERE id=$1
RETURNING id, name, email, is_active, created_at, updated_at`
	userTeamsQuery = `
SELECT t.id, t.name, t.description, ut.role, ut.joined_at
FROM user_teams ut
JOIN teams t ON t.id = ut.team_id
WHERE ut.user_id = $1
ORDER BY ut.joined_at`
	userExistsQuery       = `SELECT EXISTS(SELECT 1 FROM users WHERE id=$1)`
	teamExistsQuery       = `SELECT EXISTS(SELECT 1 FROM teams WHERE id=$1)`
	membershipExistsQuery = `SELECT EXISTS(SELECT 1 FROM user_teams WHERE user_id=$1 AND team_id=$2)`
	insertMembershipQuery = `
INSERT INTO user_teams(user_id, team_id, role)
VALUES ($1, $2, $3)
RETURNING id, user_id, team_id, role, joined_at`
	deleteMembershipQuery = `DELETE FROM user_teams WHERE user_id=$1 AND team_id=$2`
)

// CreateUser inserts a user, relying on the unique email constraint for
// conflict detection.
func (p *Postgres) CreateUser(ctx context.Context, name, email string, active bool) (*entities.User, error) {
	start := time.Now()

	var u entities.User
	err := p.db.QueryRow(ctx, insertUserQuery, name, email, active).
		Scan(&u.ID, &u.Name, &u.Email, &u.Active, &u.CreatedAt, &u.UpdatedAt)
	metrics.ObserveOp("user_create", start, err)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, entities.ErrEmailExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	p.log.Infow("user created", "user_id", u.ID, "email", u.Email)
	return &u, nil
}

// ListUsers returns users with optional search over name or email and an
// optional active filter.
func (p *Postgres) ListUsers(ctx context.Context, filter entities.UserFilter) ([]entities.User, error) {
	var sb strings.Builder
	sb.WriteString(selectUsersQuery)
	conds := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if filter.Search != nil {
		args = append(args, "%"+*filter.Search+"%")
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d)", len(args), len(args)))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		conds = append(conds, fmt.Sprintf("is_active = $%d", len(args)))
	}
	if len(conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}
	sb.WriteString(" ORDER BY id")
	args = append(args, filter.Skip)
	fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	args = append(args, filter.Limit)
	fmt.Fprintf(&sb, " LIMIT $%d", len(args))

	rows, err := p.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		var u entities.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Active, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

// GetUser fetches a user by id.
func (p *Postgres) GetUser(ctx context.Context, userID int64) (*entities.User, error) {
	var u entities.User
	err := p.db.QueryRow(ctx, selectUserQuery, userID).
		Scan(&u.ID, &u.Name, &u.Email, &u.Active, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// GetUserTeams returns the user plus its memberships joined with team data.
func (p *Postgres) GetUserTeams(ctx context.Context, userID int64) (*entities.User, []entities.UserTeam, error) {
	user, err := p.GetUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	rows, err := p.db.Query(ctx, userTeamsQuery, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("get user teams: %w", err)
	}
	defer rows.Close()

	teams := make([]entities.UserTeam, 0)
	for rows.Next() {
		var ut entities.UserTeam
		if err := rows.Scan(&ut.TeamID, &ut.Name, &ut.Description, &ut.Role, &ut.JoinedAt); err != nil {
			return nil, nil, fmt.Errorf("scan user team: %w", err)
		}
		teams = append(teams, ut)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate user teams: %w", err)
	}

	return user, teams, nil
}

// UpdateUser applies supplied fields. A taken email surfaces as
// ErrEmailExists through the unique constraint.
func (p *Postgres) UpdateUser(ctx context.Context, userID int64, update entities.UserUpdate) (*entities.User, error) {
	start := time.Now()

	var u entities.User
	err := p.db.QueryRow(ctx, updateUserQuery, userID, update.Name, update.Email, update.Active).
		Scan(&u.ID, &u.Name, &u.Email, &u.Active, &u.CreatedAt, &u.UpdatedAt)
	metrics.ObserveOp("user_update", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		if isUniqueViolation(err) {
			return nil, entities.ErrEmailExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	p.log.Infow("user updated", "user_id", u.ID)
	return &u, nil
}

// DeleteUser removes the user's memberships and then the user in one
// transaction. Tasks assigned to the user keep existing and lose their
// assignee through the set-null foreign key.
func (p *Postgres) DeleteUser(ctx context.Context, userID int64) (*entities.User, error) {
	start := time.Now()

	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, deleteMembershipsByUserQuery, userID); err != nil {
		return nil, fmt.Errorf("delete memberships: %w", err)
	}

	var u entities.User
	err = tx.QueryRow(ctx, deleteUserQuery, userID).
		Scan(&u.ID, &u.Name, &u.Email, &u.Active, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("delete user: %w", err)
	}

	err = tx.Commit(ctx)
	metrics.ObserveOp("user_delete", start, err)
	if err != nil {
		return nil, err
	}

	p.log.Infow("user deleted", "user_id", u.ID, "email", u.Email)
	return &u, nil
}

// AddUserToTeam inserts a membership after verifying both entities exist
// and no membership row is already present. The duplicate check runs inside
// the insert transaction; there is no unique constraint on the pair.
func (p *Postgres) AddUserToTeam(ctx context.Context, userID, teamID int64, role string) (*entities.Membership, error) {
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
	if err := tx.QueryRow(ctx, teamExistsQuery, teamID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("team lookup: %w", err)
	}
	if !exists {
		return nil, entities.ErrTeamNotFound
	}
	if err := tx.QueryRow(ctx, membershipExistsQuery, userID, teamID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("membership lookup: %w", err)
	}
	if exists {
		return nil, entities.ErrAlreadyInTeam
	}

	var m entities.Membership
	err = tx.QueryRow(ctx, insertMembershipQuery, userID, teamID, role).
		Scan(&m.ID, &m.UserID, &m.TeamID, &m.Role, &m.JoinedAt)
	if err != nil {
		return nil, fmt.Errorf("insert membership: %w", err)
	}

	err = tx.Commit(ctx)
	metrics.ObserveOp("membership_add", start, err)
	if err != nil {
		return nil, err
	}

	p.log.Infow("membership created", "user_id", userID, "team_id", teamID, "role", role)
	return &m, nil
}

// RemoveUserFromTeam deletes the membership row for the pair.
func (p *Postgres) RemoveUserFromTeam(ctx context.Context, userID, teamID int64) error {
	start := time.Now()

	tag, err := p.db.Exec(ctx, deleteMembershipQuery, userID, teamID)
	metrics.ObserveOp("membership_remove", start, err)
	if err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrMembershipNotFound
	}

	p.log.Infow("membership removed", "user_id", userID, "team_id", teamID)
	return nil
}
