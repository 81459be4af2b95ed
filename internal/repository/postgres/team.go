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
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	insertTeamQuery = `
INSERT INTO teams(name, description)
VALUES ($1, $2)
RETURNING id, name, description, created_at, updated_at`
	selectTeamQuery  = `SELECT id, name, description, created_at, updated_at FROM teams WHERE id=$1`
	selectTeamsQuery = `SELECT id, name, description, created_at, updated_at FROM teams`
	updateTeamQuery  = `
UPDATE teams
SET name = COALESCE($2, name),
    description = COALESCE($3, description),
    updated_at = now()
WHERE id = $1
RETURNING id, name, description, created_at, updated_at`
	deleteTeamQuery = `
DELETE FROM teams WHERE id=$1
RETURNING id, name, description, created_at, updated_at`
	teamMemberCountQuery = `SELECT COUNT(*) FROM user_teams WHERE team_id=$1`
	teamTaskCountQuery   = `SELECT COUNT(*) FROM tasks WHERE team_id=$1`
	countTeamsQuery      = `SELECT COUNT(*) FROM teams`
)

// uniqueViolation is the SQLSTATE raised when an insert or update hits a
// unique constraint. Conflicts are detected this way instead of a
// check-then-insert pre-read.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// CreateTeam inserts a team, relying on the unique name constraint for
// conflict detection.
func (p *Postgres) CreateTeam(ctx context.Context, name string, description *string) (*entities.Team, error) {
	start := time.Now()

	var t entities.Team
	err := p.db.QueryRow(ctx, insertTeamQuery, name, description).
		Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt)
	metrics.ObserveOp("team_create", start, err)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, entities.ErrTeamExists
		}
		return nil, fmt.Errorf("insert team: %w", err)
	}

	p.log.Infow("team created", "team_id", t.ID, "name", t.Name)
	return &t, nil
}

// ListTeams returns teams ordered by insertion with optional name search.
func (p *Postgres) ListTeams(ctx context.Context, filter entities.TeamFilter) ([]entities.Team, error) {
	var sb strings.Builder
	sb.WriteString(selectTeamsQuery)
	args := make([]any, 0, 3)
	if filter.Search != nil {
		args = append(args, "%"+*filter.Search+"%")
		fmt.Fprintf(&sb, " WHERE name ILIKE $%d", len(args))
	}
	sb.WriteString(" ORDER BY id")
	args = append(args, filter.Skip)
	fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	args = append(args, filter.Limit)
	fmt.Fprintf(&sb, " LIMIT $%d", len(args))

	rows, err := p.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	teams := make([]entities.Team, 0)
	for rows.Next() {
		var t entities.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate teams: %w", err)
	}

	return teams, nil
}

// GetTeam fetches a team by id.
func (p *Postgres) GetTeam(ctx context.Context, teamID int64) (*entities.Team, error) {
	var t entities.Team
	err := p.db.QueryRow(ctx, selectTeamQuery, teamID).
		Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrTeamNotFound
		}
		return nil, fmt.Errorf("get team: %w", err)
	}
	return &t, nil
}

// GetTeamWithStats fetches a team plus its member and task counts.
func (p *Postgres) GetTeamWithStats(ctx context.Context, teamID int64) (*entities.TeamWithStats, error) {
	team, err := p.GetTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	res := entities.TeamWithStats{Team: *team}
	if err := p.db.QueryRow(ctx, teamMemberCountQuery, teamID).Scan(&res.TotalMembers); err != nil {
		return nil, fmt.Errorf("count members: %w", err)
	}
	if err := p.db.QueryRow(ctx, teamTaskCountQuery, teamID).Scan(&res.TotalTasks); err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}

	return &res, nil
}

// UpdateTeam applies supplied fields. A taken name surfaces as ErrTeamExists
// through the unique constraint.
func (p *Postgres) UpdateTeam(ctx context.Context, teamID int64, update entities.TeamUpdate) (*entities.Team, error) {
	start := time.Now()

	var t entities.Team
	err := p.db.QueryRow(ctx, updateTeamQuery, teamID, update.Name, update.Description).
		Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt)
	metrics.ObserveOp("team_update", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrTeamNotFound
		}
		if isUniqueViolation(err) {
			return nil, entities.ErrTeamExists
		}
		return nil, fmt.Errorf("update team: %w", err)
	}

	p.log.Infow("team updated", "team_id", t.ID)
	return &t, nil
}

// DeleteTeam removes a team. Tasks and memberships referencing it are
// cascade-deleted by the schema.
func (p *Postgres) DeleteTeam(ctx context.Context, teamID int64) (*entities.Team, error) {
	start := time.Now()

	var t entities.Team
	err := p.db.QueryRow(ctx, deleteTeamQuery, teamID).
		Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt)
	metrics.ObserveOp("team_delete", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrTeamNotFound
		}
		return nil, fmt.Errorf("delete team: %w", err)
	}

	p.log.Infow("team deleted", "team_id", t.ID, "name", t.Name)
	return &t, nil
}

// TeamStats counts all teams. Member and task totals are left zero; the
// per-team stats endpoint computes real aggregates.
func (p *Postgres) TeamStats(ctx context.Context) (entities.TeamStats, error) {
	res := entities.TeamStats{}
	if err := p.db.QueryRow(ctx, countTeamsQuery).Scan(&res.TotalTeams); err != nil {
		return res, fmt.Errorf("count teams: %w", err)
	}
	return res, nil
}
