package postgres

import (
	"context"
	"database/sql"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"team-task-manager/config"
	"team-task-manager/internal/entities"

	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRepositoryIntegration(t *testing.T) {
	ctx := context.Background()

	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })

	team, err := repo.CreateTeam(ctx, "QA", nil)
	require.NoError(t, err)
	require.Equal(t, "QA", team.Name)

	_, err = repo.CreateTeam(ctx, "QA", nil)
	require.ErrorIs(t, err, entities.ErrTeamExists)

	ana, err := repo.CreateUser(ctx, "Ana", "ana@x.com", true)
	require.NoError(t, err)
	_, err = repo.CreateUser(ctx, "Another Ana", "ana@x.com", true)
	require.ErrorIs(t, err, entities.ErrEmailExists)

	m, err := repo.AddUserToTeam(ctx, ana.ID, team.ID, "member")
	require.NoError(t, err)
	require.Equal(t, "member", m.Role)

	_, err = repo.AddUserToTeam(ctx, ana.ID, team.ID, "member")
	require.ErrorIs(t, err, entities.ErrAlreadyInTeam)

	user, teams, err := repo.GetUserTeams(ctx, ana.ID)
	require.NoError(t, err)
	require.Equal(t, ana.ID, user.ID)
	require.Len(t, teams, 1)
	require.Equal(t, "QA", teams[0].Name)

	task, err := repo.CreateTask(ctx, entities.Task{
		Title:    "Write tests",
		Priority: entities.PriorityMedium,
		TeamID:   team.ID,
	})
	require.NoError(t, err)
	require.Equal(t, entities.StatusPending, task.Status)
	require.Nil(t, task.AssigneeID)
	require.Nil(t, task.CompletedAt)

	_, err = repo.CreateTask(ctx, entities.Task{Title: "Orphan", Priority: entities.PriorityLow, TeamID: 99999})
	require.ErrorIs(t, err, entities.ErrTeamNotFound)

	change, err := repo.SetTaskStatus(ctx, task.ID, entities.StatusCompleted)
	require.NoError(t, err)
	require.Equal(t, entities.StatusPending, change.OldStatus)
	require.Equal(t, entities.StatusCompleted, change.NewStatus)

	details, err := repo.GetTask(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, details.CompletedAt)
	require.Equal(t, "QA", details.TeamName)

	_, err = repo.SetTaskStatus(ctx, task.ID, entities.StatusPending)
	require.NoError(t, err)
	details, err = repo.GetTask(ctx, task.ID)
	require.NoError(t, err)
	require.Nil(t, details.CompletedAt)

	assigned, err := repo.AssignTask(ctx, task.ID, ana.ID)
	require.NoError(t, err)
	require.NotNil(t, assigned.AssigneeID)
	require.Equal(t, ana.ID, *assigned.AssigneeID)

	search := "write"
	list, err := repo.ListTasks(ctx, entities.TaskFilter{Limit: 100, Search: &search})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].AssigneeName)
	require.Equal(t, "Ana", *list[0].AssigneeName)

	miss := "login"
	list, err = repo.ListTasks(ctx, entities.TaskFilter{Limit: 100, Search: &miss})
	require.NoError(t, err)
	require.Empty(t, list)

	withStats, err := repo.GetTeamWithStats(ctx, team.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), withStats.TotalMembers)
	require.Equal(t, int64(1), withStats.TotalTasks)

	stats, err := repo.TaskStats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), stats.TotalTasks)
	require.Equal(t, int64(1), stats.ByStatus[entities.StatusPending])
	require.Equal(t, int64(1), stats.ByPriority[entities.PriorityMedium])

	// Deleting the user must clear the assignee via the FK and remove
	// memberships explicitly.
	_, err = repo.DeleteUser(ctx, ana.ID)
	require.NoError(t, err)
	details, err = repo.GetTask(ctx, task.ID)
	require.NoError(t, err)
	require.Nil(t, details.AssigneeID)

	withStats, err = repo.GetTeamWithStats(ctx, team.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), withStats.TotalMembers)

	// Deleting the team must cascade its tasks away.
	_, err = repo.DeleteTeam(ctx, team.ID)
	require.NoError(t, err)
	_, err = repo.GetTask(ctx, task.ID)
	require.ErrorIs(t, err, entities.ErrTaskNotFound)

	teamStats, err := repo.TeamStats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(0), teamStats.TotalTeams)
	require.Equal(t, int64(0), teamStats.TotalMembers)
	require.Equal(t, int64(0), teamStats.TotalTasks)
}

func TestRepositoryStatsIntegration(t *testing.T) {
	ctx := context.Background()

	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })

	team, err := repo.CreateTeam(ctx, "platform", nil)
	require.NoError(t, err)

	statuses := []entities.TaskStatus{
		entities.StatusPending, entities.StatusPending,
		entities.StatusInProgress,
		entities.StatusCompleted, entities.StatusCompleted, entities.StatusCompleted,
		entities.StatusCancelled,
	}
	for i, status := range statuses {
		task, err := repo.CreateTask(ctx, entities.Task{
			Title:    "Task " + strconv.Itoa(i),
			Priority: entities.PriorityHigh,
			TeamID:   team.ID,
		})
		require.NoError(t, err)
		if status != entities.StatusPending {
			_, err = repo.SetTaskStatus(ctx, task.ID, status)
			require.NoError(t, err)
		}
	}

	stats, err := repo.TaskStats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(len(statuses)), stats.TotalTasks)
	require.Equal(t, int64(2), stats.ByStatus[entities.StatusPending])
	require.Equal(t, int64(1), stats.ByStatus[entities.StatusInProgress])
	require.Equal(t, int64(3), stats.ByStatus[entities.StatusCompleted])
	require.Equal(t, int64(1), stats.ByStatus[entities.StatusCancelled])
	require.Equal(t, int64(len(statuses)), stats.ByPriority[entities.PriorityHigh])
}

func setupPostgres(t *testing.T) (*config.Config, func()) {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_PASSWORD=postgres",
			"POSTGRES_USER=postgres",
			"POSTGRES_DB=team_task_manager_db",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
	})
	require.NoError(t, err)

	hostPort := resource.GetPort("5432/tcp")

	port, err := strconv.Atoi(hostPort)
	require.NoError(t, err)
	migrationsDir, err := filepath.Abs(filepath.Join("..", "..", "..", "db", "migrations"))
	require.NoError(t, err)
	require.DirExists(t, migrationsDir)

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "0.0.0.0", Port: 8080, ShutdownTimeout: 5 * time.Second},
		HTTP:   config.HTTPConfig{RequestTimeout: 5 * time.Second},
		Postgres: config.PostgresConfig{
			Host:           "localhost",
			Port:           port,
			User:           "postgres",
			Password:       "postgres",
			DBName:         "team_task_manager_db",
			SSLMode:        "disable",
			MigrationsDir:  migrationsDir,
			QueryTimeout:   10 * time.Second,
			MigrateTimeout: 20 * time.Second,
			MaxConns:       4,
			MinConns:       1,
		},
	}

	require.NoError(t, pool.Retry(func() error {
		db, err := sql.Open("postgres", "host=localhost port="+hostPort+" user=postgres password=postgres dbname=team_task_manager_db sslmode=disable")
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		return db.Ping()
	}))

	cleanup := func() {
		_ = pool.Purge(resource)
	}

	return cfg, cleanup
}

func testLogger(t *testing.T) *zap.SugaredLogger {
	t.Helper()

	l, _ := zap.NewDevelopment()
	t.Cleanup(func() { _ = l.Sync() })
	return l.Sugar()
}
