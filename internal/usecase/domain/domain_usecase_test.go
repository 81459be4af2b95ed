package domain

import (
	"context"
	"testing"
	"time"

	"team-task-manager/internal/entities"
	"team-task-manager/internal/repository"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type repoMock struct{ mock.Mock }

var _ repository.Repository = (*repoMock)(nil)

func (m *repoMock) OnStart(_ context.Context) error { return nil }
func (m *repoMock) OnStop(_ context.Context) error  { return nil }

func (m *repoMock) CreateTeam(ctx context.Context, name string, description *string) (*entities.Team, error) {
	args := m.Called(ctx, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Team), args.Error(1)
}

func (m *repoMock) ListTeams(ctx context.Context, filter entities.TeamFilter) ([]entities.Team, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Team), args.Error(1)
}

func (m *repoMock) GetTeam(ctx context.Context, teamID int64) (*entities.Team, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Team), args.Error(1)
}

func (m *repoMock) GetTeamWithStats(ctx context.Context, teamID int64) (*entities.TeamWithStats, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TeamWithStats), args.Error(1)
}

func (m *repoMock) UpdateTeam(ctx context.Context, teamID int64, update entities.TeamUpdate) (*entities.Team, error) {
	args := m.Called(ctx, teamID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Team), args.Error(1)
}

func (m *repoMock) DeleteTeam(ctx context.Context, teamID int64) (*entities.Team, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Team), args.Error(1)
}

func (m *repoMock) TeamStats(ctx context.Context) (entities.TeamStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(entities.TeamStats), args.Error(1)
}

func (m *repoMock) CreateUser(ctx context.Context, name, email string, active bool) (*entities.User, error) {
	args := m.Called(ctx, name, email, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *repoMock) ListUsers(ctx context.Context, filter entities.UserFilter) ([]entities.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.User), args.Error(1)
}

func (m *repoMock) GetUser(ctx context.Context, userID int64) (*entities.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *repoMock) GetUserTeams(ctx context.Context, userID int64) (*entities.User, []entities.UserTeam, error) {
	args := m.Called(ctx, userID)
	var user *entities.User
	if args.Get(0) != nil {
		user = args.Get(0).(*entities.User)
	}
	var teams []entities.UserTeam
	if args.Get(1) != nil {
		teams = args.Get(1).([]entities.UserTeam)
	}
	return user, teams, args.Error(2)
}

func (m *repoMock) UpdateUser(ctx context.Context, userID int64, update entities.UserUpdate) (*entities.User, error) {
	args := m.Called(ctx, userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *repoMock) DeleteUser(ctx context.Context, userID int64) (*entities.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *repoMock) AddUserToTeam(ctx context.Context, userID, teamID int64, role string) (*entities.Membership, error) {
	args := m.Called(ctx, userID, teamID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Membership), args.Error(1)
}

func (m *repoMock) RemoveUserFromTeam(ctx context.Context, userID, teamID int64) error {
	args := m.Called(ctx, userID, teamID)
	return args.Error(0)
}

func (m *repoMock) CreateTask(ctx context.Context, task entities.Task) (*entities.Task, error) {
	args := m.Called(ctx, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Task), args.Error(1)
}

func (m *repoMock) ListTasks(ctx context.Context, filter entities.TaskFilter) ([]entities.TaskDetails, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.TaskDetails), args.Error(1)
}

func (m *repoMock) GetTask(ctx context.Context, taskID int64) (*entities.TaskDetails, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TaskDetails), args.Error(1)
}

func (m *repoMock) UpdateTask(ctx context.Context, taskID int64, update entities.TaskUpdate) (*entities.Task, error) {
	args := m.Called(ctx, taskID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Task), args.Error(1)
}

func (m *repoMock) DeleteTask(ctx context.Context, taskID int64) (*entities.Task, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Task), args.Error(1)
}

func (m *repoMock) SetTaskStatus(ctx context.Context, taskID int64, status entities.TaskStatus) (*entities.StatusChange, error) {
	args := m.Called(ctx, taskID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.StatusChange), args.Error(1)
}

func (m *repoMock) AssignTask(ctx context.Context, taskID, userID int64) (*entities.Task, error) {
	args := m.Called(ctx, taskID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Task), args.Error(1)
}

func (m *repoMock) TaskStats(ctx context.Context) (entities.TaskStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(entities.TaskStats), args.Error(1)
}

func newTestUsecase(repo *repoMock) *Usecase {
	return New(zap.NewNop().Sugar(), context.Background(), repo, time.Second)
}

func TestUsecase_CreateTeamValidation(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo)

	_, err := uc.CreateTeam(context.Background(), "ab", nil)
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
	repo.AssertNotCalled(t, "CreateTeam", mock.Anything, mock.Anything, mock.Anything)
}

func TestUsecase_CreateTeamDelegates(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo)

	expected := &entities.Team{ID: 1, Name: "backend"}
	repo.On("CreateTeam", mock.Anything, "backend", (*string)(nil)).Return(expected, nil)

	team, err := uc.CreateTeam(context.Background(), "  backend  ", nil)
	require.NoError(t, err)
	require.Equal(t, expected, team)
	repo.AssertExpectations(t)
}

func TestUsecase_CreateTeamDescriptionTooLong(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo)

	long := make([]byte, 501)
	for i := range long {
		long[i] = 'x'
	}
	desc := string(long)

	_, err := uc.CreateTeam(context.Background(), "backend", &desc)
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
}

func TestUsecase_UpdateTeamNameValidation(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo)

	bad := "x"
	_, err := uc.UpdateTeam(context.Background(), 1, entities.TeamUpdate{Name: &bad})
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
	repo.AssertNotCalled(t, "UpdateTeam", mock.Anything, mock.Anything, mock.Anything)
}

func TestUsecase_ListTeamsDefaultsLimit(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo)

	repo.On("ListTeams", mock.Anything, mock.MatchedBy(func(f entities.TeamFilter) bool {
		return f.Skip == 0 && f.Limit == 100
	})).Return([]entities.Team{}, nil)

	_, err := uc.ListTeams(context.Background(), entities.TeamFilter{Skip: -5, Limit: 0})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUsecase_CreateUserEmailValidation(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo)

	_, err := uc.CreateUser(context.Background(), "Ana", "not-an-email", true)
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
	repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUsecase_CreateUserDelegates(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo)

	expected := &entities.User{ID: 7, Name: "Ana", Email: "ana@x.com", Active: true}
	repo.On("CreateUser", mock.Anything, "Ana", "ana@x.com", true).Return(expected, nil)

	user, err := uc.CreateUser(context.Background(), "Ana", "ana@x.com", true)
	require.NoError(t, err)
	require.Equal(t, expected, user)
	repo.AssertExpectations(t)
}

func TestUsecase_AddUserToTeamDefaultRole(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo)

	expected := &entities.Membership{ID: 1, UserID: 2, TeamID: 3, Role: "member"}
	repo.On("AddUserToTeam", mock.Anything, int64(2), int64(3), "member").Return(expected, nil)

	m, err := uc.AddUserToTeam(context.Background(), 2, 3, "   ")
	require.NoError(t, err)
	require.Equal(t, "member", m.Role)
	repo.AssertExpectations(t)
}

func TestUsecase_CreateTaskValidation(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo)

	_, err := uc.CreateTask(context.Background(), entities.Task{Title: "ab", TeamID: 1})
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
	repo.AssertNotCalled(t, "CreateTask", mock.Anything, mock.Anything)
}

func TestUsecase_CreateTaskDefaultsPriority(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo)

	expected := &entities.Task{ID: 1, Title: "Write tests", Status: entities.StatusPending, Priority: entities.PriorityMedium, TeamID: 1}
	repo.On("CreateTask", mock.Anything, mock.MatchedBy(func(task entities.Task) bool {
		return task.Priority == entities.PriorityMedium
	})).Return(expected, nil)

	task, err := uc.CreateTask(context.Background(), entities.Task{Title: "Write tests", TeamID: 1})
	require.NoError(t, err)
	require.Equal(t, entities.StatusPending, task.Status)
	repo.AssertExpectations(t)
}

func TestUsecase_CreateTaskRejectsUnknownPriority(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo)

	_, err := uc.CreateTask(context.Background(), entities.Task{Title: "Write tests", TeamID: 1, Priority: "asap"})
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
}

func TestUsecase_SetTaskStatusRejectsUnknown(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo)

	_, err := uc.SetTaskStatus(context.Background(), 1, "done")
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
	repo.AssertNotCalled(t, "SetTaskStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUsecase_SetTaskStatusDelegates(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo)

	expected := &entities.StatusChange{TaskID: 1, OldStatus: entities.StatusPending, NewStatus: entities.StatusCompleted}
	repo.On("SetTaskStatus", mock.Anything, int64(1), entities.StatusCompleted).Return(expected, nil)

	change, err := uc.SetTaskStatus(context.Background(), 1, entities.StatusCompleted)
	require.NoError(t, err)
	require.Equal(t, expected, change)
	repo.AssertExpectations(t)
}

func TestUsecase_UpdateTaskRejectsUnknownStatus(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo)

	bad := entities.TaskStatus("finished")
	_, err := uc.UpdateTask(context.Background(), 1, entities.TaskUpdate{Status: &bad})
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
}

func TestUsecase_ListTasksRejectsUnknownFilterStatus(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo)

	bad := entities.TaskStatus("archived")
	_, err := uc.ListTasks(context.Background(), entities.TaskFilter{Status: &bad})
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
	repo.AssertNotCalled(t, "ListTasks", mock.Anything, mock.Anything)
}
