// Package mapper converts between domain models and transport DTOs.
package mapper

import (
	"team-task-manager/internal/dto"
	"team-task-manager/internal/entities"
)

// ToDTOTeam maps entities.Team to transport model.
func ToDTOTeam(t entities.Team) dto.Team {
	return dto.Team{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// ToDTOTeamList maps a slice of teams to transport slice.
func ToDTOTeamList(list []entities.Team) []dto.Team {
	res := make([]dto.Team, 0, len(list))
	for _, t := range list {
		res = append(res, ToDTOTeam(t))
	}
	return res
}

// ToDTOTeamWithStats maps a team plus aggregates to transport model.
func ToDTOTeamWithStats(t entities.TeamWithStats) dto.TeamWithStats {
	return dto.TeamWithStats{
		Team:         ToDTOTeam(t.Team),
		TotalMembers: t.TotalMembers,
		TotalTasks:   t.TotalTasks,
	}
}

// ToDTOUser maps entities.User to transport model.
func ToDTOUser(u entities.User) dto.User {
	return dto.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ToDTOUserList maps a slice of users to transport slice.
func ToDTOUserList(list []entities.User) []dto.User {
	res := make([]dto.User, 0, len(list))
	for _, u := range list {
		res = append(res, ToDTOUser(u))
	}
	return res
}

// ToDTOUserTeams maps membership rows to transport slice.
func ToDTOUserTeams(list []entities.UserTeam) []dto.UserTeam {
	res := make([]dto.UserTeam, 0, len(list))
	for _, ut := range list {
		res = append(res, dto.UserTeam{
			TeamID:      ut.TeamID,
			Name:        ut.Name,
			Description: ut.Description,
			Role:        ut.Role,
			JoinedAt:    ut.JoinedAt,
		})
	}
	return res
}

// ToDTOTask maps entities.Task to transport model.
func ToDTOTask(t entities.Task) dto.Task {
	return dto.Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		TeamID:      t.TeamID,
		AssigneeID:  t.AssigneeID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		DueDate:     t.DueDate,
		CompletedAt: t.CompletedAt,
	}
}

// ToDTOTaskDetails maps a joined task row to transport model.
func ToDTOTaskDetails(t entities.TaskDetails) dto.TaskDetails {
	return dto.TaskDetails{
		Task:          ToDTOTask(t.Task),
		TeamName:      t.TeamName,
		AssigneeName:  t.AssigneeName,
		AssigneeEmail: t.AssigneeEmail,
	}
}

// ToDTOTaskDetailsList maps a slice of joined task rows to transport slice.
func ToDTOTaskDetailsList(list []entities.TaskDetails) []dto.TaskDetails {
	res := make([]dto.TaskDetails, 0, len(list))
	for _, t := range list {
		res = append(res, ToDTOTaskDetails(t))
	}
	return res
}
