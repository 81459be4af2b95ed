// Package entities contains core business entities.
package entities

// TeamStats aggregates counters across all teams. Member and task totals
// are not computed by the general endpoint and stay zero.
type TeamStats struct {
	TotalTeams   int64 `json:"total_teams"`
	TotalMembers int64 `json:"total_members"`
	TotalTasks   int64 `json:"total_tasks"`
}

// TaskStats aggregates task counters grouped by status and priority.
type TaskStats struct {
	TotalTasks int64                  `json:"total_tasks"`
	ByStatus   map[TaskStatus]int64   `json:"by_status"`
	ByPriority map[TaskPriority]int64 `json:"by_priority"`
}
