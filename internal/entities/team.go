// Package entities contains core business entities.
package entities

import "time"

// Team is a named group that owns tasks and has members.
type Team struct {
	ID          int64
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TeamWithStats is a team together with its member and task counts.
type TeamWithStats struct {
	Team
	TotalMembers int64
	TotalTasks   int64
}

// TeamFilter limits team listings.
type TeamFilter struct {
	Skip   int
	Limit  int
	Search *string
}

// TeamUpdate carries optional team fields; nil means leave unchanged.
type TeamUpdate struct {
	Name        *string
	Description *string
}
