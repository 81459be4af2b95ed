// Package entities contains core business entities.
package entities

import "time"

// DefaultRole is assigned to memberships created without an explicit role.
// Conventional values are member, admin and owner, but the field is not
// constrained beyond being non-empty.
const DefaultRole = "member"

// Membership associates a user to a team with a role.
type Membership struct {
	ID       int64
	UserID   int64
	TeamID   int64
	Role     string
	JoinedAt time.Time
}

// UserTeam is a membership joined with the team it points to, as returned
// by the user teams listing.
type UserTeam struct {
	TeamID      int64
	Name        string
	Description *string
	Role        string
	JoinedAt    time.Time
}
