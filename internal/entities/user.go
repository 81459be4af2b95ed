// Package entities contains core business entities.
package entities

import "time"

// User is an individual who may belong to teams and be assigned tasks.
type User struct {
	ID        int64
	Name      string
	Email     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserFilter limits user listings.
type UserFilter struct {
	Skip   int
	Limit  int
	Search *string
	Active *bool
}

// UserUpdate carries optional user fields; nil means leave unchanged.
type UserUpdate struct {
	Name   *string
	Email  *string
	Active *bool
}
