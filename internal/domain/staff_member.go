package domain

import "time"

// StaffRole enumerates venue operator roles.
type StaffRole string

const (
	StaffRoleAdmin     StaffRole = "ADMIN"
	StaffRoleBarkeeper StaffRole = "BARKEEPER"
)

// Valid reports whether the role is a known value.
func (r StaffRole) Valid() bool {
	return r == StaffRoleAdmin || r == StaffRoleBarkeeper
}

// StaffMember models a venue operator account.
type StaffMember struct {
	ID           string
	Name         string
	Username     string
	PasswordHash string
	Role         StaffRole
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
