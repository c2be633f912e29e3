package models

import "time"

// PlatformRole is the role claim carried by the access token.
type PlatformRole string

const (
	PlatformUser      PlatformRole = "USER"
	PlatformModerator PlatformRole = "MODERATOR"
	PlatformAdmin     PlatformRole = "ADMIN"
)

// CanModerate reports whether the role may resolve disputes.
func (r PlatformRole) CanModerate() bool {
	return r == PlatformModerator || r == PlatformAdmin
}

// Role is the part an actor plays in one transaction.
type Role string

const (
	RoleOwner    Role = "owner"
	RoleBorrower Role = "borrower"
	RoleNone     Role = "none"
)

// Actor is the authenticated user behind a request.
type Actor struct {
	UserID    string
	Role      PlatformRole
	Token     string
	ExpiresAt time.Time
}
