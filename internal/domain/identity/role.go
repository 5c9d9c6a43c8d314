package identity

import (
	"errors"
	"strings"
)

// Role classifies an authenticated actor.
type Role string

const (
	RoleCitizen   Role = "citizen"
	RoleResponder Role = "responder"
	RoleAdmin     Role = "admin"
)

var ErrInvalidRole = errors.New("invalid role")

// ParseRole parses a role string, case-insensitively.
func ParseRole(s string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(s)))
	if !role.Valid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// Valid reports whether role is one of the known role constants.
func (role Role) Valid() bool {
	switch role {
	case RoleCitizen, RoleResponder, RoleAdmin:
		return true
	default:
		return false
	}
}

// String returns the string representation of the Role.
func (role Role) String() string {
	return string(role)
}
