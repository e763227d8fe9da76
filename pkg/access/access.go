// Package access defines team membership roles.
package access

import (
	"encoding"
	"errors"
)

// Role is the role a user holds within a team.
type Role int

const (
	// NoRole means the user is not a member of the team.
	NoRole Role = iota

	// MemberRole can read and edit every task of the team.
	MemberRole

	// AdminRole can additionally invite users.
	AdminRole

	// OwnerRole is held by the team creator.
	OwnerRole
)

// String returns the string representation of the role.
func (r Role) String() string {
	switch r {
	case NoRole:
		return "none"
	case MemberRole:
		return "member"
	case AdminRole:
		return "admin"
	case OwnerRole:
		return "owner"
	default:
		return "unknown"
	}
}

// ParseRole parses a role string.
func ParseRole(s string) Role {
	switch s {
	case "none":
		return NoRole
	case "member":
		return MemberRole
	case "admin":
		return AdminRole
	case "owner":
		return OwnerRole
	default:
		return Role(-1)
	}
}

// CanInvite reports whether the role may invite users into the team.
func (r Role) CanInvite() bool {
	return r == AdminRole || r == OwnerRole
}

// Invitable reports whether an invitation may grant the role.
func (r Role) Invitable() bool {
	return r == AdminRole || r == MemberRole
}

var (
	_ encoding.TextMarshaler   = Role(0)
	_ encoding.TextUnmarshaler = (*Role)(nil)
)

// ErrInvalidRole is returned when an invalid role is provided.
var ErrInvalidRole = errors.New("invalid role")

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	l := ParseRole(string(text))
	if l < 0 {
		return ErrInvalidRole
	}

	*r = l

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() (text []byte, err error) {
	return []byte(r.String()), nil
}
