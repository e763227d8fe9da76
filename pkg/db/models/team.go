package models

import (
	"database/sql"
	"time"
)

// Team represents a team.
type Team struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// TeamWithRole is a team joined with the caller's membership role.
type TeamWithRole struct {
	Team
	Role string `db:"role"`
}

// TeamMember represents a member of a team.
type TeamMember struct {
	ID       string    `db:"id"`
	TeamID   string    `db:"team_id"`
	UserID   string    `db:"user_id"`
	Role     string    `db:"role"`
	JoinedAt time.Time `db:"joined_at"`
}

// MemberUser is a membership joined with its user.
type MemberUser struct {
	TeamMember
	Name  string         `db:"name"`
	Email string         `db:"email"`
	Image sql.NullString `db:"image"`
}

// Invitation represents an invitation to join a team.
type Invitation struct {
	ID        string    `db:"id"`
	TeamID    string    `db:"team_id"`
	Email     string    `db:"email"`
	Role      string    `db:"role"`
	Status    string    `db:"status"`
	InvitedBy string    `db:"invited_by"`
	CreatedAt time.Time `db:"created_at"`
}
