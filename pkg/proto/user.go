package proto

import (
	"time"

	"github.com/taskflow-dev/taskflow/pkg/access"
)

// User is an identity provisioned by the auth provider.
type User struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Image *string `json:"image"`
}

// Author returns the public part of the user.
func (u User) Author() *Author {
	return &Author{ID: u.ID, Name: u.Name, Image: u.Image}
}

// Team groups users and their shared tasks.
type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TeamWithRole is a team as seen by one of its members.
type TeamWithRole struct {
	Team
	Role access.Role `json:"role"`
}

// Membership grants a user a role within a team.
type Membership struct {
	ID       string      `json:"id"`
	TeamID   string      `json:"teamId"`
	UserID   string      `json:"userId"`
	Role     access.Role `json:"role"`
	JoinedAt time.Time   `json:"joinedAt"`
}

// Member is a membership with its user.
type Member struct {
	Membership
	User User `json:"user"`
}

// InvitationStatus is the state of an invitation.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationRejected InvitationStatus = "rejected"
)

// Invitation asks an email address to join a team.
type Invitation struct {
	ID        string           `json:"id"`
	TeamID    string           `json:"teamId"`
	Email     string           `json:"email"`
	Role      access.Role      `json:"role"`
	Status    InvitationStatus `json:"status"`
	InvitedBy string           `json:"invitedBy"`
	CreatedAt time.Time        `json:"createdAt"`
}

// InviteResult reports what an invitation did.
type InviteResult struct {
	Invitation Invitation `json:"invitation"`
	// Added is true when the email matched a user who is now a member.
	Added bool `json:"added"`
}
