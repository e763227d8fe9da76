package store

import (
	"context"

	"github.com/taskflow-dev/taskflow/pkg/db"
	"github.com/taskflow-dev/taskflow/pkg/db/models"
)

// TeamStore is a store for teams and their memberships.
type TeamStore interface {
	CreateTeam(ctx context.Context, h db.Handler, team models.Team) error
	GetTeamByID(ctx context.Context, h db.Handler, id string) (models.Team, error)
	ListTeamsByUser(ctx context.Context, h db.Handler, userID string) ([]models.TeamWithRole, error)
	AddUserToTeam(ctx context.Context, h db.Handler, member models.TeamMember) error
	GetTeamMember(ctx context.Context, h db.Handler, teamID, userID string) (models.TeamMember, error)
	ListTeamMembers(ctx context.Context, h db.Handler, teamID string) ([]models.MemberUser, error)
}

// InvitationStore is a store for team invitations.
type InvitationStore interface {
	CreateInvitation(ctx context.Context, h db.Handler, inv models.Invitation) error
	UpdateInvitationStatus(ctx context.Context, h db.Handler, id, status string) error
	ListInvitations(ctx context.Context, h db.Handler, teamID string) ([]models.Invitation, error)
}
