package database

import (
	"context"

	"github.com/taskflow-dev/taskflow/pkg/db"
	"github.com/taskflow-dev/taskflow/pkg/db/models"
	"github.com/taskflow-dev/taskflow/pkg/store"
)

var _ store.TeamStore = (*teamStore)(nil)

type teamStore struct{}

// CreateTeam implements store.TeamStore.
func (*teamStore) CreateTeam(ctx context.Context, h db.Handler, team models.Team) error {
	query := h.Rebind(`
		INSERT INTO
		  teams (id, name, created_at, updated_at)
		VALUES
		  (?, ?, ?, ?)
	`)
	_, err := h.ExecContext(ctx, query, team.ID, team.Name, team.CreatedAt, team.UpdatedAt)
	return err
}

// GetTeamByID implements store.TeamStore.
func (*teamStore) GetTeamByID(ctx context.Context, h db.Handler, id string) (models.Team, error) {
	var team models.Team
	query := h.Rebind(`SELECT * FROM teams WHERE id = ?`)
	err := h.GetContext(ctx, &team, query, id)
	return team, err
}

// ListTeamsByUser implements store.TeamStore.
func (*teamStore) ListTeamsByUser(ctx context.Context, h db.Handler, userID string) ([]models.TeamWithRole, error) {
	query := h.Rebind(`
		SELECT
		  t.*,
		  tm.role
		FROM
		  teams t
		  JOIN team_members tm ON tm.team_id = t.id
		WHERE
		  tm.user_id = ?
		ORDER BY
		  t.created_at ASC
	`)
	var teams []models.TeamWithRole
	err := h.SelectContext(ctx, &teams, query, userID)
	return teams, err
}

// AddUserToTeam implements store.TeamStore.
func (*teamStore) AddUserToTeam(ctx context.Context, h db.Handler, member models.TeamMember) error {
	query := h.Rebind(`
		INSERT INTO
		  team_members (id, team_id, user_id, role, joined_at)
		VALUES
		  (?, ?, ?, ?, ?)
	`)
	_, err := h.ExecContext(ctx, query, member.ID, member.TeamID, member.UserID,
		member.Role, member.JoinedAt)
	return err
}

// GetTeamMember implements store.TeamStore.
func (*teamStore) GetTeamMember(ctx context.Context, h db.Handler, teamID, userID string) (models.TeamMember, error) {
	var m models.TeamMember
	query := h.Rebind(`
		SELECT
		  *
		FROM
		  team_members
		WHERE
		  team_id = ?
		  AND user_id = ?
	`)
	err := h.GetContext(ctx, &m, query, teamID, userID)
	return m, err
}

// ListTeamMembers implements store.TeamStore.
func (*teamStore) ListTeamMembers(ctx context.Context, h db.Handler, teamID string) ([]models.MemberUser, error) {
	query := h.Rebind(`
		SELECT
		  tm.*,
		  u.name,
		  u.email,
		  u.image
		FROM
		  team_members tm
		  JOIN users u ON u.id = tm.user_id
		WHERE
		  tm.team_id = ?
		ORDER BY
		  tm.joined_at ASC
	`)
	var members []models.MemberUser
	err := h.SelectContext(ctx, &members, query, teamID)
	return members, err
}

var _ store.InvitationStore = (*invitationStore)(nil)

type invitationStore struct{}

// CreateInvitation implements store.InvitationStore.
func (*invitationStore) CreateInvitation(ctx context.Context, h db.Handler, inv models.Invitation) error {
	query := h.Rebind(`
		INSERT INTO
		  invitations (id, team_id, email, role, status, invited_by, created_at)
		VALUES
		  (?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := h.ExecContext(ctx, query, inv.ID, inv.TeamID, inv.Email, inv.Role,
		inv.Status, inv.InvitedBy, inv.CreatedAt)
	return err
}

// UpdateInvitationStatus implements store.InvitationStore.
func (*invitationStore) UpdateInvitationStatus(ctx context.Context, h db.Handler, id, status string) error {
	query := h.Rebind(`UPDATE invitations SET status = ? WHERE id = ?`)
	_, err := h.ExecContext(ctx, query, status, id)
	return err
}

// ListInvitations implements store.InvitationStore.
func (*invitationStore) ListInvitations(ctx context.Context, h db.Handler, teamID string) ([]models.Invitation, error) {
	query := h.Rebind(`
		SELECT
		  *
		FROM
		  invitations
		WHERE
		  team_id = ?
		ORDER BY
		  created_at DESC
	`)
	var invs []models.Invitation
	err := h.SelectContext(ctx, &invs, query, teamID)
	return invs, err
}
