package backend

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/taskflow-dev/taskflow/pkg/access"
	"github.com/taskflow-dev/taskflow/pkg/db"
	"github.com/taskflow-dev/taskflow/pkg/db/models"
	"github.com/taskflow-dev/taskflow/pkg/proto"
)

// CreateTeam creates a team with the caller as its only owner.
func (d *Backend) CreateTeam(ctx context.Context, caller proto.User, name string) (proto.TeamWithRole, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return proto.TeamWithRole{}, proto.Invalid("Team name is required")
	}

	t := now()
	team := models.Team{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: t,
		UpdatedAt: t,
	}
	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if err := d.store.CreateTeam(ctx, tx, team); err != nil {
			return err
		}
		return d.store.AddUserToTeam(ctx, tx, models.TeamMember{
			ID:       uuid.NewString(),
			TeamID:   team.ID,
			UserID:   caller.ID,
			Role:     access.OwnerRole.String(),
			JoinedAt: t,
		})
	}); err != nil {
		d.logger.Error("error creating team", "name", name, "err", err)
		return proto.TeamWithRole{}, db.WrapError(err)
	}

	teamsCreated.Inc()
	return proto.TeamWithRole{Team: teamFromModel(team), Role: access.OwnerRole}, nil
}

// ListTeams lists the teams the caller belongs to with the caller's role.
func (d *Backend) ListTeams(ctx context.Context, caller proto.User) ([]proto.TeamWithRole, error) {
	ms, err := d.store.ListTeamsByUser(ctx, d.db, caller.ID)
	if err != nil {
		return nil, db.WrapError(err)
	}
	teams := make([]proto.TeamWithRole, 0, len(ms))
	for _, m := range ms {
		teams = append(teams, proto.TeamWithRole{
			Team: teamFromModel(m.Team),
			Role: access.ParseRole(m.Role),
		})
	}
	return teams, nil
}

// ListMembers lists the members of a team the caller belongs to.
func (d *Backend) ListMembers(ctx context.Context, caller proto.User, teamID string) ([]proto.Member, error) {
	if _, err := d.RequireMembership(ctx, teamID, caller.ID); err != nil {
		return nil, err
	}

	ms, err := d.store.ListTeamMembers(ctx, d.db, teamID)
	if err != nil {
		return nil, db.WrapError(err)
	}
	members := make([]proto.Member, 0, len(ms))
	for _, m := range ms {
		members = append(members, proto.Member{
			Membership: membershipFromModel(m.TeamMember),
			User: proto.User{
				ID:    m.UserID,
				Name:  m.Name,
				Email: m.Email,
				Image: strPtr(m.Image),
			},
		})
	}
	return members, nil
}

// Invite invites email into a team. The caller must be an owner or admin.
// When email belongs to a known user the membership is created right away
// and the invitation is marked accepted; otherwise it stays pending.
func (d *Backend) Invite(ctx context.Context, caller proto.User, teamID, email string, role access.Role) (proto.InviteResult, error) {
	m, err := d.RequireMembership(ctx, teamID, caller.ID)
	if err != nil {
		return proto.InviteResult{}, err
	}
	if err := RequireAdminOrOwner(m); err != nil {
		return proto.InviteResult{}, err
	}

	if role == access.NoRole {
		role = access.MemberRole
	}
	if !role.Invitable() {
		return proto.InviteResult{}, proto.Invalid("Role must be admin or member")
	}

	email = normalizeEmail(email)
	t := now()
	inv := models.Invitation{
		ID:        uuid.NewString(),
		TeamID:    teamID,
		Email:     email,
		Role:      role.String(),
		Status:    string(proto.InvitationPending),
		InvitedBy: caller.ID,
		CreatedAt: t,
	}

	var added bool
	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if _, err := d.store.GetUserByEmailInTeam(ctx, tx, teamID, email); err == nil {
			return proto.ErrAlreadyInTeam
		} else if err = db.WrapError(err); !errors.Is(err, db.ErrRecordNotFound) {
			return err
		}

		if err := d.store.CreateInvitation(ctx, tx, inv); err != nil {
			return err
		}

		user, err := d.store.GetUserByEmail(ctx, tx, email)
		if err != nil {
			if err = db.WrapError(err); errors.Is(err, db.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		if err := d.store.AddUserToTeam(ctx, tx, models.TeamMember{
			ID:       uuid.NewString(),
			TeamID:   teamID,
			UserID:   user.ID,
			Role:     inv.Role,
			JoinedAt: t,
		}); err != nil {
			return err
		}
		inv.Status = string(proto.InvitationAccepted)
		added = true
		return d.store.UpdateInvitationStatus(ctx, tx, inv.ID, inv.Status)
	}); err != nil {
		if errors.Is(err, proto.ErrAlreadyInTeam) {
			return proto.InviteResult{}, proto.ErrAlreadyInTeam
		}
		err = db.WrapError(err)
		if errors.Is(err, db.ErrDuplicateKey) {
			return proto.InviteResult{}, proto.ErrAlreadyInTeam
		}
		d.logger.Error("error inviting user", "team", teamID, "email", email, "err", err)
		return proto.InviteResult{}, err
	}

	invitationsCreated.WithLabelValues(inv.Status).Inc()
	return proto.InviteResult{Invitation: invitationFromModel(inv), Added: added}, nil
}

// ListInvitations lists a team's invitations, newest first. The caller must be
// an owner or admin.
func (d *Backend) ListInvitations(ctx context.Context, caller proto.User, teamID string) ([]proto.Invitation, error) {
	m, err := d.RequireMembership(ctx, teamID, caller.ID)
	if err != nil {
		return nil, err
	}
	if err := RequireAdminOrOwner(m); err != nil {
		return nil, err
	}

	ms, err := d.store.ListInvitations(ctx, d.db, teamID)
	if err != nil {
		return nil, db.WrapError(err)
	}
	invs := make([]proto.Invitation, 0, len(ms))
	for _, m := range ms {
		invs = append(invs, invitationFromModel(m))
	}
	return invs, nil
}
