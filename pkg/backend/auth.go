package backend

import (
	"context"
	"errors"

	"github.com/taskflow-dev/taskflow/pkg/db"
	"github.com/taskflow-dev/taskflow/pkg/proto"
	"github.com/taskflow-dev/taskflow/pkg/session"
)

// RequireUser resolves the caller from the session in ctx.
func (d *Backend) RequireUser(ctx context.Context) (proto.User, error) {
	s, ok := session.FromContext(ctx)
	if !ok || s.UserID == "" {
		return proto.User{}, proto.ErrUnauthenticated
	}

	user, err := d.UserByID(ctx, s.UserID)
	if err != nil {
		if errors.Is(err, proto.ErrUserNotFound) {
			d.logger.Debug("session user not found", "user", s.UserID)
			return proto.User{}, proto.ErrUnauthenticated
		}
		return proto.User{}, err
	}

	return user, nil
}

// RequireMembership returns the membership of userID in teamID.
func (d *Backend) RequireMembership(ctx context.Context, teamID, userID string) (proto.Membership, error) {
	m, err := d.store.GetTeamMember(ctx, d.db, teamID, userID)
	if err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.Membership{}, proto.ErrNotTeamMember
		}
		d.logger.Error("error finding membership", "team", teamID, "user", userID, "err", err)
		return proto.Membership{}, err
	}

	return membershipFromModel(m), nil
}

// RequireAdminOrOwner fails unless the membership may manage the team.
func RequireAdminOrOwner(m proto.Membership) error {
	if !m.Role.CanInvite() {
		return proto.ErrInsufficientRole
	}
	return nil
}

// canReadTask checks that caller may see t. Personal tasks are visible to
// their creator only; team tasks to every member of the team.
func (d *Backend) canReadTask(ctx context.Context, caller proto.User, t proto.Task) error {
	if t.TeamID == nil {
		if t.UserID != caller.ID {
			return proto.ErrForbidden
		}
		return nil
	}

	_, err := d.RequireMembership(ctx, *t.TeamID, caller.ID)
	return err
}

// taskForCaller loads a task and checks read access.
func (d *Backend) taskForCaller(ctx context.Context, caller proto.User, id string) (proto.Task, error) {
	m, err := d.store.GetTaskByID(ctx, d.db, id)
	if err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.Task{}, proto.ErrTaskNotFound
		}
		d.logger.Error("error finding task", "task", id, "err", err)
		return proto.Task{}, err
	}

	t := taskFromModel(m)
	if err := d.canReadTask(ctx, caller, t); err != nil {
		return proto.Task{}, err
	}

	return t, nil
}
