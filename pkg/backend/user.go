package backend

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/taskflow-dev/taskflow/pkg/db"
	"github.com/taskflow-dev/taskflow/pkg/db/models"
	"github.com/taskflow-dev/taskflow/pkg/proto"
)

// UserByID finds a user by ID.
func (d *Backend) UserByID(ctx context.Context, id string) (proto.User, error) {
	if u, ok := d.cache.Get(id); ok {
		return u, nil
	}

	m, err := d.store.GetUserByID(ctx, d.db, id)
	if err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.User{}, proto.ErrUserNotFound
		}
		d.logger.Error("error finding user", "id", id, "err", err)
		return proto.User{}, err
	}

	u := userFromModel(m)
	d.cache.Set(id, u)
	return u, nil
}

// UserByEmail finds a user by email address.
func (d *Backend) UserByEmail(ctx context.Context, email string) (proto.User, error) {
	m, err := d.store.GetUserByEmail(ctx, d.db, normalizeEmail(email))
	if err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.User{}, proto.ErrUserNotFound
		}
		d.logger.Error("error finding user", "email", email, "err", err)
		return proto.User{}, err
	}

	return userFromModel(m), nil
}

// CreateUser provisions a user. Identities normally come from the auth
// provider; this backs the admin command.
func (d *Backend) CreateUser(ctx context.Context, name, email string, image *string) (proto.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return proto.User{}, proto.Invalid("Name is required")
	}
	email = normalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return proto.User{}, proto.Invalid("Invalid email")
	}

	t := now()
	m := models.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Image:     nullStr(image),
		CreatedAt: t,
		UpdatedAt: t,
	}
	if err := d.store.CreateUser(ctx, d.db, m); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrDuplicateKey) {
			return proto.User{}, proto.ErrUserExists
		}
		d.logger.Error("error creating user", "email", email, "err", err)
		return proto.User{}, err
	}

	return userFromModel(m), nil
}

// ListUsers lists every user.
func (d *Backend) ListUsers(ctx context.Context) ([]proto.User, error) {
	ms, err := d.store.ListUsers(ctx, d.db)
	if err != nil {
		return nil, db.WrapError(err)
	}
	users := make([]proto.User, 0, len(ms))
	for _, m := range ms {
		users = append(users, userFromModel(m))
	}
	return users, nil
}

// ListOtherUsers lists every user except the caller.
func (d *Backend) ListOtherUsers(ctx context.Context, caller proto.User) ([]proto.User, error) {
	ms, err := d.store.ListUsersExcept(ctx, d.db, caller.ID)
	if err != nil {
		return nil, db.WrapError(err)
	}
	users := make([]proto.User, 0, len(ms))
	for _, m := range ms {
		users = append(users, userFromModel(m))
	}
	return users, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
