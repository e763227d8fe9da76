package database

import (
	"context"

	"github.com/taskflow-dev/taskflow/pkg/db"
	"github.com/taskflow-dev/taskflow/pkg/db/models"
	"github.com/taskflow-dev/taskflow/pkg/store"
)

var _ store.UserStore = (*userStore)(nil)

type userStore struct{}

// CreateUser implements store.UserStore.
func (*userStore) CreateUser(ctx context.Context, h db.Handler, user models.User) error {
	query := h.Rebind(`
		INSERT INTO
		  users (id, name, email, image, created_at, updated_at)
		VALUES
		  (?, ?, ?, ?, ?, ?)
	`)
	_, err := h.ExecContext(ctx, query, user.ID, user.Name, user.Email,
		user.Image, user.CreatedAt, user.UpdatedAt)
	return err
}

// GetUserByID implements store.UserStore.
func (*userStore) GetUserByID(ctx context.Context, h db.Handler, id string) (models.User, error) {
	var user models.User
	query := h.Rebind(`SELECT * FROM users WHERE id = ?`)
	err := h.GetContext(ctx, &user, query, id)
	return user, err
}

// GetUserByEmail implements store.UserStore.
func (*userStore) GetUserByEmail(ctx context.Context, h db.Handler, email string) (models.User, error) {
	var user models.User
	query := h.Rebind(`SELECT * FROM users WHERE email = ?`)
	err := h.GetContext(ctx, &user, query, email)
	return user, err
}

// GetUserByEmailInTeam implements store.UserStore.
func (*userStore) GetUserByEmailInTeam(ctx context.Context, h db.Handler, teamID, email string) (models.User, error) {
	var user models.User
	query := h.Rebind(`
		SELECT
		  u.*
		FROM
		  users u
		  JOIN team_members tm ON tm.user_id = u.id
		WHERE
		  tm.team_id = ?
		  AND u.email = ?
	`)
	err := h.GetContext(ctx, &user, query, teamID, email)
	return user, err
}

// ListUsers implements store.UserStore.
func (*userStore) ListUsers(ctx context.Context, h db.Handler) ([]models.User, error) {
	var users []models.User
	query := h.Rebind(`SELECT * FROM users ORDER BY name ASC`)
	err := h.SelectContext(ctx, &users, query)
	return users, err
}

// ListUsersExcept implements store.UserStore.
func (*userStore) ListUsersExcept(ctx context.Context, h db.Handler, id string) ([]models.User, error) {
	var users []models.User
	query := h.Rebind(`SELECT * FROM users WHERE id <> ? ORDER BY name ASC`)
	err := h.SelectContext(ctx, &users, query, id)
	return users, err
}
