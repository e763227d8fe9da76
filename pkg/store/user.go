package store

import (
	"context"

	"github.com/taskflow-dev/taskflow/pkg/db"
	"github.com/taskflow-dev/taskflow/pkg/db/models"
)

// UserStore is a store for users.
type UserStore interface {
	CreateUser(ctx context.Context, h db.Handler, user models.User) error
	GetUserByID(ctx context.Context, h db.Handler, id string) (models.User, error)
	GetUserByEmail(ctx context.Context, h db.Handler, email string) (models.User, error)
	GetUserByEmailInTeam(ctx context.Context, h db.Handler, teamID, email string) (models.User, error)
	ListUsers(ctx context.Context, h db.Handler) ([]models.User, error)
	ListUsersExcept(ctx context.Context, h db.Handler, id string) ([]models.User, error)
}
