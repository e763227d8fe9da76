// Package database implements store.Store on top of SQL databases.
package database

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/taskflow-dev/taskflow/pkg/config"
	"github.com/taskflow-dev/taskflow/pkg/db"
	"github.com/taskflow-dev/taskflow/pkg/store"
)

type datastore struct {
	ctx    context.Context
	cfg    *config.Config
	db     *db.DB
	logger *log.Logger

	*userStore
	*teamStore
	*invitationStore
	*taskStore
	*subtaskStore
	*commentStore
	*attachmentStore
	*versionStore
}

// New returns a new store.Store database.
func New(ctx context.Context, db *db.DB) store.Store {
	cfg := config.FromContext(ctx)
	logger := log.FromContext(ctx).WithPrefix("store")

	s := &datastore{
		ctx:    ctx,
		cfg:    cfg,
		db:     db,
		logger: logger,

		userStore:       &userStore{},
		teamStore:       &teamStore{},
		invitationStore: &invitationStore{},
		taskStore:       &taskStore{},
		subtaskStore:    &subtaskStore{},
		commentStore:    &commentStore{},
		attachmentStore: &attachmentStore{},
		versionStore:    &versionStore{},
	}

	return s
}
