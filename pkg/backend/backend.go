package backend

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/taskflow-dev/taskflow/pkg/config"
	"github.com/taskflow-dev/taskflow/pkg/db"
	"github.com/taskflow-dev/taskflow/pkg/storage"
	"github.com/taskflow-dev/taskflow/pkg/store"
)

// Backend is the taskflow backend that handles teams, tasks and their
// sub-resources, gated by team membership.
type Backend struct {
	ctx    context.Context
	cfg    *config.Config
	db     *db.DB
	store  store.Store
	blobs  storage.Storage
	logger *log.Logger
	cache  *cache
}

// New returns a new taskflow backend. A nil blob storage makes uploads fall
// back to inline data URLs.
func New(ctx context.Context, cfg *config.Config, db *db.DB, st store.Store, blobs storage.Storage) *Backend {
	logger := log.FromContext(ctx).WithPrefix("backend")
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	b := &Backend{
		ctx:    ctx,
		cfg:    cfg,
		db:     db,
		store:  st,
		blobs:  blobs,
		logger: logger,
	}

	b.cache = newCache(b, 1000, time.Minute)

	return b
}

// Inline reports whether uploads are stored as data URLs.
func (d *Backend) Inline() bool {
	return d.blobs == nil
}

func now() time.Time {
	return time.Now().UTC()
}
