package jobs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/taskflow-dev/taskflow/pkg/backend"
	"github.com/taskflow-dev/taskflow/pkg/config"
	"github.com/taskflow-dev/taskflow/pkg/storage"
	"github.com/taskflow-dev/taskflow/pkg/store/database"
	"github.com/taskflow-dev/taskflow/pkg/test"
)

func TestRegistered(t *testing.T) {
	is := is.New(t)
	list := List()
	is.True(len(list) >= 1)

	var found bool
	for _, j := range list {
		if j.Name == PruneBlobsName {
			found = true
		}
	}
	is.True(found)
}

func TestPruneBlobsSpec(t *testing.T) {
	is := is.New(t)
	is.Equal(pruneBlobs{}.Spec(context.Background()), "")

	cfg := config.DefaultConfig()
	cfg.Jobs.PruneBlobs = "@daily"
	is.Equal(pruneBlobs{}.Spec(config.WithContext(context.Background(), cfg)), "@daily")
}

func TestPruneBlobsRun(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	root := t.TempDir()
	blobs := storage.NewLocalStorage(root)
	dbx := test.OpenDB(ctx, t)
	be := backend.New(ctx, nil, dbx, database.New(ctx, dbx), blobs)
	ctx = backend.WithContext(ctx, be)

	_, err := blobs.Put("task/orphan", strings.NewReader("x"), "text/plain")
	is.NoErr(err)
	old := time.Now().Add(-2 * backend.PruneGrace)
	is.NoErr(os.Chtimes(filepath.Join(root, "objects", "task", "orphan"), old, old))

	is.NoErr(pruneBlobs{}.Func(ctx)())

	keys, err := blobs.List()
	is.NoErr(err)
	is.Equal(len(keys), 0)
}
