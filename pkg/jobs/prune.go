package jobs

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/taskflow-dev/taskflow/pkg/backend"
	"github.com/taskflow-dev/taskflow/pkg/config"
)

// PruneBlobsName is the name of the blob pruning job.
const PruneBlobsName = "prune-blobs"

func init() {
	Register(PruneBlobsName, pruneBlobs{})
}

// pruneBlobs removes stored attachment bytes no attachment row references.
type pruneBlobs struct{}

var _ Runner = pruneBlobs{}

// Spec implements Runner.
func (pruneBlobs) Spec(ctx context.Context) string {
	cfg := config.FromContext(ctx)
	if cfg == nil {
		return ""
	}
	return cfg.Jobs.PruneBlobs
}

// Func implements Runner.
func (pruneBlobs) Func(ctx context.Context) func() error {
	be := backend.FromContext(ctx)
	logger := log.FromContext(ctx).WithPrefix("jobs.prune-blobs")
	return func() error {
		n, err := be.PruneBlobs(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			logger.Info("pruned unreferenced blobs", "count", n)
		}
		return nil
	}
}
