package backend

import (
	"context"
	"errors"
	"io/fs"
	"time"

	"github.com/taskflow-dev/taskflow/pkg/db"
)

// PruneGrace is how old an unreferenced blob must be before it is pruned.
// Uploads store the blob before inserting the row that references it.
const PruneGrace = time.Hour

// PruneBlobs removes stored objects no attachment references and returns the
// number removed.
func (d *Backend) PruneBlobs(ctx context.Context) (int, error) {
	if d.blobs == nil {
		return 0, nil
	}

	urls, err := d.store.ListAllAttachmentURLs(ctx, d.db)
	if err != nil {
		return 0, db.WrapError(err)
	}
	referenced := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		if key, ok := blobKeyFromURL(u); ok {
			referenced[key] = struct{}{}
		}
	}

	keys, err := d.blobs.List()
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-PruneGrace)
	var pruned int
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return pruned, err
		}
		if _, ok := referenced[key]; ok {
			continue
		}
		fi, err := d.blobs.Stat(key)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return pruned, err
		}
		if fi.ModTime().After(cutoff) {
			continue
		}
		if err := d.blobs.Delete(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return pruned, err
		}
		d.logger.Debug("pruned blob", "key", key)
		pruned++
	}

	blobsPruned.Add(float64(pruned))
	return pruned, nil
}
