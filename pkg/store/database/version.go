package database

import (
	"context"

	"github.com/taskflow-dev/taskflow/pkg/db"
	"github.com/taskflow-dev/taskflow/pkg/db/models"
	"github.com/taskflow-dev/taskflow/pkg/store"
)

var _ store.VersionStore = (*versionStore)(nil)

type versionStore struct{}

// CreateTaskVersion implements store.VersionStore. The seq column is
// assigned by the database.
func (*versionStore) CreateTaskVersion(ctx context.Context, h db.Handler, v models.TaskVersion) error {
	query := h.Rebind(`
		INSERT INTO
		  task_versions (id, task_id, changed_by, change_type, previous_data,
		    new_data, created_at)
		VALUES
		  (?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := h.ExecContext(ctx, query, v.ID, v.TaskID, v.ChangedBy, v.ChangeType,
		v.PreviousData, v.NewData, v.CreatedAt)
	return err
}

// ListTaskVersions implements store.VersionStore. Newest entries come first
// and entries sharing a timestamp keep insertion order.
func (*versionStore) ListTaskVersions(ctx context.Context, h db.Handler, taskID string) ([]models.TaskVersionWithAuthor, error) {
	query := h.Rebind(`
		SELECT
		  v.*,
		  u.name AS user_name,
		  u.image AS user_image
		FROM
		  task_versions v
		  JOIN users u ON u.id = v.changed_by
		WHERE
		  v.task_id = ?
		ORDER BY
		  v.created_at DESC,
		  v.seq DESC
	`)
	var versions []models.TaskVersionWithAuthor
	err := h.SelectContext(ctx, &versions, query, taskID)
	return versions, err
}
