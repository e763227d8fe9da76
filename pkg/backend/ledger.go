package backend

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
	"github.com/taskflow-dev/taskflow/pkg/db"
	"github.com/taskflow-dev/taskflow/pkg/db/models"
	"github.com/taskflow-dev/taskflow/pkg/proto"
)

// Record appends an entry to a task's ledger. previous may be nil.
func (d *Backend) Record(ctx context.Context, taskID, changedBy string, changeType proto.ChangeType, previous, next proto.Snapshot) error {
	newData, err := encodeSnapshot(next)
	if err != nil {
		return err
	}
	var prevData types.NullJSONText
	if previous != nil {
		b, err := encodeSnapshot(previous)
		if err != nil {
			return err
		}
		prevData = types.NullJSONText{JSONText: b, Valid: true}
	}

	v := models.TaskVersion{
		ID:           uuid.NewString(),
		TaskID:       taskID,
		ChangedBy:    changedBy,
		ChangeType:   string(changeType),
		PreviousData: prevData,
		NewData:      newData,
		CreatedAt:    now(),
	}
	if err := d.store.CreateTaskVersion(ctx, d.db, v); err != nil {
		d.logger.Error("error recording task version", "task", taskID, "type", changeType, "err", err)
		return db.WrapError(err)
	}

	versionsRecorded.WithLabelValues(string(changeType)).Inc()
	return nil
}

// History returns a task's ledger, newest first.
func (d *Backend) History(ctx context.Context, caller proto.User, taskID string) ([]proto.Version, error) {
	if _, err := d.taskForCaller(ctx, caller, taskID); err != nil {
		return nil, err
	}

	ms, err := d.store.ListTaskVersions(ctx, d.db, taskID)
	if err != nil {
		return nil, db.WrapError(err)
	}
	versions := make([]proto.Version, 0, len(ms))
	for _, m := range ms {
		versions = append(versions, versionFromModel(m))
	}
	return versions, nil
}
