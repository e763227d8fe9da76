package backend

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/taskflow-dev/taskflow/pkg/db"
	"github.com/taskflow-dev/taskflow/pkg/proto"
)

// AddSubtask appends a subtask to the end of a task's checklist. The order is
// read and then written without a guard, so concurrent calls may share one.
func (d *Backend) AddSubtask(ctx context.Context, caller proto.User, taskID, title string) (proto.Subtask, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return proto.Subtask{}, proto.Invalid("Title is required")
	}
	if _, err := d.taskForCaller(ctx, caller, taskID); err != nil {
		return proto.Subtask{}, err
	}

	order, err := d.store.NextSubtaskOrder(ctx, d.db, taskID)
	if err != nil {
		d.logger.Error("error computing subtask order", "task", taskID, "err", err)
		return proto.Subtask{}, db.WrapError(err)
	}

	s := proto.Subtask{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		Title:     title,
		Order:     order,
		CreatedAt: now(),
	}
	if err := d.store.CreateSubtask(ctx, d.db, subtaskToModel(s)); err != nil {
		d.logger.Error("error creating subtask", "task", taskID, "err", err)
		return proto.Subtask{}, db.WrapError(err)
	}

	return s, nil
}

// UpdateSubtask applies a partial update to a subtask of taskID.
func (d *Backend) UpdateSubtask(ctx context.Context, caller proto.User, taskID, id string, patch proto.SubtaskPatch) (proto.Subtask, error) {
	if err := patch.Validate(); err != nil {
		return proto.Subtask{}, err
	}
	if _, err := d.taskForCaller(ctx, caller, taskID); err != nil {
		return proto.Subtask{}, err
	}

	m, err := d.store.GetSubtask(ctx, d.db, taskID, id)
	if err != nil {
		return proto.Subtask{}, d.subtaskError(err, id)
	}

	s := patch.Apply(subtaskFromModel(m))
	if err := d.store.UpdateSubtask(ctx, d.db, subtaskToModel(s)); err != nil {
		return proto.Subtask{}, d.subtaskError(err, id)
	}

	return s, nil
}

// DeleteSubtask removes a subtask. Remaining orders are left as they are.
func (d *Backend) DeleteSubtask(ctx context.Context, caller proto.User, taskID, id string) error {
	if _, err := d.taskForCaller(ctx, caller, taskID); err != nil {
		return err
	}
	if err := d.store.DeleteSubtask(ctx, d.db, taskID, id); err != nil {
		return d.subtaskError(err, id)
	}
	return nil
}

// ListSubtasks lists a task's subtasks in ascending order.
func (d *Backend) ListSubtasks(ctx context.Context, caller proto.User, taskID string) ([]proto.Subtask, error) {
	if _, err := d.taskForCaller(ctx, caller, taskID); err != nil {
		return nil, err
	}

	ms, err := d.store.ListSubtasks(ctx, d.db, taskID)
	if err != nil {
		return nil, db.WrapError(err)
	}
	subtasks := make([]proto.Subtask, 0, len(ms))
	for _, m := range ms {
		subtasks = append(subtasks, subtaskFromModel(m))
	}
	return subtasks, nil
}

func (d *Backend) subtaskError(err error, id string) error {
	err = db.WrapError(err)
	if errors.Is(err, db.ErrRecordNotFound) {
		return proto.ErrSubtaskNotFound
	}
	d.logger.Error("error writing subtask", "subtask", id, "err", err)
	return err
}
