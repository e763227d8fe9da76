package backend

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/taskflow-dev/taskflow/pkg/db"
	"github.com/taskflow-dev/taskflow/pkg/db/models"
	"github.com/taskflow-dev/taskflow/pkg/proto"
)

// ListTasks lists the tasks of a team, or the caller's personal tasks when
// teamID is empty.
func (d *Backend) ListTasks(ctx context.Context, caller proto.User, teamID string) ([]proto.Task, error) {
	var (
		ms  []models.Task
		err error
	)
	if teamID != "" {
		if _, err := d.RequireMembership(ctx, teamID, caller.ID); err != nil {
			return nil, err
		}
		ms, err = d.store.ListTeamTasks(ctx, d.db, teamID)
	} else {
		ms, err = d.store.ListPersonalTasks(ctx, d.db, caller.ID)
	}
	if err != nil {
		d.logger.Error("error listing tasks", "team", teamID, "err", err)
		return nil, db.WrapError(err)
	}

	tasks := make([]proto.Task, 0, len(ms))
	for _, m := range ms {
		tasks = append(tasks, taskFromModel(m))
	}
	return tasks, nil
}

// GetTask returns a task the caller can read.
func (d *Backend) GetTask(ctx context.Context, caller proto.User, id string) (proto.Task, error) {
	return d.taskForCaller(ctx, caller, id)
}

// CreateTask creates a task owned by the caller.
func (d *Backend) CreateTask(ctx context.Context, caller proto.User, opts proto.TaskOptions) (proto.Task, error) {
	opts.Title = strings.TrimSpace(opts.Title)
	if opts.Title == "" {
		return proto.Task{}, proto.Invalid("Title is required")
	}
	if opts.Status == "" {
		opts.Status = proto.StatusTodo
	}
	if !opts.Status.Valid() {
		return proto.Task{}, proto.Invalid("Invalid status")
	}
	if opts.Priority == "" {
		opts.Priority = proto.PriorityMedium
	}
	if !opts.Priority.Valid() {
		return proto.Task{}, proto.Invalid("Invalid priority")
	}
	if opts.TimeLimit != nil && *opts.TimeLimit < 0 {
		return proto.Task{}, proto.Invalid("Time limit must not be negative")
	}

	if opts.TeamID != nil {
		if _, err := d.RequireMembership(ctx, *opts.TeamID, caller.ID); err != nil {
			return proto.Task{}, err
		}
	}
	if err := d.checkAssignee(ctx, opts.AssigneeID); err != nil {
		return proto.Task{}, err
	}

	t := now()
	task := proto.Task{
		ID:          uuid.NewString(),
		Title:       opts.Title,
		Description: opts.Description,
		Status:      opts.Status,
		Priority:    opts.Priority,
		UserID:      caller.ID,
		TeamID:      opts.TeamID,
		AssigneeID:  opts.AssigneeID,
		TimeLimit:   opts.TimeLimit,
		DueDate:     opts.DueDate,
		CreatedAt:   t,
		UpdatedAt:   t,
	}
	if err := d.store.CreateTask(ctx, d.db, taskToModel(task)); err != nil {
		d.logger.Error("error creating task", "err", err)
		return proto.Task{}, db.WrapError(err)
	}

	tasksCreated.Inc()
	return task, nil
}

// UpdateTask applies a partial update to a task. An "update" ledger entry
// holding the prior row and the merged row is written before the task.
func (d *Backend) UpdateTask(ctx context.Context, caller proto.User, id string, patch proto.TaskPatch) (proto.Task, error) {
	if err := patch.Validate(); err != nil {
		return proto.Task{}, err
	}

	prior, err := d.taskForCaller(ctx, caller, id)
	if err != nil {
		return proto.Task{}, err
	}
	if patch.AssigneeID.Set && !patch.AssigneeID.Null {
		if err := d.checkAssignee(ctx, &patch.AssigneeID.Value); err != nil {
			return proto.Task{}, err
		}
	}

	merged := patch.Apply(prior)
	if err := d.Record(ctx, id, caller.ID, proto.ChangeUpdate, prior.Snapshot(), merged.Snapshot()); err != nil {
		return proto.Task{}, err
	}

	merged.UpdatedAt = now()
	if err := d.store.UpdateTask(ctx, d.db, taskToModel(merged)); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.Task{}, proto.ErrTaskNotFound
		}
		d.logger.Error("error updating task", "task", id, "err", err)
		return proto.Task{}, err
	}

	tasksUpdated.Inc()
	return merged, nil
}

// DeleteTask removes a task with its subtasks, comments, attachments and
// ledger. Stored blobs of its attachments are removed afterwards.
func (d *Backend) DeleteTask(ctx context.Context, caller proto.User, id string) error {
	if _, err := d.taskForCaller(ctx, caller, id); err != nil {
		return err
	}

	var urls []string
	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		urls, err = d.store.ListAttachmentURLs(ctx, tx, id)
		if err != nil {
			return err
		}
		return d.store.DeleteTaskByID(ctx, tx, id)
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.ErrTaskNotFound
		}
		d.logger.Error("error deleting task", "task", id, "err", err)
		return err
	}

	d.removeBlobs(id, urls)
	tasksDeleted.Inc()
	return nil
}

func (d *Backend) checkAssignee(ctx context.Context, id *string) error {
	if id == nil {
		return nil
	}
	if _, err := d.UserByID(ctx, *id); err != nil {
		if errors.Is(err, proto.ErrUserNotFound) {
			return proto.Invalid("Assignee not found")
		}
		return err
	}
	return nil
}
