package database

import (
	"context"

	"github.com/taskflow-dev/taskflow/pkg/db"
	"github.com/taskflow-dev/taskflow/pkg/db/models"
	"github.com/taskflow-dev/taskflow/pkg/store"
)

var _ store.SubtaskStore = (*subtaskStore)(nil)

type subtaskStore struct{}

// CreateSubtask implements store.SubtaskStore.
func (*subtaskStore) CreateSubtask(ctx context.Context, h db.Handler, s models.Subtask) error {
	query := h.Rebind(`
		INSERT INTO
		  subtasks (id, task_id, title, completed, sort_order, created_at)
		VALUES
		  (?, ?, ?, ?, ?, ?)
	`)
	_, err := h.ExecContext(ctx, query, s.ID, s.TaskID, s.Title, s.Completed, s.Order, s.CreatedAt)
	return err
}

// NextSubtaskOrder implements store.SubtaskStore. It returns 0 for a task
// without subtasks.
func (*subtaskStore) NextSubtaskOrder(ctx context.Context, h db.Handler, taskID string) (int64, error) {
	var next int64
	query := h.Rebind(`
		SELECT
		  COALESCE(MAX(sort_order), -1) + 1
		FROM
		  subtasks
		WHERE
		  task_id = ?
	`)
	err := h.GetContext(ctx, &next, query, taskID)
	return next, err
}

// GetSubtask implements store.SubtaskStore.
func (*subtaskStore) GetSubtask(ctx context.Context, h db.Handler, taskID, id string) (models.Subtask, error) {
	var s models.Subtask
	query := h.Rebind(`SELECT * FROM subtasks WHERE task_id = ? AND id = ?`)
	err := h.GetContext(ctx, &s, query, taskID, id)
	return s, err
}

// ListSubtasks implements store.SubtaskStore.
func (*subtaskStore) ListSubtasks(ctx context.Context, h db.Handler, taskID string) ([]models.Subtask, error) {
	query := h.Rebind(`
		SELECT
		  *
		FROM
		  subtasks
		WHERE
		  task_id = ?
		ORDER BY
		  sort_order ASC,
		  created_at ASC
	`)
	var subtasks []models.Subtask
	err := h.SelectContext(ctx, &subtasks, query, taskID)
	return subtasks, err
}

// UpdateSubtask implements store.SubtaskStore.
func (*subtaskStore) UpdateSubtask(ctx context.Context, h db.Handler, s models.Subtask) error {
	query := h.Rebind(`
		UPDATE
		  subtasks
		SET
		  title = ?,
		  completed = ?,
		  sort_order = ?
		WHERE
		  task_id = ?
		  AND id = ?
	`)
	res, err := h.ExecContext(ctx, query, s.Title, s.Completed, s.Order, s.TaskID, s.ID)
	if err != nil {
		return err
	}
	return expectRows(res)
}

// DeleteSubtask implements store.SubtaskStore.
func (*subtaskStore) DeleteSubtask(ctx context.Context, h db.Handler, taskID, id string) error {
	query := h.Rebind(`DELETE FROM subtasks WHERE task_id = ? AND id = ?`)
	res, err := h.ExecContext(ctx, query, taskID, id)
	if err != nil {
		return err
	}
	return expectRows(res)
}
