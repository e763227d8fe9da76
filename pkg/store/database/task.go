package database

import (
	"context"
	"time"

	"github.com/taskflow-dev/taskflow/pkg/db"
	"github.com/taskflow-dev/taskflow/pkg/db/models"
	"github.com/taskflow-dev/taskflow/pkg/store"
)

var _ store.TaskStore = (*taskStore)(nil)

type taskStore struct{}

// CreateTask implements store.TaskStore.
func (*taskStore) CreateTask(ctx context.Context, h db.Handler, t models.Task) error {
	query := h.Rebind(`
		INSERT INTO
		  tasks (id, title, description, status, priority, user_id, team_id,
		    assignee_id, time_limit, due_date, created_at, updated_at)
		VALUES
		  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := h.ExecContext(ctx, query, t.ID, t.Title, t.Description, t.Status,
		t.Priority, t.UserID, t.TeamID, t.AssigneeID, t.TimeLimit, t.DueDate,
		t.CreatedAt, t.UpdatedAt)
	return err
}

// GetTaskByID implements store.TaskStore.
func (*taskStore) GetTaskByID(ctx context.Context, h db.Handler, id string) (models.Task, error) {
	var t models.Task
	query := h.Rebind(`SELECT * FROM tasks WHERE id = ?`)
	err := h.GetContext(ctx, &t, query, id)
	return t, err
}

// ListTeamTasks implements store.TaskStore.
func (*taskStore) ListTeamTasks(ctx context.Context, h db.Handler, teamID string) ([]models.Task, error) {
	query := h.Rebind(`
		SELECT
		  *
		FROM
		  tasks
		WHERE
		  team_id = ?
		ORDER BY
		  created_at DESC
	`)
	var tasks []models.Task
	err := h.SelectContext(ctx, &tasks, query, teamID)
	return tasks, err
}

// ListPersonalTasks implements store.TaskStore.
func (*taskStore) ListPersonalTasks(ctx context.Context, h db.Handler, userID string) ([]models.Task, error) {
	query := h.Rebind(`
		SELECT
		  *
		FROM
		  tasks
		WHERE
		  user_id = ?
		  AND team_id IS NULL
		ORDER BY
		  created_at DESC
	`)
	var tasks []models.Task
	err := h.SelectContext(ctx, &tasks, query, userID)
	return tasks, err
}

// UpdateTask implements store.TaskStore.
func (*taskStore) UpdateTask(ctx context.Context, h db.Handler, t models.Task) error {
	query := h.Rebind(`
		UPDATE
		  tasks
		SET
		  title = ?,
		  description = ?,
		  status = ?,
		  priority = ?,
		  assignee_id = ?,
		  time_limit = ?,
		  due_date = ?,
		  updated_at = ?
		WHERE
		  id = ?
	`)
	res, err := h.ExecContext(ctx, query, t.Title, t.Description, t.Status,
		t.Priority, t.AssigneeID, t.TimeLimit, t.DueDate, t.UpdatedAt, t.ID)
	if err != nil {
		return err
	}
	return expectRows(res)
}

// DeleteTaskByID implements store.TaskStore. Dependent rows are removed
// explicitly so the delete does not rely on foreign key enforcement.
func (*taskStore) DeleteTaskByID(ctx context.Context, h db.Handler, id string) error {
	for _, table := range []string{"task_versions", "comments", "attachments", "subtasks"} {
		query := h.Rebind(`DELETE FROM ` + table + ` WHERE task_id = ?`)
		if _, err := h.ExecContext(ctx, query, id); err != nil {
			return err
		}
	}

	res, err := h.ExecContext(ctx, h.Rebind(`DELETE FROM tasks WHERE id = ?`), id)
	if err != nil {
		return err
	}
	return expectRows(res)
}

// ListTaskCreationTimes implements store.TaskStore.
func (*taskStore) ListTaskCreationTimes(ctx context.Context, h db.Handler, userID string) ([]time.Time, error) {
	query := h.Rebind(`
		SELECT
		  created_at
		FROM
		  tasks
		WHERE
		  user_id = ?
		ORDER BY
		  created_at ASC
	`)
	var times []time.Time
	err := h.SelectContext(ctx, &times, query, userID)
	return times, err
}
