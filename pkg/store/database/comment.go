package database

import (
	"context"

	"github.com/taskflow-dev/taskflow/pkg/db"
	"github.com/taskflow-dev/taskflow/pkg/db/models"
	"github.com/taskflow-dev/taskflow/pkg/store"
)

var _ store.CommentStore = (*commentStore)(nil)

type commentStore struct{}

// CreateComment implements store.CommentStore.
func (*commentStore) CreateComment(ctx context.Context, h db.Handler, c models.Comment) error {
	query := h.Rebind(`
		INSERT INTO
		  comments (id, task_id, user_id, content, created_at)
		VALUES
		  (?, ?, ?, ?, ?)
	`)
	_, err := h.ExecContext(ctx, query, c.ID, c.TaskID, c.UserID, c.Content, c.CreatedAt)
	return err
}

// ListComments implements store.CommentStore. Newest comments come first.
func (*commentStore) ListComments(ctx context.Context, h db.Handler, taskID string) ([]models.CommentWithAuthor, error) {
	query := h.Rebind(`
		SELECT
		  c.*,
		  u.name AS user_name,
		  u.image AS user_image
		FROM
		  comments c
		  JOIN users u ON u.id = c.user_id
		WHERE
		  c.task_id = ?
		ORDER BY
		  c.created_at DESC
	`)
	var comments []models.CommentWithAuthor
	err := h.SelectContext(ctx, &comments, query, taskID)
	return comments, err
}
