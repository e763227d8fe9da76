package backend

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/taskflow-dev/taskflow/pkg/db"
	"github.com/taskflow-dev/taskflow/pkg/db/models"
	"github.com/taskflow-dev/taskflow/pkg/proto"
)

// AddComment adds a comment to a task and records it in the ledger.
func (d *Backend) AddComment(ctx context.Context, caller proto.User, taskID, content string) (proto.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return proto.Comment{}, proto.Invalid("Content is required")
	}
	if _, err := d.taskForCaller(ctx, caller, taskID); err != nil {
		return proto.Comment{}, err
	}

	m := models.Comment{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		UserID:    caller.ID,
		Content:   content,
		CreatedAt: now(),
	}
	if err := d.store.CreateComment(ctx, d.db, m); err != nil {
		d.logger.Error("error creating comment", "task", taskID, "err", err)
		return proto.Comment{}, db.WrapError(err)
	}

	if err := d.Record(ctx, taskID, caller.ID, proto.ChangeComment, nil, proto.Snapshot{
		"content": content,
	}); err != nil {
		return proto.Comment{}, err
	}

	c := commentFromModel(m)
	c.User = caller.Author()
	return c, nil
}

// ListComments lists a task's comments with their authors, newest first.
func (d *Backend) ListComments(ctx context.Context, caller proto.User, taskID string) ([]proto.Comment, error) {
	if _, err := d.taskForCaller(ctx, caller, taskID); err != nil {
		return nil, err
	}

	ms, err := d.store.ListComments(ctx, d.db, taskID)
	if err != nil {
		return nil, db.WrapError(err)
	}
	comments := make([]proto.Comment, 0, len(ms))
	for _, m := range ms {
		c := commentFromModel(m.Comment)
		c.User = &proto.Author{
			ID:    m.UserID,
			Name:  m.UserName,
			Image: strPtr(m.UserImage),
		}
		comments = append(comments, c)
	}
	return comments, nil
}
