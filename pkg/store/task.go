package store

import (
	"context"
	"time"

	"github.com/taskflow-dev/taskflow/pkg/db"
	"github.com/taskflow-dev/taskflow/pkg/db/models"
)

// TaskStore is a store for tasks.
type TaskStore interface {
	CreateTask(ctx context.Context, h db.Handler, task models.Task) error
	GetTaskByID(ctx context.Context, h db.Handler, id string) (models.Task, error)
	ListTeamTasks(ctx context.Context, h db.Handler, teamID string) ([]models.Task, error)
	ListPersonalTasks(ctx context.Context, h db.Handler, userID string) ([]models.Task, error)
	UpdateTask(ctx context.Context, h db.Handler, task models.Task) error
	DeleteTaskByID(ctx context.Context, h db.Handler, id string) error
	ListTaskCreationTimes(ctx context.Context, h db.Handler, userID string) ([]time.Time, error)
}

// SubtaskStore is a store for subtasks.
type SubtaskStore interface {
	CreateSubtask(ctx context.Context, h db.Handler, subtask models.Subtask) error
	NextSubtaskOrder(ctx context.Context, h db.Handler, taskID string) (int64, error)
	GetSubtask(ctx context.Context, h db.Handler, taskID, id string) (models.Subtask, error)
	ListSubtasks(ctx context.Context, h db.Handler, taskID string) ([]models.Subtask, error)
	UpdateSubtask(ctx context.Context, h db.Handler, subtask models.Subtask) error
	DeleteSubtask(ctx context.Context, h db.Handler, taskID, id string) error
}

// CommentStore is a store for task comments.
type CommentStore interface {
	CreateComment(ctx context.Context, h db.Handler, comment models.Comment) error
	ListComments(ctx context.Context, h db.Handler, taskID string) ([]models.CommentWithAuthor, error)
}

// AttachmentStore is a store for task attachments.
type AttachmentStore interface {
	CreateAttachment(ctx context.Context, h db.Handler, attachment models.Attachment) error
	ListAttachments(ctx context.Context, h db.Handler, taskID string) ([]models.Attachment, error)
	ListAttachmentURLs(ctx context.Context, h db.Handler, taskID string) ([]string, error)
	ListAllAttachmentURLs(ctx context.Context, h db.Handler) ([]string, error)
}

// VersionStore is the append-only task ledger.
type VersionStore interface {
	CreateTaskVersion(ctx context.Context, h db.Handler, version models.TaskVersion) error
	ListTaskVersions(ctx context.Context, h db.Handler, taskID string) ([]models.TaskVersionWithAuthor, error)
}
