package database

import (
	"context"

	"github.com/taskflow-dev/taskflow/pkg/db"
	"github.com/taskflow-dev/taskflow/pkg/db/models"
	"github.com/taskflow-dev/taskflow/pkg/store"
)

var _ store.AttachmentStore = (*attachmentStore)(nil)

type attachmentStore struct{}

// CreateAttachment implements store.AttachmentStore.
func (*attachmentStore) CreateAttachment(ctx context.Context, h db.Handler, a models.Attachment) error {
	query := h.Rebind(`
		INSERT INTO
		  attachments (id, task_id, user_id, file_name, file_url, file_type,
		    file_size, created_at)
		VALUES
		  (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := h.ExecContext(ctx, query, a.ID, a.TaskID, a.UserID, a.FileName,
		a.FileURL, a.FileType, a.FileSize, a.CreatedAt)
	return err
}

// ListAttachments implements store.AttachmentStore.
func (*attachmentStore) ListAttachments(ctx context.Context, h db.Handler, taskID string) ([]models.Attachment, error) {
	query := h.Rebind(`
		SELECT
		  *
		FROM
		  attachments
		WHERE
		  task_id = ?
		ORDER BY
		  created_at ASC
	`)
	var attachments []models.Attachment
	err := h.SelectContext(ctx, &attachments, query, taskID)
	return attachments, err
}

// ListAttachmentURLs implements store.AttachmentStore.
func (*attachmentStore) ListAttachmentURLs(ctx context.Context, h db.Handler, taskID string) ([]string, error) {
	query := h.Rebind(`SELECT file_url FROM attachments WHERE task_id = ?`)
	var urls []string
	err := h.SelectContext(ctx, &urls, query, taskID)
	return urls, err
}

// ListAllAttachmentURLs implements store.AttachmentStore.
func (*attachmentStore) ListAllAttachmentURLs(ctx context.Context, h db.Handler) ([]string, error) {
	query := h.Rebind(`SELECT file_url FROM attachments`)
	var urls []string
	err := h.SelectContext(ctx, &urls, query)
	return urls, err
}
