package backend

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"io/fs"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/taskflow-dev/taskflow/pkg/db"
	"github.com/taskflow-dev/taskflow/pkg/db/models"
	"github.com/taskflow-dev/taskflow/pkg/proto"
	"github.com/taskflow-dev/taskflow/pkg/storage"
)

// BlobPrefix is the path under which stored attachment bytes are served.
const BlobPrefix = "/r2/"

const defaultContentType = "application/octet-stream"

// ErrBlobStorageDisabled is returned when reading blobs without a blob store.
var ErrBlobStorageDisabled = proto.NewError(proto.CodeInternal, "Blob storage not configured")

// BlobKey returns the storage key of an uploaded file.
func BlobKey(taskID, fileName string) string {
	return taskID + "/" + uuid.NewString() + "_" + url.PathEscape(fileName)
}

// BlobURL returns the retrieval path of a stored key.
func BlobURL(key string) string {
	return BlobPrefix + url.PathEscape(key)
}

// blobKeyFromURL returns the key a file URL points at, if it points at the
// blob store.
func blobKeyFromURL(u string) (string, bool) {
	if !strings.HasPrefix(u, BlobPrefix) {
		return "", false
	}
	key, err := url.PathUnescape(strings.TrimPrefix(u, BlobPrefix))
	if err != nil || key == "" {
		return "", false
	}
	return key, true
}

// RegisterAttachment records a file hosted elsewhere.
func (d *Backend) RegisterAttachment(ctx context.Context, caller proto.User, taskID string, opts proto.AttachmentOptions) (proto.Attachment, error) {
	if strings.TrimSpace(opts.FileName) == "" {
		return proto.Attachment{}, proto.Invalid("File name is required")
	}
	if strings.TrimSpace(opts.FileURL) == "" {
		return proto.Attachment{}, proto.Invalid("File URL is required")
	}
	if !proto.IsFileURL(opts.FileURL) {
		return proto.Attachment{}, proto.Invalid("File URL must be an http or https URL")
	}
	if strings.TrimSpace(opts.FileType) == "" {
		return proto.Attachment{}, proto.Invalid("File type is required")
	}
	if opts.FileSize != nil && *opts.FileSize < 0 {
		return proto.Attachment{}, proto.Invalid("File size must not be negative")
	}
	if _, err := d.taskForCaller(ctx, caller, taskID); err != nil {
		return proto.Attachment{}, err
	}

	m, err := d.createAttachment(ctx, caller, taskID, opts)
	if err != nil {
		return proto.Attachment{}, db.WrapError(err)
	}
	if err := d.recordAttachment(ctx, caller, m); err != nil {
		return proto.Attachment{}, err
	}
	return attachmentFromModel(m), nil
}

// UploadAttachment stores the bytes of r and attaches them to a task. The
// bytes go to the blob store when one is configured and into a data URL
// otherwise.
func (d *Backend) UploadAttachment(ctx context.Context, caller proto.User, taskID, fileName, contentType string, r io.Reader) (proto.Attachment, error) {
	if strings.TrimSpace(fileName) == "" {
		return proto.Attachment{}, proto.Invalid("File name is required")
	}
	if contentType == "" {
		contentType = defaultContentType
	}
	if _, err := d.taskForCaller(ctx, caller, taskID); err != nil {
		return proto.Attachment{}, err
	}

	opts := proto.AttachmentOptions{
		FileName: fileName,
		FileType: contentType,
	}

	var key string
	if d.Inline() {
		var buf bytes.Buffer
		n, err := io.Copy(&buf, r)
		if err != nil {
			return proto.Attachment{}, proto.UploadFailed(err)
		}
		opts.FileURL = "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
		opts.FileSize = &n
	} else {
		key = BlobKey(taskID, fileName)
		n, err := d.blobs.Put(key, r, contentType)
		if err != nil {
			d.logger.Error("error storing blob", "key", key, "err", err)
			d.removeBlob(key)
			return proto.Attachment{}, proto.UploadFailed(err)
		}
		opts.FileURL = BlobURL(key)
		opts.FileSize = &n
	}

	m, err := d.createAttachment(ctx, caller, taskID, opts)
	if err != nil {
		if key != "" {
			d.removeBlob(key)
		}
		return proto.Attachment{}, proto.UploadFailed(db.WrapError(err))
	}
	if err := d.recordAttachment(ctx, caller, m); err != nil {
		return proto.Attachment{}, err
	}

	backend := "blob"
	if key == "" {
		backend = "inline"
	}
	uploadedBytes.WithLabelValues(backend).Add(float64(*opts.FileSize))
	return attachmentFromModel(m), nil
}

// createAttachment inserts an attachment row.
func (d *Backend) createAttachment(ctx context.Context, caller proto.User, taskID string, opts proto.AttachmentOptions) (models.Attachment, error) {
	m := models.Attachment{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		UserID:    caller.ID,
		FileName:  opts.FileName,
		FileURL:   opts.FileURL,
		FileType:  opts.FileType,
		FileSize:  nullInt(opts.FileSize),
		CreatedAt: now(),
	}
	if err := d.store.CreateAttachment(ctx, d.db, m); err != nil {
		d.logger.Error("error creating attachment", "task", taskID, "err", err)
		return models.Attachment{}, err
	}
	attachmentsCreated.Inc()
	return m, nil
}

func (d *Backend) recordAttachment(ctx context.Context, caller proto.User, m models.Attachment) error {
	next := proto.Snapshot{
		"attachmentId": m.ID,
		"fileName":     m.FileName,
		"fileType":     m.FileType,
		"fileSize":     nil,
	}
	if m.FileSize.Valid {
		next["fileSize"] = m.FileSize.Int64
	}
	return d.Record(ctx, m.TaskID, caller.ID, proto.ChangeAttachment, nil, next)
}

// ListAttachments lists a task's attachments, oldest first.
func (d *Backend) ListAttachments(ctx context.Context, caller proto.User, taskID string) ([]proto.Attachment, error) {
	if _, err := d.taskForCaller(ctx, caller, taskID); err != nil {
		return nil, err
	}

	ms, err := d.store.ListAttachments(ctx, d.db, taskID)
	if err != nil {
		return nil, db.WrapError(err)
	}
	attachments := make([]proto.Attachment, 0, len(ms))
	for _, m := range ms {
		attachments = append(attachments, attachmentFromModel(m))
	}
	return attachments, nil
}

// Blob opens a stored object. The caller must close it.
func (d *Backend) Blob(_ context.Context, key string) (*storage.Blob, error) {
	if d.blobs == nil {
		return nil, ErrBlobStorageDisabled
	}
	b, err := d.blobs.Get(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, proto.ErrBlobNotFound
		}
		d.logger.Error("error reading blob", "key", key, "err", err)
		return nil, err
	}
	return b, nil
}

// removeBlobs deletes the stored objects of taskID behind urls. Keys outside
// the task's prefix are left alone. Failures are logged.
func (d *Backend) removeBlobs(taskID string, urls []string) {
	if d.blobs == nil {
		return
	}
	prefix := taskID + "/"
	for _, u := range urls {
		key, ok := blobKeyFromURL(u)
		if !ok {
			continue
		}
		if !strings.HasPrefix(key, prefix) {
			d.logger.Warn("skipping blob of another task", "task", taskID, "key", key)
			continue
		}
		d.removeBlob(key)
	}
}

func (d *Backend) removeBlob(key string) {
	if err := d.blobs.Delete(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		d.logger.Warn("error removing blob", "key", key, "err", err)
	}
}
