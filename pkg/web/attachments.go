package web

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/taskflow-dev/taskflow/pkg/backend"
	"github.com/taskflow-dev/taskflow/pkg/config"
	"github.com/taskflow-dev/taskflow/pkg/proto"
)

const (
	// uploadField is the multipart form field holding the file.
	uploadField = "file"

	// defaultUploadName names files sent without a filename.
	defaultUploadName = "attachment"
)

func listAttachments(w http.ResponseWriter, r *http.Request, caller proto.User) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	attachments, err := be.ListAttachments(ctx, caller, mux.Vars(r)["id"])
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, attachments)
}

func registerAttachment(w http.ResponseWriter, r *http.Request, caller proto.User) {
	var req attachmentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	ctx := r.Context()
	be := backend.FromContext(ctx)
	attachment, err := be.RegisterAttachment(ctx, caller, mux.Vars(r)["id"], proto.AttachmentOptions{
		FileName: req.FileName,
		FileURL:  req.FileURL,
		FileType: req.FileType,
		FileSize: req.FileSize,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusCreated, attachment)
}

// uploadAttachment streams the "file" part of a multipart form into the
// backend. Malformed requests are rejected before anything is stored.
func uploadAttachment(w http.ResponseWriter, r *http.Request, caller proto.User) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "multipart/form-data" {
		renderError(w, r, proto.Invalid("Expected multipart/form-data"))
		return
	}

	if cfg := config.FromContext(ctx); cfg != nil && cfg.Attachments.MaxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, cfg.Attachments.MaxUploadSize)
	}

	mr, err := r.MultipartReader()
	if err != nil {
		renderError(w, r, proto.Invalid("Invalid multipart body"))
		return
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			renderError(w, r, proto.Invalid("No file provided"))
			return
		}
		if err != nil {
			renderError(w, r, uploadError(err, proto.Invalid("Invalid multipart body")))
			return
		}
		if part.FormName() != uploadField {
			part.Close() // nolint: errcheck
			continue
		}

		fileName := part.FileName()
		if fileName == "" {
			fileName = defaultUploadName
		}

		attachment, err := be.UploadAttachment(ctx, caller, mux.Vars(r)["id"], fileName, part.Header.Get("Content-Type"), part)
		part.Close() // nolint: errcheck
		if err != nil {
			renderError(w, r, uploadError(err, err))
			return
		}
		renderJSON(w, http.StatusCreated, attachment)
		return
	}
}

// uploadError reports oversized bodies as validation errors and returns
// fallback otherwise.
func uploadError(err, fallback error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return proto.Invalid("File too large")
	}
	return fallback
}
