package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/taskflow-dev/taskflow/pkg/access"
	"github.com/taskflow-dev/taskflow/pkg/proto"
)

// maxJSONBody bounds JSON request bodies.
const maxJSONBody = 1 << 20

// validator is a decoded request body that checks itself.
type validator interface {
	Validate() error
}

// decodeJSON decodes the request body into v and validates it. Every failure
// is a validation error so handlers can reject before touching the store.
func decodeJSON(w http.ResponseWriter, r *http.Request, v validator) error {
	body := http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return proto.Invalid("Request body too large")
		case errors.Is(err, io.EOF):
			return proto.Invalid("Request body is required")
		default:
			return proto.Invalid("Invalid request body")
		}
	}
	return v.Validate()
}

type createTeamRequest struct {
	Name string `json:"name"`
}

func (req *createTeamRequest) Validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return proto.Invalid("Team name is required")
	}
	return nil
}

type inviteRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`

	role access.Role
}

func (req *inviteRequest) Validate() error {
	if strings.TrimSpace(req.Email) == "" || !strings.Contains(req.Email, "@") {
		return proto.Invalid("Invalid email")
	}
	req.role = access.MemberRole
	if req.Role != "" {
		req.role = access.ParseRole(req.Role)
		if !req.role.Invitable() {
			return proto.Invalid("Role must be admin or member")
		}
	}
	return nil
}

type createTaskRequest struct {
	Title       string         `json:"title"`
	Description *string        `json:"description"`
	Status      proto.Status   `json:"status"`
	Priority    proto.Priority `json:"priority"`
	TeamID      *string        `json:"teamId"`
	AssigneeID  *string        `json:"assigneeId"`
	TimeLimit   *int64         `json:"timeLimit"`
	DueDate     *time.Time     `json:"dueDate"`
}

func (req *createTaskRequest) Validate() error {
	if strings.TrimSpace(req.Title) == "" {
		return proto.Invalid("Title is required")
	}
	if req.Status != "" && !req.Status.Valid() {
		return proto.Invalid("Invalid status")
	}
	if req.Priority != "" && !req.Priority.Valid() {
		return proto.Invalid("Invalid priority")
	}
	if req.TeamID != nil && *req.TeamID == "" {
		req.TeamID = nil
	}
	if req.AssigneeID != nil && *req.AssigneeID == "" {
		req.AssigneeID = nil
	}
	if req.TimeLimit != nil && *req.TimeLimit < 0 {
		return proto.Invalid("Time limit must not be negative")
	}
	return nil
}

func (req *createTaskRequest) options() proto.TaskOptions {
	return proto.TaskOptions{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		TeamID:      req.TeamID,
		AssigneeID:  req.AssigneeID,
		TimeLimit:   req.TimeLimit,
		DueDate:     req.DueDate,
	}
}

type updateTaskRequest struct {
	proto.TaskPatch
}

func (req *updateTaskRequest) Validate() error {
	if req.Empty() {
		return proto.Invalid("No fields to update")
	}
	return req.TaskPatch.Validate()
}

type commentRequest struct {
	Content string `json:"content"`
}

func (req *commentRequest) Validate() error {
	if strings.TrimSpace(req.Content) == "" {
		return proto.Invalid("Content is required")
	}
	return nil
}

type attachmentRequest struct {
	FileName string `json:"fileName"`
	FileURL  string `json:"fileUrl"`
	FileType string `json:"fileType"`
	FileSize *int64 `json:"fileSize"`
}

func (req *attachmentRequest) Validate() error {
	switch {
	case strings.TrimSpace(req.FileName) == "":
		return proto.Invalid("File name is required")
	case strings.TrimSpace(req.FileURL) == "":
		return proto.Invalid("File URL is required")
	case !proto.IsFileURL(req.FileURL):
		return proto.Invalid("File URL must be an http or https URL")
	case strings.TrimSpace(req.FileType) == "":
		return proto.Invalid("File type is required")
	case req.FileSize != nil && *req.FileSize < 0:
		return proto.Invalid("File size must not be negative")
	}
	return nil
}

type subtaskRequest struct {
	Title string `json:"title"`
}

func (req *subtaskRequest) Validate() error {
	if strings.TrimSpace(req.Title) == "" {
		return proto.Invalid("Title is required")
	}
	return nil
}

type updateSubtaskRequest struct {
	proto.SubtaskPatch
}

func (req *updateSubtaskRequest) Validate() error {
	if req.Empty() {
		return proto.Invalid("No fields to update")
	}
	return req.SubtaskPatch.Validate()
}
