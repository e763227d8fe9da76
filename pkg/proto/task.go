package proto

import (
	"encoding/json"
	"net/url"
	"strings"
	"time"
)

// Status is the lifecycle state of a task.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Statuses lists every status in board column order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusCompleted}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Priority is the urgency of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a unit of work, personal when TeamID is nil.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	UserID      string     `json:"userId"`
	TeamID      *string    `json:"teamId"`
	AssigneeID  *string    `json:"assigneeId"`
	TimeLimit   *int64     `json:"timeLimit"`
	DueDate     *time.Time `json:"dueDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// IsPersonal reports whether the task belongs to no team.
func (t Task) IsPersonal() bool {
	return t.TeamID == nil
}

// Snapshot returns the task as a ledger document.
func (t Task) Snapshot() Snapshot {
	return SnapshotOf(t)
}

// TaskOptions are the fields accepted when creating a task.
type TaskOptions struct {
	Title       string
	Description *string
	Status      Status
	Priority    Priority
	TeamID      *string
	AssigneeID  *string
	TimeLimit   *int64
	DueDate     *time.Time
}

// TaskPatch is a partial task update. Unset fields are left untouched and
// null clears nullable fields.
type TaskPatch struct {
	Title       Optional[string]    `json:"title"`
	Description Optional[string]    `json:"description"`
	Status      Optional[Status]    `json:"status"`
	Priority    Optional[Priority]  `json:"priority"`
	AssigneeID  Optional[string]    `json:"assigneeId"`
	TimeLimit   Optional[int64]     `json:"timeLimit"`
	DueDate     Optional[time.Time] `json:"dueDate"`
}

// Empty reports whether the patch sets no field.
func (p TaskPatch) Empty() bool {
	return !p.Title.Set && !p.Description.Set && !p.Status.Set &&
		!p.Priority.Set && !p.AssigneeID.Set && !p.TimeLimit.Set && !p.DueDate.Set
}

// Validate rejects values no task can hold.
func (p TaskPatch) Validate() error {
	if p.Title.Set && (p.Title.Null || strings.TrimSpace(p.Title.Value) == "") {
		return Invalid("Title is required")
	}
	if p.Status.Set && (p.Status.Null || !p.Status.Value.Valid()) {
		return Invalid("Invalid status")
	}
	if p.Priority.Set && (p.Priority.Null || !p.Priority.Value.Valid()) {
		return Invalid("Invalid priority")
	}
	if p.TimeLimit.Set && !p.TimeLimit.Null && p.TimeLimit.Value < 0 {
		return Invalid("Time limit must not be negative")
	}
	return nil
}

// MarshalJSON encodes only the fields that are set.
func (p TaskPatch) MarshalJSON() ([]byte, error) {
	m := map[string]any{}
	if p.Title.Set {
		m["title"] = p.Title
	}
	if p.Description.Set {
		m["description"] = p.Description
	}
	if p.Status.Set {
		m["status"] = p.Status
	}
	if p.Priority.Set {
		m["priority"] = p.Priority
	}
	if p.AssigneeID.Set {
		m["assigneeId"] = p.AssigneeID
	}
	if p.TimeLimit.Set {
		m["timeLimit"] = p.TimeLimit
	}
	if p.DueDate.Set {
		m["dueDate"] = p.DueDate
	}
	return json.Marshal(m)
}

// Apply returns a copy of t with the patch applied. UpdatedAt is left as is.
func (p TaskPatch) Apply(t Task) Task {
	if p.Title.Set {
		t.Title = p.Title.Value
	}
	if p.Description.Set {
		t.Description = p.Description.Ptr()
	}
	if p.Status.Set {
		t.Status = p.Status.Value
	}
	if p.Priority.Set {
		t.Priority = p.Priority.Value
	}
	if p.AssigneeID.Set {
		t.AssigneeID = p.AssigneeID.Ptr()
	}
	if p.TimeLimit.Set {
		t.TimeLimit = p.TimeLimit.Ptr()
	}
	if p.DueDate.Set {
		t.DueDate = p.DueDate.Ptr()
	}
	return t
}

// Subtask is an ordered checklist item of a task.
type Subtask struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	Order     int64     `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
}

// SubtaskPatch is a partial subtask update.
type SubtaskPatch struct {
	Title     Optional[string] `json:"title"`
	Completed Optional[bool]   `json:"completed"`
	Order     Optional[int64]  `json:"order"`
}

// Empty reports whether the patch sets no field.
func (p SubtaskPatch) Empty() bool {
	return !p.Title.Set && !p.Completed.Set && !p.Order.Set
}

// Validate rejects values no subtask can hold.
func (p SubtaskPatch) Validate() error {
	if p.Title.Set && (p.Title.Null || strings.TrimSpace(p.Title.Value) == "") {
		return Invalid("Title is required")
	}
	if (p.Completed.Set && p.Completed.Null) || (p.Order.Set && p.Order.Null) {
		return Invalid("Field cannot be null")
	}
	return nil
}

// Apply returns a copy of s with the patch applied.
func (p SubtaskPatch) Apply(s Subtask) Subtask {
	if p.Title.Set {
		s.Title = p.Title.Value
	}
	if p.Completed.Set {
		s.Completed = p.Completed.Value
	}
	if p.Order.Set {
		s.Order = p.Order.Value
	}
	return s
}

// Author is the public part of a user embedded in listings.
type Author struct {
	ID    string  `json:"id,omitempty"`
	Name  string  `json:"name"`
	Image *string `json:"image"`
}

// Comment is an immutable note on a task.
type Comment struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	User      *Author   `json:"user,omitempty"`
}

// Attachment is an immutable file reference on a task.
type Attachment struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	UserID    string    `json:"userId"`
	FileName  string    `json:"fileName"`
	FileURL   string    `json:"fileUrl"`
	FileType  string    `json:"fileType"`
	FileSize  *int64    `json:"fileSize"`
	CreatedAt time.Time `json:"createdAt"`
}

// AttachmentOptions are the fields of a registered or uploaded attachment.
type AttachmentOptions struct {
	FileName string
	FileURL  string
	FileType string
	FileSize *int64
}

// IsFileURL reports whether s is an absolute http or https URL, the only
// form a registered attachment may point at.
func IsFileURL(s string) bool {
	u, err := url.ParseRequestURI(s)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// ActivityDay is the number of tasks created on a UTC calendar day.
type ActivityDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}
