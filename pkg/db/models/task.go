package models

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx/types"
)

// Task represents a task row.
type Task struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Status      string         `db:"status"`
	Priority    sql.NullString `db:"priority"`
	UserID      string         `db:"user_id"`
	TeamID      sql.NullString `db:"team_id"`
	AssigneeID  sql.NullString `db:"assignee_id"`
	TimeLimit   sql.NullInt64  `db:"time_limit"`
	DueDate     sql.NullTime   `db:"due_date"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

// Subtask represents a checklist item of a task.
type Subtask struct {
	ID        string    `db:"id"`
	TaskID    string    `db:"task_id"`
	Title     string    `db:"title"`
	Completed bool      `db:"completed"`
	Order     int64     `db:"sort_order"`
	CreatedAt time.Time `db:"created_at"`
}

// Comment represents a comment on a task.
type Comment struct {
	ID        string    `db:"id"`
	TaskID    string    `db:"task_id"`
	UserID    string    `db:"user_id"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

// CommentWithAuthor is a comment joined with its author.
type CommentWithAuthor struct {
	Comment
	UserName  string         `db:"user_name"`
	UserImage sql.NullString `db:"user_image"`
}

// Attachment represents a file attached to a task.
type Attachment struct {
	ID        string        `db:"id"`
	TaskID    string        `db:"task_id"`
	UserID    string        `db:"user_id"`
	FileName  string        `db:"file_name"`
	FileURL   string        `db:"file_url"`
	FileType  string        `db:"file_type"`
	FileSize  sql.NullInt64 `db:"file_size"`
	CreatedAt time.Time     `db:"created_at"`
}

// TaskVersion is an append-only ledger entry.
type TaskVersion struct {
	Seq          int64              `db:"seq"`
	ID           string             `db:"id"`
	TaskID       string             `db:"task_id"`
	ChangedBy    string             `db:"changed_by"`
	ChangeType   string             `db:"change_type"`
	PreviousData types.NullJSONText `db:"previous_data"`
	NewData      types.JSONText     `db:"new_data"`
	CreatedAt    time.Time          `db:"created_at"`
}

// TaskVersionWithAuthor is a ledger entry joined with the user who made it.
type TaskVersionWithAuthor struct {
	TaskVersion
	UserName  string         `db:"user_name"`
	UserImage sql.NullString `db:"user_image"`
}
