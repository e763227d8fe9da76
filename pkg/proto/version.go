package proto

import (
	"encoding/json"
	"time"
)

// ChangeType is the kind of a ledger entry.
type ChangeType string

const (
	ChangeUpdate     ChangeType = "update"
	ChangeComment    ChangeType = "comment"
	ChangeAttachment ChangeType = "attachment"
)

// Snapshot is an opaque key/value document stored in the ledger.
type Snapshot map[string]any

// SnapshotOf converts v to a Snapshot through its JSON form.
func SnapshotOf(v any) Snapshot {
	b, err := json.Marshal(v)
	if err != nil {
		return Snapshot{}
	}
	var s Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return Snapshot{}
	}
	return s
}

// Version is an append-only audit record of a task change.
type Version struct {
	ID           string     `json:"id"`
	TaskID       string     `json:"taskId"`
	ChangedByID  string     `json:"changedById"`
	ChangeType   ChangeType `json:"changeType"`
	PreviousData Snapshot   `json:"previousData"`
	NewData      Snapshot   `json:"newData"`
	CreatedAt    time.Time  `json:"createdAt"`
	ChangedBy    *Author    `json:"changedBy,omitempty"`
}
