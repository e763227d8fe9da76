package backend

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/taskflow-dev/taskflow/pkg/access"
	"github.com/taskflow-dev/taskflow/pkg/db/models"
	"github.com/taskflow-dev/taskflow/pkg/proto"
)

func strPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func nullStr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func intPtr(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	i := ni.Int64
	return &i
}

func nullInt(i *int64) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *i, Valid: true}
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func userFromModel(m models.User) proto.User {
	return proto.User{
		ID:    m.ID,
		Name:  m.Name,
		Email: m.Email,
		Image: strPtr(m.Image),
	}
}

func teamFromModel(m models.Team) proto.Team {
	return proto.Team{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

func membershipFromModel(m models.TeamMember) proto.Membership {
	return proto.Membership{
		ID:       m.ID,
		TeamID:   m.TeamID,
		UserID:   m.UserID,
		Role:     access.ParseRole(m.Role),
		JoinedAt: m.JoinedAt.UTC(),
	}
}

func invitationFromModel(m models.Invitation) proto.Invitation {
	return proto.Invitation{
		ID:        m.ID,
		TeamID:    m.TeamID,
		Email:     m.Email,
		Role:      access.ParseRole(m.Role),
		Status:    proto.InvitationStatus(m.Status),
		InvitedBy: m.InvitedBy,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

// taskFromModel converts a row, defaulting the priority of legacy rows.
func taskFromModel(m models.Task) proto.Task {
	priority := proto.PriorityMedium
	if m.Priority.Valid && m.Priority.String != "" {
		priority = proto.Priority(m.Priority.String)
	}
	return proto.Task{
		ID:          m.ID,
		Title:       m.Title,
		Description: strPtr(m.Description),
		Status:      proto.Status(m.Status),
		Priority:    priority,
		UserID:      m.UserID,
		TeamID:      strPtr(m.TeamID),
		AssigneeID:  strPtr(m.AssigneeID),
		TimeLimit:   intPtr(m.TimeLimit),
		DueDate:     timePtr(m.DueDate),
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

func taskToModel(t proto.Task) models.Task {
	return models.Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: nullStr(t.Description),
		Status:      string(t.Status),
		Priority:    sql.NullString{String: string(t.Priority), Valid: t.Priority != ""},
		UserID:      t.UserID,
		TeamID:      nullStr(t.TeamID),
		AssigneeID:  nullStr(t.AssigneeID),
		TimeLimit:   nullInt(t.TimeLimit),
		DueDate:     nullTime(t.DueDate),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func subtaskFromModel(m models.Subtask) proto.Subtask {
	return proto.Subtask{
		ID:        m.ID,
		TaskID:    m.TaskID,
		Title:     m.Title,
		Completed: m.Completed,
		Order:     m.Order,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func subtaskToModel(s proto.Subtask) models.Subtask {
	return models.Subtask{
		ID:        s.ID,
		TaskID:    s.TaskID,
		Title:     s.Title,
		Completed: s.Completed,
		Order:     s.Order,
		CreatedAt: s.CreatedAt,
	}
}

func commentFromModel(m models.Comment) proto.Comment {
	return proto.Comment{
		ID:        m.ID,
		TaskID:    m.TaskID,
		UserID:    m.UserID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func attachmentFromModel(m models.Attachment) proto.Attachment {
	return proto.Attachment{
		ID:        m.ID,
		TaskID:    m.TaskID,
		UserID:    m.UserID,
		FileName:  m.FileName,
		FileURL:   m.FileURL,
		FileType:  m.FileType,
		FileSize:  intPtr(m.FileSize),
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func encodeSnapshot(s proto.Snapshot) (types.JSONText, error) {
	if s == nil {
		s = proto.Snapshot{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return types.JSONText(b), nil
}

func decodeSnapshot(b []byte) proto.Snapshot {
	if len(b) == 0 {
		return nil
	}
	var s proto.Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return nil
	}
	return s
}

func versionFromModel(m models.TaskVersionWithAuthor) proto.Version {
	v := proto.Version{
		ID:          m.ID,
		TaskID:      m.TaskID,
		ChangedByID: m.ChangedBy,
		ChangeType:  proto.ChangeType(m.ChangeType),
		NewData:     decodeSnapshot(m.NewData),
		CreatedAt:   m.CreatedAt.UTC(),
		ChangedBy: &proto.Author{
			Name:  m.UserName,
			Image: strPtr(m.UserImage),
		},
	}
	if m.PreviousData.Valid {
		v.PreviousData = decodeSnapshot(m.PreviousData.JSONText)
	}
	return v
}
