package proto

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/matryer/is"
)

func TestTaskPatchTriState(t *testing.T) {
	is := is.New(t)
	var p TaskPatch
	is.NoErr(json.Unmarshal([]byte(`{"status":"in_progress","description":null}`), &p))
	is.True(p.Status.Set)
	is.Equal(p.Status.Value, StatusInProgress)
	is.True(p.Description.Set)
	is.True(p.Description.Null)
	is.True(!p.Title.Set)
	is.True(!p.AssigneeID.Set)
	is.True(!p.Empty())

	desc := "ship it"
	before := Task{ID: "t1", Title: "Ship v1", Description: &desc, Status: StatusTodo, Priority: PriorityMedium}
	after := p.Apply(before)
	is.Equal(after.Status, StatusInProgress)
	is.Equal(after.Description, nil)
	is.Equal(after.Title, "Ship v1")
	is.Equal(before.Status, StatusTodo) // original untouched
}

func TestTaskPatchMarshalOmitsUnset(t *testing.T) {
	is := is.New(t)
	p := TaskPatch{Status: Some(StatusCompleted), AssigneeID: Null[string]()}
	b, err := json.Marshal(p)
	is.NoErr(err)
	is.Equal(string(b), `{"assigneeId":null,"status":"completed"}`)

	var back TaskPatch
	is.NoErr(json.Unmarshal(b, &back))
	is.True(back.AssigneeID.Null)
	is.Equal(back.Status.Value, StatusCompleted)
	is.True(!back.Title.Set)
}

func TestTaskPatchEmpty(t *testing.T) {
	is := is.New(t)
	var p TaskPatch
	is.NoErr(json.Unmarshal([]byte(`{}`), &p))
	is.True(p.Empty())
}

func TestSnapshotOfTask(t *testing.T) {
	is := is.New(t)
	s := Task{ID: "t1", Title: "Ship v1", Status: StatusTodo, Priority: PriorityMedium}.Snapshot()
	is.Equal(s["status"], "todo")
	is.Equal(s["priority"], "medium")
	is.Equal(s["teamId"], nil)
}

func TestStatusValid(t *testing.T) {
	for _, s := range Statuses {
		if !s.Valid() {
			t.Errorf("%q.Valid() => false", s)
		}
	}
	if Status("done").Valid() {
		t.Error(`"done".Valid() => true`)
	}
	if Priority("urgent").Valid() {
		t.Error(`"urgent".Valid() => true`)
	}
}

func TestErrorCodes(t *testing.T) {
	cases := []struct {
		err    error
		code   Code
		status int
	}{
		{ErrUnauthenticated, CodeUnauthenticated, http.StatusUnauthorized},
		{ErrNotTeamMember, CodeForbidden, http.StatusForbidden},
		{ErrTaskNotFound, CodeNotFound, http.StatusNotFound},
		{Invalid("bad"), CodeValidationFailed, http.StatusBadRequest},
		{ErrAlreadyInTeam, CodeInvalidState, http.StatusBadRequest},
		{UploadFailed(errors.New("disk full")), CodeUploadFailed, http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", ErrForbidden), CodeForbidden, http.StatusForbidden},
		{errors.New("boom"), CodeInternal, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := CodeOf(c.err); got != c.code {
			t.Errorf("CodeOf(%v) => %q, want %q", c.err, got, c.code)
		}
		if got := CodeOf(c.err).HTTPStatus(); got != c.status {
			t.Errorf("HTTPStatus(%v) => %d, want %d", c.err, got, c.status)
		}
	}
}

func TestErrorIsByCode(t *testing.T) {
	is := is.New(t)
	is.True(errors.Is(ErrTaskNotFound, ErrNotFound))
	is.True(errors.Is(ErrInsufficientRole, ErrForbidden))
	is.True(!errors.Is(ErrTaskNotFound, ErrForbidden))
	up := UploadFailed(errors.New("disk full"))
	is.Equal(up.Details, "disk full")
	is.True(errors.Is(up, ErrUploadFailed))
}
