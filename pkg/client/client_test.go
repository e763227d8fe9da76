package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matryer/is"
	"github.com/taskflow-dev/taskflow/pkg/proto"
)

func TestUpdateTaskSendsOnlySetFields(t *testing.T) {
	is := is.New(t)
	var (
		method, path, auth string
		raw                []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path, auth = r.Method, r.URL.Path, r.Header.Get("Authorization")
		raw, _ = io.ReadAll(r.Body)
		json.NewEncoder(w).Encode(proto.Task{ID: "t1", Status: proto.StatusCompleted}) // nolint: errcheck
	}))
	defer srv.Close()

	c := New(srv.URL+"/", "tok")
	task, err := c.UpdateTask(context.Background(), "t1", proto.TaskPatch{
		Status:     proto.Some(proto.StatusCompleted),
		AssigneeID: proto.Null[string](),
	})
	is.NoErr(err)
	is.Equal(task.Status, proto.StatusCompleted)
	is.Equal(method, http.MethodPatch)
	is.Equal(path, "/api/tasks/t1")
	is.Equal(auth, "Bearer tok")

	var body map[string]any
	is.NoErr(json.Unmarshal(raw, &body))
	is.Equal(len(body), 2)
	is.Equal(body["status"], "completed")
	_, ok := body["assigneeId"]
	is.True(ok)
	is.Equal(body["assigneeId"], nil)
}

func TestListTasksQuery(t *testing.T) {
	is := is.New(t)
	var teamID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		teamID = r.URL.Query().Get("teamId")
		w.Write([]byte(`[{"id":"a"},{"id":"b"}]`)) // nolint: errcheck
	}))
	defer srv.Close()

	tasks, err := New(srv.URL, "").ListTasks(context.Background(), "team 1")
	is.NoErr(err)
	is.Equal(len(tasks), 2)
	is.Equal(teamID, "team 1")
}

func TestErrorResponse(t *testing.T) {
	is := is.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":"Not a team member"}`)) // nolint: errcheck
	}))
	defer srv.Close()

	_, err := New(srv.URL, "").GetTask(context.Background(), "t1")
	var apiErr *Error
	is.True(errors.As(err, &apiErr))
	is.Equal(apiErr.StatusCode, http.StatusForbidden)
	is.Equal(apiErr.Message, "Not a team member")
}

func TestErrorResponseWithoutBody(t *testing.T) {
	is := is.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL, "").Me(context.Background())
	var apiErr *Error
	is.True(errors.As(err, &apiErr))
	is.Equal(apiErr.Message, "Bad Gateway")
}
