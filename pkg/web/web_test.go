package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/matryer/is"
	"github.com/taskflow-dev/taskflow/pkg/backend"
	"github.com/taskflow-dev/taskflow/pkg/config"
	"github.com/taskflow-dev/taskflow/pkg/db"
	"github.com/taskflow-dev/taskflow/pkg/proto"
	"github.com/taskflow-dev/taskflow/pkg/session"
	"github.com/taskflow-dev/taskflow/pkg/storage"
	"github.com/taskflow-dev/taskflow/pkg/store/database"
	"github.com/taskflow-dev/taskflow/pkg/test"
)

type testServer struct {
	t       *testing.T
	handler http.Handler
	be      *backend.Backend
	jwt     *session.JWTProvider
	cfg     *config.Config
}

func newTestServer(t *testing.T, blobs storage.Storage, opts ...func(*config.Config)) *testServer {
	t.Helper()
	ctx := context.Background()
	cfg := config.DefaultConfig()
	cfg.Auth.JWTSecret = "test-secret"
	for _, o := range opts {
		o(cfg)
	}

	dbx := test.OpenDB(ctx, t)
	be := backend.New(ctx, cfg, dbx, database.New(ctx, dbx), blobs)
	provider, err := session.NewJWTProvider(cfg.Auth)
	if err != nil {
		t.Fatal(err)
	}

	ctx = config.WithContext(ctx, cfg)
	ctx = backend.WithContext(ctx, be)
	ctx = db.WithContext(ctx, dbx)
	ctx = log.WithContext(ctx, log.New(io.Discard))

	return &testServer{
		t:       t,
		handler: NewRouter(ctx, provider),
		be:      be,
		jwt:     provider,
		cfg:     cfg,
	}
}

func (s *testServer) user(name string) (proto.User, string) {
	s.t.Helper()
	u, err := s.be.CreateUser(context.Background(), name, strings.ToLower(name)+"@example.com", nil)
	if err != nil {
		s.t.Fatal(err)
	}
	token, err := s.jwt.Issue(u.ID, time.Hour)
	if err != nil {
		s.t.Fatal(err)
	}
	return u, token
}

func (s *testServer) do(method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	s.t.Helper()
	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) json(method, path, token, body string) *httptest.ResponseRecorder {
	s.t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	return s.do(method, path, token, r, "application/json")
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func multipartBody(t *testing.T, field, fileName, contentType, content string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+fileName+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(part, content); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func TestHealth(t *testing.T) {
	is := is.New(t)
	s := newTestServer(t, nil)

	is.Equal(s.do(http.MethodGet, "/livez", "", nil, "").Code, http.StatusOK)

	rec := s.do(http.MethodGet, "/readyz", "", nil, "")
	is.Equal(rec.Code, http.StatusOK)
	var ready readiness
	is.NoErr(json.NewDecoder(rec.Body).Decode(&ready))
	is.Equal(ready.Status, "ok")
	is.Equal(ready.Checks["database"], "ok")
	is.Equal(ready.Checks["attachments"], "inline")
}

func TestRequestID(t *testing.T) {
	is := is.New(t)
	s := newTestServer(t, nil)

	rec := s.do(http.MethodGet, "/livez", "", nil, "")
	_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	is.NoErr(err)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/livez", nil)
	req.Header.Set(RequestIDHeader, id)
	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	is.Equal(rec.Header().Get(RequestIDHeader), id)

	req = httptest.NewRequest(http.MethodGet, "/livez", nil)
	req.Header.Set(RequestIDHeader, "not-an-id")
	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	is.True(rec.Header().Get(RequestIDHeader) != "not-an-id")
}

func TestRouteTemplate(t *testing.T) {
	is := is.New(t)
	router := mux.NewRouter()
	router.HandleFunc("/api/tasks/{id}", func(http.ResponseWriter, *http.Request) {}).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks/"+uuid.NewString(), nil)
	is.Equal(routeTemplate(router, req), "/api/tasks/{id}")
	req = httptest.NewRequest(http.MethodGet, "/elsewhere", nil)
	is.Equal(routeTemplate(router, req), unmatchedRoute)
}

func TestNotFoundRoute(t *testing.T) {
	is := is.New(t)
	s := newTestServer(t, nil)

	rec := s.do(http.MethodGet, "/nope", "", nil, "")
	is.Equal(rec.Code, http.StatusNotFound)
	is.Equal(decode[errorResponse](t, rec).Error, "Not found")
}

func TestUnauthenticated(t *testing.T) {
	is := is.New(t)
	s := newTestServer(t, nil)

	rec := s.json(http.MethodGet, "/api/tasks", "", "")
	is.Equal(rec.Code, http.StatusUnauthorized)
	is.Equal(decode[errorResponse](t, rec).Error, "Unauthorized")

	rec = s.json(http.MethodGet, "/api/me", "not-a-token", "")
	is.Equal(rec.Code, http.StatusUnauthorized)

	other, err := session.NewJWTProvider(config.AuthConfig{JWTSecret: "other", Issuer: s.cfg.Auth.Issuer})
	is.NoErr(err)
	token, err := other.Issue("someone", time.Hour)
	is.NoErr(err)
	rec = s.json(http.MethodGet, "/api/me", token, "")
	is.Equal(rec.Code, http.StatusUnauthorized)
}

func TestMe(t *testing.T) {
	is := is.New(t)
	s := newTestServer(t, nil)
	alice, token := s.user("Alice")
	s.user("Bob")

	rec := s.json(http.MethodGet, "/api/me", token, "")
	is.Equal(rec.Code, http.StatusOK)
	is.Equal(decode[proto.User](t, rec).ID, alice.ID)

	rec = s.json(http.MethodGet, "/api/users", token, "")
	is.Equal(rec.Code, http.StatusOK)
	users := decode[[]proto.User](t, rec)
	is.Equal(len(users), 1)
	is.Equal(users[0].Name, "Bob")
}

func TestAcmeFlow(t *testing.T) {
	is := is.New(t)
	s := newTestServer(t, nil)
	_, token := s.user("Alice")

	rec := s.json(http.MethodPost, "/api/teams", token, `{"name":"Acme"}`)
	is.Equal(rec.Code, http.StatusCreated)
	team := decode[map[string]any](t, rec)
	is.Equal(team["role"], "owner")
	teamID := team["id"].(string)

	rec = s.json(http.MethodPost, "/api/tasks", token, `{"title":"Ship v1","teamId":"`+teamID+`"}`)
	is.Equal(rec.Code, http.StatusCreated)
	task := decode[proto.Task](t, rec)
	is.Equal(task.Status, proto.StatusTodo)
	is.Equal(task.Priority, proto.PriorityMedium)

	rec = s.json(http.MethodPatch, "/api/tasks/"+task.ID, token, `{"status":"in_progress"}`)
	is.Equal(rec.Code, http.StatusOK)
	is.Equal(decode[proto.Task](t, rec).Status, proto.StatusInProgress)

	rec = s.json(http.MethodGet, "/api/tasks/"+task.ID+"/history", token, "")
	is.Equal(rec.Code, http.StatusOK)
	history := decode[[]proto.Version](t, rec)
	is.Equal(len(history), 1)
	is.Equal(history[0].ChangeType, proto.ChangeUpdate)
	is.Equal(history[0].PreviousData["status"], "todo")
	is.Equal(history[0].NewData["status"], "in_progress")
	is.Equal(history[0].ChangedBy.Name, "Alice")

	rec = s.json(http.MethodGet, "/api/tasks?teamId="+teamID, token, "")
	is.Equal(rec.Code, http.StatusOK)
	is.Equal(len(decode[[]proto.Task](t, rec)), 1)

	rec = s.json(http.MethodDelete, "/api/tasks/"+task.ID, token, "")
	is.Equal(rec.Code, http.StatusNoContent)
	rec = s.json(http.MethodGet, "/api/tasks/"+task.ID, token, "")
	is.Equal(rec.Code, http.StatusNotFound)
}

func TestTeamRoutesRequireMembership(t *testing.T) {
	is := is.New(t)
	s := newTestServer(t, nil)
	_, alice := s.user("Alice")
	_, eve := s.user("Eve")

	rec := s.json(http.MethodPost, "/api/teams", alice, `{"name":"Acme"}`)
	teamID := decode[map[string]any](t, rec)["id"].(string)
	rec = s.json(http.MethodPost, "/api/tasks", alice, `{"title":"Secret","teamId":"`+teamID+`"}`)
	taskID := decode[proto.Task](t, rec).ID

	for _, tc := range []struct {
		method, path, body string
	}{
		{http.MethodGet, "/api/tasks?teamId=" + teamID, ""},
		{http.MethodGet, "/api/teams/" + teamID + "/members", ""},
		{http.MethodPost, "/api/teams/" + teamID + "/invite", `{"email":"x@example.com"}`},
		{http.MethodGet, "/api/tasks/" + taskID, ""},
		{http.MethodPatch, "/api/tasks/" + taskID, `{"title":"mine"}`},
		{http.MethodDelete, "/api/tasks/" + taskID, ""},
		{http.MethodGet, "/api/tasks/" + taskID + "/history", ""},
		{http.MethodPost, "/api/tasks/" + taskID + "/comments", `{"content":"hi"}`},
		{http.MethodPost, "/api/tasks/" + taskID + "/subtasks", `{"title":"x"}`},
	} {
		rec := s.json(tc.method, tc.path, eve, tc.body)
		is.Equal(rec.Code, http.StatusForbidden) // non-member
	}

	rec = s.json(http.MethodGet, "/api/tasks/"+taskID+"/history", alice, "")
	is.Equal(len(decode[[]proto.Version](t, rec)), 0)
}

func TestInviteRoutes(t *testing.T) {
	is := is.New(t)
	s := newTestServer(t, nil)
	_, alice := s.user("Alice")
	_, bob := s.user("Bob")

	rec := s.json(http.MethodPost, "/api/teams", alice, `{"name":"Acme"}`)
	teamID := decode[map[string]any](t, rec)["id"].(string)

	rec = s.json(http.MethodPost, "/api/teams/"+teamID+"/invite", alice, `{"email":"bob@example.com"}`)
	is.Equal(rec.Code, http.StatusCreated)
	res := decode[map[string]any](t, rec)
	is.Equal(res["added"], true)

	rec = s.json(http.MethodPost, "/api/teams/"+teamID+"/invite", alice, `{"email":"bob@example.com"}`)
	is.Equal(rec.Code, http.StatusBadRequest)
	is.Equal(decode[errorResponse](t, rec).Error, "User is already in the team")

	rec = s.json(http.MethodPost, "/api/teams/"+teamID+"/invite", bob, `{"email":"carol@example.com"}`)
	is.Equal(rec.Code, http.StatusForbidden)

	rec = s.json(http.MethodPost, "/api/teams/"+teamID+"/invite", alice, `{"email":"carol@example.com","role":"owner"}`)
	is.Equal(rec.Code, http.StatusBadRequest)

	rec = s.json(http.MethodGet, "/api/teams/"+teamID+"/members", bob, "")
	is.Equal(rec.Code, http.StatusOK)
	is.Equal(len(decode[[]proto.Member](t, rec)), 2)

	rec = s.json(http.MethodGet, "/api/teams/"+teamID+"/invitations", alice, "")
	is.Equal(rec.Code, http.StatusOK)
	is.Equal(len(decode[[]proto.Invitation](t, rec)), 1)
}

func TestValidation(t *testing.T) {
	is := is.New(t)
	s := newTestServer(t, nil)
	_, token := s.user("Alice")

	rec := s.json(http.MethodPost, "/api/tasks", token, `{}`)
	is.Equal(rec.Code, http.StatusBadRequest)
	is.Equal(decode[errorResponse](t, rec).Error, "Title is required")

	rec = s.json(http.MethodPost, "/api/tasks", token, `{"title":`)
	is.Equal(rec.Code, http.StatusBadRequest)

	rec = s.json(http.MethodPost, "/api/tasks", token, `{"title":"x","priority":"urgent"}`)
	is.Equal(rec.Code, http.StatusBadRequest)

	rec = s.json(http.MethodPost, "/api/tasks", token, `{"title":"x"}`)
	task := decode[proto.Task](t, rec)

	rec = s.json(http.MethodPatch, "/api/tasks/"+task.ID, token, `{}`)
	is.Equal(rec.Code, http.StatusBadRequest)
	rec = s.json(http.MethodPatch, "/api/tasks/"+task.ID, token, `{"status":"done"}`)
	is.Equal(rec.Code, http.StatusBadRequest)
	rec = s.json(http.MethodPatch, "/api/tasks/"+task.ID, token, `{"title":null}`)
	is.Equal(rec.Code, http.StatusBadRequest)

	rec = s.json(http.MethodGet, "/api/tasks/"+task.ID+"/history", token, "")
	is.Equal(len(decode[[]proto.Version](t, rec)), 0)
}

func TestPatchClearsNullableFields(t *testing.T) {
	is := is.New(t)
	s := newTestServer(t, nil)
	_, token := s.user("Alice")

	rec := s.json(http.MethodPost, "/api/tasks", token, `{"title":"x","description":"d","timeLimit":30}`)
	task := decode[proto.Task](t, rec)
	is.Equal(*task.TimeLimit, int64(30))

	rec = s.json(http.MethodPatch, "/api/tasks/"+task.ID, token, `{"description":null}`)
	is.Equal(rec.Code, http.StatusOK)
	task = decode[proto.Task](t, rec)
	is.Equal(task.Description, nil)
	is.Equal(*task.TimeLimit, int64(30))
	is.Equal(task.Title, "x")
}

func TestSubtaskRoutes(t *testing.T) {
	is := is.New(t)
	s := newTestServer(t, nil)
	_, token := s.user("Alice")

	rec := s.json(http.MethodPost, "/api/tasks", token, `{"title":"Release"}`)
	taskID := decode[proto.Task](t, rec).ID
	rec = s.json(http.MethodPost, "/api/tasks", token, `{"title":"Other"}`)
	otherID := decode[proto.Task](t, rec).ID

	rec = s.json(http.MethodPost, "/api/tasks/"+taskID+"/subtasks", token, `{"title":"Write docs"}`)
	is.Equal(rec.Code, http.StatusCreated)
	docs := decode[proto.Subtask](t, rec)
	is.Equal(docs.Order, int64(0))

	rec = s.json(http.MethodPost, "/api/tasks/"+taskID+"/subtasks", token, `{"title":"Review"}`)
	is.Equal(decode[proto.Subtask](t, rec).Order, int64(1))

	rec = s.json(http.MethodPatch, "/api/tasks/"+otherID+"/subtasks/"+docs.ID, token, `{"completed":true}`)
	is.Equal(rec.Code, http.StatusNotFound)

	rec = s.json(http.MethodPatch, "/api/tasks/"+taskID+"/subtasks/"+docs.ID, token, `{"completed":true}`)
	is.Equal(rec.Code, http.StatusOK)
	is.Equal(decode[proto.Subtask](t, rec).Completed, true)

	rec = s.json(http.MethodDelete, "/api/tasks/"+taskID+"/subtasks/"+docs.ID, token, "")
	is.Equal(rec.Code, http.StatusNoContent)

	rec = s.json(http.MethodGet, "/api/tasks/"+taskID+"/subtasks", token, "")
	subtasks := decode[[]proto.Subtask](t, rec)
	is.Equal(len(subtasks), 1)
	is.Equal(subtasks[0].Title, "Review")
	is.Equal(subtasks[0].Order, int64(1))
}

func TestComments(t *testing.T) {
	is := is.New(t)
	s := newTestServer(t, nil)
	alice, token := s.user("Alice")

	rec := s.json(http.MethodPost, "/api/tasks", token, `{"title":"Discuss"}`)
	taskID := decode[proto.Task](t, rec).ID

	rec = s.json(http.MethodPost, "/api/tasks/"+taskID+"/comments", token, `{"content":"ship it"}`)
	is.Equal(rec.Code, http.StatusCreated)

	rec = s.json(http.MethodGet, "/api/tasks/"+taskID+"/comments", token, "")
	comments := decode[[]proto.Comment](t, rec)
	is.Equal(len(comments), 1)
	is.Equal(comments[0].User.ID, alice.ID)

	rec = s.json(http.MethodGet, "/api/tasks/"+taskID+"/history", token, "")
	history := decode[[]proto.Version](t, rec)
	is.Equal(len(history), 1)
	is.Equal(history[0].ChangeType, proto.ChangeComment)
}

func TestUploadRejectsMalformedRequests(t *testing.T) {
	is := is.New(t)
	blobs := storage.NewLocalStorage(t.TempDir())
	s := newTestServer(t, blobs)
	_, token := s.user("Alice")

	rec := s.json(http.MethodPost, "/api/tasks", token, `{"title":"Files"}`)
	taskID := decode[proto.Task](t, rec).ID
	path := "/api/tasks/" + taskID + "/attachments/upload"

	rec = s.json(http.MethodPost, path, token, `{"file":"nope"}`)
	is.Equal(rec.Code, http.StatusBadRequest)

	body, ct := multipartBody(t, "other", "a.txt", "text/plain", "hello")
	rec = s.do(http.MethodPost, path, token, body, ct)
	is.Equal(rec.Code, http.StatusBadRequest)
	is.Equal(decode[errorResponse](t, rec).Error, "No file provided")

	keys, err := blobs.List()
	is.NoErr(err)
	is.Equal(len(keys), 0)

	rec = s.json(http.MethodGet, "/api/tasks/"+taskID+"/attachments", token, "")
	is.Equal(len(decode[[]proto.Attachment](t, rec)), 0)
}

func TestUploadInline(t *testing.T) {
	is := is.New(t)
	s := newTestServer(t, nil)
	_, token := s.user("Alice")

	rec := s.json(http.MethodPost, "/api/tasks", token, `{"title":"Files"}`)
	taskID := decode[proto.Task](t, rec).ID

	body, ct := multipartBody(t, "file", "notes.txt", "text/plain", "hello")
	rec = s.do(http.MethodPost, "/api/tasks/"+taskID+"/attachments/upload", token, body, ct)
	is.Equal(rec.Code, http.StatusCreated)
	a := decode[proto.Attachment](t, rec)
	is.True(strings.HasPrefix(a.FileURL, "data:"))

	rec = s.json(http.MethodGet, "/api/tasks/"+taskID+"/attachments", token, "")
	attachments := decode[[]proto.Attachment](t, rec)
	is.Equal(len(attachments), 1)
	is.Equal(attachments[0].FileType, "text/plain")
}

func TestUploadAndServeBlob(t *testing.T) {
	is := is.New(t)
	s := newTestServer(t, storage.NewLocalStorage(t.TempDir()))
	_, token := s.user("Alice")

	rec := s.json(http.MethodPost, "/api/tasks", token, `{"title":"Files"}`)
	taskID := decode[proto.Task](t, rec).ID

	body, ct := multipartBody(t, "file", "my report.csv", "text/csv", "a,b\n1,2\n")
	rec = s.do(http.MethodPost, "/api/tasks/"+taskID+"/attachments/upload", token, body, ct)
	is.Equal(rec.Code, http.StatusCreated)
	a := decode[proto.Attachment](t, rec)
	is.True(strings.HasPrefix(a.FileURL, backend.BlobPrefix))
	is.Equal(*a.FileSize, int64(8))

	rec = s.do(http.MethodGet, a.FileURL, "", nil, "")
	is.Equal(rec.Code, http.StatusOK)
	is.Equal(rec.Header().Get("Content-Type"), "text/csv")
	is.Equal(rec.Body.String(), "a,b\n1,2\n")

	rec = s.do(http.MethodGet, backend.BlobPrefix+taskID+"/missing", "", nil, "")
	is.Equal(rec.Code, http.StatusNotFound)

	rec = s.json(http.MethodGet, "/api/tasks/"+taskID+"/history", token, "")
	history := decode[[]proto.Version](t, rec)
	is.Equal(len(history), 1)
	is.Equal(history[0].ChangeType, proto.ChangeAttachment)
}

func TestUploadTooLarge(t *testing.T) {
	is := is.New(t)
	blobs := storage.NewLocalStorage(t.TempDir())
	s := newTestServer(t, blobs, func(cfg *config.Config) {
		cfg.Attachments.MaxUploadSize = 512
	})
	_, token := s.user("Alice")

	rec := s.json(http.MethodPost, "/api/tasks", token, `{"title":"Files"}`)
	taskID := decode[proto.Task](t, rec).ID

	body, ct := multipartBody(t, "file", "big.bin", "application/octet-stream", strings.Repeat("x", 4096))
	rec = s.do(http.MethodPost, "/api/tasks/"+taskID+"/attachments/upload", token, body, ct)
	is.Equal(rec.Code, http.StatusBadRequest)
	is.Equal(decode[errorResponse](t, rec).Error, "File too large")

	keys, err := blobs.List()
	is.NoErr(err)
	is.Equal(len(keys), 0)
}

func TestBlobsWithoutStorage(t *testing.T) {
	is := is.New(t)
	s := newTestServer(t, nil)

	rec := s.do(http.MethodGet, backend.BlobPrefix+"some/key", "", nil, "")
	is.Equal(rec.Code, http.StatusInternalServerError)
	is.Equal(decode[errorResponse](t, rec).Error, "Blob storage not configured")
}

func TestRegisterAttachment(t *testing.T) {
	is := is.New(t)
	s := newTestServer(t, nil)
	_, token := s.user("Alice")

	rec := s.json(http.MethodPost, "/api/tasks", token, `{"title":"Links"}`)
	taskID := decode[proto.Task](t, rec).ID

	rec = s.json(http.MethodPost, "/api/tasks/"+taskID+"/attachments", token,
		`{"fileName":"a.pdf","fileUrl":"https://cdn.example.com/a.pdf","fileType":"application/pdf","fileSize":10}`)
	is.Equal(rec.Code, http.StatusCreated)

	rec = s.json(http.MethodPost, "/api/tasks/"+taskID+"/attachments", token, `{"fileName":"a.pdf"}`)
	is.Equal(rec.Code, http.StatusBadRequest)

	for _, fileURL := range []string{"not a url", "/r2/" + taskID + "/x_a.pdf", "ftp://files.example.com/a.pdf", "https:///a.pdf"} {
		rec = s.json(http.MethodPost, "/api/tasks/"+taskID+"/attachments", token,
			`{"fileName":"a.pdf","fileUrl":"`+fileURL+`","fileType":"application/pdf"}`)
		is.Equal(rec.Code, http.StatusBadRequest)
		is.Equal(decode[errorResponse](t, rec).Error, "File URL must be an http or https URL")
	}
}

func TestUploadWithoutFileName(t *testing.T) {
	is := is.New(t)
	s := newTestServer(t, storage.NewLocalStorage(t.TempDir()))
	_, token := s.user("Alice")

	rec := s.json(http.MethodPost, "/api/tasks", token, `{"title":"Files"}`)
	taskID := decode[proto.Task](t, rec).ID

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormField("file")
	is.NoErr(err)
	_, err = io.WriteString(part, "hello")
	is.NoErr(err)
	is.NoErr(mw.Close())

	rec = s.do(http.MethodPost, "/api/tasks/"+taskID+"/attachments/upload", token, &buf, mw.FormDataContentType())
	is.Equal(rec.Code, http.StatusCreated)
	a := decode[proto.Attachment](t, rec)
	is.Equal(a.FileName, "attachment")
	is.Equal(a.FileType, "application/octet-stream")
}

func TestActivityRoute(t *testing.T) {
	is := is.New(t)
	s := newTestServer(t, nil)
	_, token := s.user("Alice")

	s.json(http.MethodPost, "/api/tasks", token, `{"title":"a"}`)
	s.json(http.MethodPost, "/api/tasks", token, `{"title":"b"}`)

	rec := s.json(http.MethodGet, "/api/stats/activity", token, "")
	is.Equal(rec.Code, http.StatusOK)
	days := decode[[]proto.ActivityDay](t, rec)
	is.Equal(len(days), 1)
	is.Equal(days[0].Count, 2)
}

func TestCORS(t *testing.T) {
	is := is.New(t)
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/tasks", nil)
	req.Header.Set("Origin", s.cfg.HTTP.PublicURL)
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	is.Equal(rec.Header().Get("Access-Control-Allow-Origin"), s.cfg.HTTP.PublicURL)
	is.Equal(rec.Header().Get("Access-Control-Allow-Credentials"), "true")
}
