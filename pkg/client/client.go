// Package client is a Go client for the taskflow HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/taskflow-dev/taskflow/pkg/proto"
)

// Error is a failed API response.
type Error struct {
	StatusCode int
	Message    string `json:"error"`
	Details    string `json:"details,omitempty"`
}

// Error implements error.
func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Message, e.Details)
	}
	return fmt.Sprintf("%d %s", e.StatusCode, e.Message)
}

// Client talks to a taskflow server on behalf of one session.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New returns a client for the server at baseURL authenticating with token.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Me returns the session user.
func (c *Client) Me(ctx context.Context) (proto.User, error) {
	var u proto.User
	err := c.do(ctx, http.MethodGet, "/api/me", nil, &u)
	return u, err
}

// ListTasks lists a team's tasks, or the caller's personal tasks when teamID
// is empty.
func (c *Client) ListTasks(ctx context.Context, teamID string) ([]proto.Task, error) {
	path := "/api/tasks"
	if teamID != "" {
		path += "?" + url.Values{"teamId": {teamID}}.Encode()
	}
	var tasks []proto.Task
	err := c.do(ctx, http.MethodGet, path, nil, &tasks)
	return tasks, err
}

// GetTask returns a task.
func (c *Client) GetTask(ctx context.Context, id string) (proto.Task, error) {
	var t proto.Task
	err := c.do(ctx, http.MethodGet, "/api/tasks/"+url.PathEscape(id), nil, &t)
	return t, err
}

// UpdateTask sends a partial update. Only the fields set in patch are sent.
func (c *Client) UpdateTask(ctx context.Context, id string, patch proto.TaskPatch) (proto.Task, error) {
	var t proto.Task
	err := c.do(ctx, http.MethodPatch, "/api/tasks/"+url.PathEscape(id), patch, &t)
	return t, err
}

// History returns a task's ledger, newest first.
func (c *Client) History(ctx context.Context, id string) ([]proto.Version, error) {
	var versions []proto.Version
	err := c.do(ctx, http.MethodGet, "/api/tasks/"+url.PathEscape(id)+"/history", nil, &versions)
	return versions, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	logger := log.FromContext(ctx).WithPrefix("client")
	logger.Debug("calling", "method", method, "path", path)

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		return err
	}
	defer res.Body.Close() // nolint: errcheck

	if res.StatusCode >= http.StatusBadRequest {
		return decodeError(res)
	}
	if out == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(res *http.Response) error {
	e := &Error{StatusCode: res.StatusCode}
	if err := json.NewDecoder(res.Body).Decode(e); err != nil || e.Message == "" {
		e.Message = http.StatusText(res.StatusCode)
	}
	return e
}
