// Package api talks to the ConstructTrack REST backend. Every operation is
// exactly one HTTP request; there is no retry, batching or caching.
package api

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

	"github.com/dori/constructtrack/internal/logging"
	"github.com/dori/constructtrack/internal/model"
	"github.com/google/uuid"
)

// DefaultBaseURL is used when no backend URL is configured
const DefaultBaseURL = "http://localhost:8000"

// RequestIDHeader carries a per-request correlation id
const RequestIDHeader = "X-Request-ID"

// StatusError is returned for any non-2xx response. The body is discarded.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
}

// Client is a thin wrapper over http.Client bound to one base URL
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for baseURL. A nil httpClient gets a client
// with no timeout; in-flight requests are only stopped by ctx.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// BaseURL returns the backend the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListProjects returns every project
func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := c.do(ctx, http.MethodGet, "/api/projects", nil, nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// ListTasks returns tasks, scoped to projectID when it is not empty
func (c *Client) ListTasks(ctx context.Context, projectID string) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks", scope(projectID), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListEntries returns time entries, scoped to projectID when it is not empty
func (c *Client) ListEntries(ctx context.Context, projectID string) ([]model.TimeEntry, error) {
	var entries []model.TimeEntry
	if err := c.do(ctx, http.MethodGet, "/api/time/entries", scope(projectID), nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// CreateProject creates a new project
func (c *Client) CreateProject(ctx context.Context, name string) (*model.Project, error) {
	body := map[string]string{"name": name}
	var p model.Project
	if err := c.do(ctx, http.MethodPost, "/api/projects", nil, body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateTask creates a new task inside projectID
func (c *Client) CreateTask(ctx context.Context, name, projectID string) (*model.Task, error) {
	body := map[string]string{"name": name, "project_id": projectID}
	var t model.Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks", nil, body, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// StartTimer opens a running time entry for taskID
func (c *Client) StartTimer(ctx context.Context, taskID string) (*model.TimeEntry, error) {
	body := map[string]string{"task_id": taskID}
	var te model.TimeEntry
	if err := c.do(ctx, http.MethodPost, "/api/time/start", nil, body, &te); err != nil {
		return nil, err
	}
	return &te, nil
}

// StopTimer closes a running time entry. The server fills in duration_sec.
func (c *Client) StopTimer(ctx context.Context, entryID string) (*model.TimeEntry, error) {
	body := map[string]string{"entry_id": entryID}
	var te model.TimeEntry
	if err := c.do(ctx, http.MethodPost, "/api/time/stop", nil, body, &te); err != nil {
		return nil, err
	}
	return &te, nil
}

func scope(projectID string) url.Values {
	if projectID == "" {
		return nil
	}
	return url.Values{"project_id": {projectID}}
}

// do sends one request and decodes a JSON response into out
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	requestID := uuid.New().String()
	req.Header.Set(RequestIDHeader, requestID)

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logging.Debugf("api %s %s id=%s err=%v", method, path, requestID, err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	logging.Debugf("api %s %s id=%s status=%d took=%s", method, path, requestID, resp.StatusCode, time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: failed to decode response: %w", method, path, err)
	}
	return nil
}
