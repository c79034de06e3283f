package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/dori/constructtrack/internal/model"
)

// backend is a minimal in-memory REST API
type backend struct {
	mu       sync.Mutex
	projects []model.Project
	tasks    []model.Task
	entries  []model.TimeEntry
	posts    []string
	failPOST bool
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var body map[string]string
	if r.Method == http.MethodPost {
		json.NewDecoder(r.Body).Decode(&body)
		b.posts = append(b.posts, r.URL.Path)
		if b.failPOST {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	projectID := r.URL.Query().Get("project_id")

	switch r.Method + " " + r.URL.Path {
	case "GET /api/projects":
		enc.Encode(b.projects)
	case "GET /api/tasks":
		out := []model.Task{}
		for _, t := range b.tasks {
			if t.InProject(projectID) {
				out = append(out, t)
			}
		}
		enc.Encode(out)
	case "GET /api/time/entries":
		enc.Encode(b.entries)
	case "POST /api/projects":
		p := model.Project{ID: "proj-000" + string(rune('1'+len(b.projects))), Name: body["name"]}
		b.projects = append(b.projects, p)
		enc.Encode(p)
	case "POST /api/tasks":
		t := model.Task{ID: "task-000" + string(rune('1'+len(b.tasks))), Name: body["name"], ProjectID: body["project_id"]}
		b.tasks = append(b.tasks, t)
		enc.Encode(t)
	case "POST /api/time/start":
		start := "2024-05-01T08:00:00"
		e := model.TimeEntry{ID: "entry-" + body["task_id"], TaskID: body["task_id"], StartTime: &start}
		b.entries = append([]model.TimeEntry{e}, b.entries...)
		enc.Encode(e)
	case "POST /api/time/stop":
		for i := range b.entries {
			if b.entries[i].ID == body["entry_id"] {
				end := "2024-05-01T09:30:00"
				d := int64(5400)
				b.entries[i].EndTime = &end
				b.entries[i].DurationSec = &d
				enc.Encode(b.entries[i])
				return
			}
		}
		http.Error(w, "not found", http.StatusNotFound)
	default:
		http.NotFound(w, r)
	}
}

var isolated sync.Map

func runCLI(t *testing.T, b *backend, args ...string) (string, string, error) {
	t.Helper()
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	// Config and data dirs are shared by every run within one test
	if _, done := isolated.LoadOrStore(t, true); !done {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		t.Setenv("CONSTRUCTTRACK_DATA_DIR", t.TempDir())
		t.Setenv("CONSTRUCTTRACK_NOTIFICATIONS", "false")
		t.Cleanup(func() { isolated.Delete(t) })
	}
	t.Setenv("CONSTRUCTTRACK_BACKEND_URL", srv.URL)

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func decodeData(t *testing.T, stdout string, v any) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal([]byte(stdout), &env); err != nil {
		t.Fatalf("stdout is not a JSON envelope: %v\n%s", err, stdout)
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decoding data: %v\n%s", err, env.Data)
	}
}

func TestProjectsCreateAndList(t *testing.T) {
	b := &backend{}

	stdout, stderr, err := runCLI(t, b, "--json", "projects", "create", "Tower", "A")
	if err != nil {
		t.Fatalf("create: %v\n%s", err, stderr)
	}
	var created model.Project
	decodeData(t, stdout, &created)
	if created.Name != "Tower A" || created.ID == "" {
		t.Errorf("created = %+v", created)
	}

	stdout, _, err = runCLI(t, b, "projects", "list")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "Tower A") || !strings.Contains(stdout, "NAME") {
		t.Errorf("table output:\n%s", stdout)
	}
}

func TestProjectsCreateBlankName(t *testing.T) {
	b := &backend{}
	_, _, err := runCLI(t, b, "projects", "create", "  ")

	var blank blankNameError
	if !errors.As(err, &blank) {
		t.Fatalf("err = %v, want blankNameError", err)
	}
	if len(b.posts) != 0 {
		t.Errorf("blank name reached the backend: %v", b.posts)
	}
}

func TestProjectsCreateFailure(t *testing.T) {
	b := &backend{failPOST: true}
	_, stderr, err := runCLI(t, b, "projects", "create", "Depot")

	var pe panelError
	if !errors.As(err, &pe) || pe.message != "Failed to create project" {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(stderr, "Failed to create project") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestTasksCreateRequiresKnownProject(t *testing.T) {
	b := &backend{projects: []model.Project{{ID: "p1", Name: "Tower A"}}}

	_, _, err := runCLI(t, b, "tasks", "create", "Rebar", "--project", "nope")
	var nf notFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want notFoundError", err)
	}

	stdout, stderr, err := runCLI(t, b, "--json", "tasks", "create", "Rebar", "--project", "p1")
	if err != nil {
		t.Fatalf("create: %v\n%s", err, stderr)
	}
	var task model.Task
	decodeData(t, stdout, &task)
	if task.ProjectID != "p1" || task.Name != "Rebar" {
		t.Errorf("task = %+v", task)
	}
}

func TestTimerToggleRoundTrip(t *testing.T) {
	b := &backend{
		projects: []model.Project{{ID: "p1", Name: "Tower A"}},
		tasks:    []model.Task{{ID: "task-9f3c", Name: "Pour slab", ProjectID: "p1"}},
	}

	stdout, stderr, err := runCLI(t, b, "--json", "timer", "toggle", "task-9f3c")
	if err != nil {
		t.Fatalf("start: %v\n%s", err, stderr)
	}
	var started model.TimeEntry
	decodeData(t, stdout, &started)
	if !started.IsRunning() {
		t.Fatalf("started = %+v, want running", started)
	}

	stdout, _, err = runCLI(t, b, "tasks", "list", "--project", "p1")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "running") {
		t.Errorf("tasks list should show the running timer:\n%s", stdout)
	}

	stdout, stderr, err = runCLI(t, b, "--json", "timer", "toggle", "task-9f3c")
	if err != nil {
		t.Fatalf("stop: %v\n%s", err, stderr)
	}
	var stopped model.TimeEntry
	decodeData(t, stdout, &stopped)
	if stopped.IsRunning() || stopped.TrackedSeconds() != 5400 {
		t.Errorf("stopped = %+v", stopped)
	}

	stdout, _, err = runCLI(t, b, "entries", "list")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "Task 9f3c") || !strings.Contains(stdout, "01:30:00") {
		t.Errorf("entries list:\n%s", stdout)
	}
}

func TestTimerToggleUnknownTask(t *testing.T) {
	b := &backend{}
	_, _, err := runCLI(t, b, "timer", "toggle", "missing")

	var nf notFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want notFoundError", err)
	}
	if len(b.posts) != 0 {
		t.Errorf("unexpected POSTs: %v", b.posts)
	}
}

func TestUnknownThemeIsRejected(t *testing.T) {
	_, _, err := runCLI(t, &backend{}, "--theme", "neon", "projects", "list")
	var ut unknownThemeError
	if !errors.As(err, &ut) {
		t.Fatalf("err = %v, want unknownThemeError", err)
	}
}

func TestVersion(t *testing.T) {
	stdout, _, err := runCLI(t, &backend{}, "version")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(stdout) != "constructtrack v"+Version {
		t.Errorf("version = %q", stdout)
	}
}

func TestThemeSetAndReset(t *testing.T) {
	b := &backend{}

	if _, _, err := runCLI(t, b, "theme", "set", "gruvbox"); err != nil {
		t.Fatal(err)
	}
	stdout, _, err := runCLI(t, b, "--json", "theme")
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]string
	decodeData(t, stdout, &got)
	if got["theme"] != "gruvbox" {
		t.Errorf("saved theme = %q, want gruvbox", got["theme"])
	}

	stdout, _, err = runCLI(t, b, "--json", "theme", "reset")
	if err != nil {
		t.Fatal(err)
	}
	decodeData(t, stdout, &got)
	if got["theme"] != "slate" {
		t.Errorf("theme after reset = %q, want configured slate", got["theme"])
	}

	_, _, err = runCLI(t, b, "theme", "set", "neon")
	var ut unknownThemeError
	if !errors.As(err, &ut) {
		t.Errorf("err = %v, want unknownThemeError", err)
	}
}
