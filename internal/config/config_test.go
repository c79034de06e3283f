package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func TestLoadCreatesDefaultFile(t *testing.T) {
	t.Setenv("CONSTRUCTTRACK_BACKEND_URL", "")
	path := filepath.Join(t.TempDir(), "nested", "constructtrack.yml")

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BackendURL != "http://localhost:8000" {
		t.Errorf("backend = %q", cfg.BackendURL)
	}
	if cfg.Theme != "slate" || !cfg.Notifications {
		t.Errorf("defaults = %+v", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not created: %v", err)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "constructtrack.yml")
	data := "backend_url: https://file.example.com\ntheme: dracula\nnotifications: false\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CONSTRUCTTRACK_BACKEND_URL", "https://env.example.com")
	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BackendURL != "https://env.example.com" {
		t.Errorf("backend = %q, want env value", cfg.BackendURL)
	}
	if cfg.Theme != "dracula" {
		t.Errorf("theme = %q, want file value", cfg.Theme)
	}
	if cfg.Notifications {
		t.Error("notifications should be off from file")
	}
}

func TestFlagOverridesEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "constructtrack.yml")
	t.Setenv("CONSTRUCTTRACK_BACKEND_URL", "https://env.example.com")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("backend-url", "", "")
	flags.String("theme", "", "")
	if err := flags.Parse([]string{"--backend-url", "https://flag.example.com"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, flags)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BackendURL != "https://flag.example.com" {
		t.Errorf("backend = %q, want flag value", cfg.BackendURL)
	}
	if cfg.Theme != "slate" {
		t.Errorf("unset theme flag should not override default, got %q", cfg.Theme)
	}
}

func TestDataDirDerivesDBPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "constructtrack.yml")
	t.Setenv("CONSTRUCTTRACK_DATA_DIR", filepath.Join(dir, "data"))

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBPath != filepath.Join(dir, "data", "constructtrack.db") {
		t.Errorf("db path = %q", cfg.DBPath)
	}
}
