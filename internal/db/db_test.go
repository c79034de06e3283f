package db

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSettingRoundTrip(t *testing.T) {
	db := openTestDB(t)

	if _, ok, err := db.GetSetting(SettingTheme); err != nil || ok {
		t.Fatalf("unset key: ok=%v err=%v", ok, err)
	}

	if err := db.SetSetting(SettingTheme, "dracula"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	if err := db.SetSetting(SettingTheme, "gruvbox"); err != nil {
		t.Fatalf("SetSetting overwrite: %v", err)
	}

	got, ok, err := db.GetSetting(SettingTheme)
	if err != nil || !ok || got != "gruvbox" {
		t.Fatalf("GetSetting = %q, %v, %v", got, ok, err)
	}

	if err := db.DeleteSetting(SettingTheme); err != nil {
		t.Fatalf("DeleteSetting: %v", err)
	}
	if _, ok, _ := db.GetSetting(SettingTheme); ok {
		t.Error("setting still present after delete")
	}
}

func TestReopenKeepsSettingsAndMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")

	first, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := first.SetSettings(map[string]string{SettingTheme: "nord", "other": "x"}); err != nil {
		t.Fatal(err)
	}
	first.Close()

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	if got, ok, _ := second.GetSetting("other"); !ok || got != "x" {
		t.Errorf("other = %q (ok=%v) after reopen", got, ok)
	}
}
