package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDescriptionFromFilename(t *testing.T) {
	cases := []struct{ in, want string }{
		{"2026-03-01-004-create-plans.sql", "create plans"},
		{"2026-03-01-001-create-migrations-and-users.sql", "create migrations and users"},
		{"notes.sql", "notes"},
	}
	for _, tc := range cases {
		if got := descriptionFromFilename(tc.in); got != tc.want {
			t.Errorf("descriptionFromFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLoadMigrations_SortedWithPending(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"2026-03-02-001-b.sql", "2026-03-01-001-a.sql", "readme.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	all, err := loadMigrations(dir)
	if err != nil {
		t.Fatalf("loadMigrations: %v", err)
	}
	if len(all) != 2 || all[0].Name != "2026-03-01-001-a.sql" || all[1].Description != "b" {
		t.Fatalf("unexpected migrations: %+v", all)
	}

	pending := pendingMigrations(all, map[string]bool{"2026-03-01-001-a.sql": true})
	if len(pending) != 1 || pending[0].Name != "2026-03-02-001-b.sql" {
		t.Errorf("expected only b pending, got %+v", pending)
	}
}

func TestLoadMigrations_EmptyDir(t *testing.T) {
	if _, err := loadMigrations(t.TempDir()); err == nil {
		t.Error("expected an error for a directory without migrations")
	}
}
