package database

import (
	"io/fs"
	"regexp"
	"strings"
	"testing"
)

// migrationVersionRe matches golang-migrate's NNNNNN_name.up|down.sql naming.
var migrationVersionRe = regexp.MustCompile(`^(\d{6})_[a-z0-9_]+\.(up|down)\.sql$`)

// TestMigrations_UpDownPairs verifies every embedded migration has both an
// up and a down file and that versions are sequential starting at 1. A
// missing pair or gap makes golang-migrate refuse to run at startup, so
// catch it here instead.
func TestMigrations_UpDownPairs(t *testing.T) {
	entries, err := fs.ReadDir(migrationFiles, "migrations")
	if err != nil {
		t.Fatalf("reading embedded migrations: %v", err)
	}

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		m := migrationVersionRe.FindStringSubmatch(e.Name())
		if m == nil {
			t.Errorf("migration file %q does not match the NNNNNN_name.up|down.sql convention", e.Name())
			continue
		}
		if m[2] == "up" {
			ups[m[1]] = true
		} else {
			downs[m[1]] = true
		}
	}

	if len(ups) == 0 {
		t.Fatal("no up migrations embedded")
	}
	for v := range ups {
		if !downs[v] {
			t.Errorf("migration %s has no down file", v)
		}
	}
	for v := range downs {
		if !ups[v] {
			t.Errorf("migration %s has no up file", v)
		}
	}
}

// TestMigrations_InitSchema sanity-checks the initial migration: all five
// tables must exist and the foreign key actions the endpoints rely on
// (folder subtree cascade, note unfiling, join-row cleanup) must be present.
func TestMigrations_InitSchema(t *testing.T) {
	raw, err := fs.ReadFile(migrationFiles, "migrations/000001_init.up.sql")
	if err != nil {
		t.Fatalf("reading init migration: %v", err)
	}
	ddl := string(raw)

	for _, table := range []string{"folders", "notes", "tags", "note_tags", "images"} {
		if !strings.Contains(ddl, "CREATE TABLE "+table) {
			t.Errorf("init migration does not create table %q", table)
		}
	}

	for _, clause := range []string{
		"parent_id  INTEGER REFERENCES folders (id) ON DELETE CASCADE",
		"folder_id  INTEGER REFERENCES folders (id) ON DELETE SET NULL",
		"REFERENCES notes (id) ON DELETE CASCADE",
		"REFERENCES tags (id) ON DELETE CASCADE",
	} {
		if !strings.Contains(ddl, clause) {
			t.Errorf("init migration missing foreign key clause %q", clause)
		}
	}
}
