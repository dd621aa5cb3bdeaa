package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/roach88/projects/internal/dao"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open("sqlite3", path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	// Verify file was created
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("oracle", "scott/tiger")
	if err == nil {
		t.Error("expected error for unknown driver, got nil")
	}
}

func TestOpen_InvalidPath(t *testing.T) {
	// Try to open in non-existent directory
	_, err := Open("sqlite3", "/nonexistent/dir/test.db")
	if err == nil {
		t.Error("expected error for invalid path, got nil")
	}
}

func TestOpen_Dialect(t *testing.T) {
	s := createTestStore(t)
	if s.Dialect() != dao.SQLite {
		t.Errorf("Dialect() = %v, want sqlite3", s.Dialect())
	}
}

func TestApplySchema_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		s, err := Open("sqlite3", path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		if err := s.ApplySchema(ctx); err != nil {
			t.Fatalf("ApplySchema() iteration %d failed: %v", i, err)
		}
		s.Close()
	}

	s, err := Open("sqlite3", path)
	if err != nil {
		t.Fatalf("final Open() failed: %v", err)
	}
	defer s.Close()

	tables := []string{"project", "material", "step", "category", "project_category"}
	for _, table := range tables {
		var name string
		err := s.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q not found after repeated schema application: %v", table, err)
		}
	}
}

func TestSchemaStatements_AllDialects(t *testing.T) {
	for _, d := range []dao.Dialect{dao.MySQL, dao.Postgres, dao.SQLite} {
		stmts, err := schemaStatements(d)
		if err != nil {
			t.Fatalf("schemaStatements(%s) failed: %v", d, err)
		}
		if len(stmts) < 5 {
			t.Errorf("schemaStatements(%s) returned %d statements, want at least 5", d, len(stmts))
		}
		for _, stmt := range stmts {
			if stmt == "" || stmt[0] == '-' {
				t.Errorf("schemaStatements(%s) returned comment or empty statement %q", d, stmt)
			}
		}
	}
}

func TestSchemaStatements_UnknownDialect(t *testing.T) {
	if _, err := schemaStatements(dao.Dialect{Name: "oracle"}); err == nil {
		t.Error("expected error for dialect without schema")
	}
}

func TestClose_NilDB(t *testing.T) {
	s := &Store{db: nil}
	if err := s.Close(); err != nil {
		t.Errorf("Close() on nil db should not error: %v", err)
	}
}

func TestDB_ReturnsUnderlyingConnection(t *testing.T) {
	s := createTestStore(t)

	db := s.DB()
	if db == nil {
		t.Fatal("DB() returned nil")
	}
	if err := db.Ping(); err != nil {
		t.Errorf("DB() connection not usable: %v", err)
	}
}

// Pragma tests

func TestPragmas(t *testing.T) {
	s := createTestStore(t)

	tests := []struct {
		name string
		want string
	}{
		{"journal_mode", "wal"},
		{"synchronous", "1"}, // NORMAL
		{"busy_timeout", "5000"},
		{"foreign_keys", "1"}, // ON
	}
	for _, tt := range tests {
		if err := s.verifyPragma(tt.name, tt.want); err != nil {
			t.Error(err)
		}
	}
}

func TestConstraint_CategoryNameUnique(t *testing.T) {
	s := createTestStore(t)

	if _, err := s.db.Exec("INSERT INTO category (category_name) VALUES ('Garden')"); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if _, err := s.db.Exec("INSERT INTO category (category_name) VALUES ('Garden')"); err == nil {
		t.Error("expected UNIQUE violation for duplicate category name")
	}
}

func TestConstraint_ForeignKeyMaterialToProject(t *testing.T) {
	s := createTestStore(t)

	_, err := s.db.Exec("INSERT INTO material (project_id, material_name) VALUES (999, 'nails')")
	if err == nil {
		t.Error("expected foreign key violation for material without project")
	}
}
