package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/require"

	"github.com/roach88/projects/internal/dao"
	"github.com/roach88/projects/internal/entity"
	"github.com/roach88/projects/internal/testutil"
)

// createTestStore creates a new file-backed SQLite store with the schema applied.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open("sqlite3", path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.ApplySchema(context.Background()))
	return s
}

// createRecordingStore is createTestStore over a driver that records statements.
func createRecordingStore(t *testing.T) (*Store, *testutil.Recorder) {
	t.Helper()
	db, rec := testutil.OpenRecordingSQLite(t, filepath.Join(t.TempDir(), "test.db"))
	s, err := New(db, dao.SQLite)
	require.NoError(t, err)
	require.NoError(t, s.ApplySchema(context.Background()))
	rec.Reset()
	return s, rec
}

func decimal(t *testing.T, s string) *apd.Decimal {
	t.Helper()
	d, _, err := apd.NewFromString(s)
	require.NoError(t, err)
	return d
}

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

// insertTestProject inserts a project named name and returns it with its id.
func insertTestProject(t *testing.T, s *Store, name string) *entity.Project {
	t.Helper()
	p, err := s.InsertProject(context.Background(), &entity.Project{ProjectName: name})
	require.NoError(t, err)
	return p
}
