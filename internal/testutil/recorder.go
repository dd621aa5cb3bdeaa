package testutil

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

// Recorder keeps every statement text prepared through a recording driver.
//
// Thread-safety: all methods are safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	queries []string
}

func (r *Recorder) record(query string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, query)
}

// Queries returns the recorded statements in execution order.
func (r *Recorder) Queries() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.queries))
	copy(out, r.queries)
	return out
}

// Count returns how many recorded statements contain substr.
func (r *Recorder) Count(substr string) int {
	n := 0
	for _, q := range r.Queries() {
		if strings.Contains(q, substr) {
			n++
		}
	}
	return n
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = nil
}

var driverSeq atomic.Int64

// OpenRecordingSQLite opens the SQLite database at path through a driver that
// records each statement into the returned Recorder. The handle is closed
// when the test ends.
func OpenRecordingSQLite(t testing.TB, path string) (*sqlx.DB, *Recorder) {
	t.Helper()

	rec := &Recorder{}
	name := fmt.Sprintf("sqlite3_recording_%d", driverSeq.Add(1))
	sql.Register(name, &recordingDriver{inner: &sqlite3.SQLiteDriver{}, rec: rec})

	db, err := sql.Open(name, path)
	if err != nil {
		t.Fatalf("open recording driver: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// sqlite3 selects '?' placeholders in sqlx.
	return sqlx.NewDb(db, "sqlite3"), rec
}

type recordingDriver struct {
	inner driver.Driver
	rec   *Recorder
}

func (d *recordingDriver) Open(name string) (driver.Conn, error) {
	conn, err := d.inner.Open(name)
	if err != nil {
		return nil, err
	}
	return &recordingConn{Conn: conn, rec: d.rec}, nil
}

// recordingConn only exposes Prepare for statements, so database/sql routes
// every query and exec through it.
type recordingConn struct {
	driver.Conn
	rec *Recorder
}

func (c *recordingConn) Prepare(query string) (driver.Stmt, error) {
	c.rec.record(query)
	return c.Conn.Prepare(query)
}

func (c *recordingConn) PrepareContext(ctx context.Context, query string) (driver.Stmt, error) {
	c.rec.record(query)
	if p, ok := c.Conn.(driver.ConnPrepareContext); ok {
		return p.PrepareContext(ctx, query)
	}
	return c.Conn.Prepare(query)
}

func (c *recordingConn) BeginTx(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	if b, ok := c.Conn.(driver.ConnBeginTx); ok {
		return b.BeginTx(ctx, opts)
	}
	return c.Conn.Begin()
}
