package store

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/projects/internal/dao"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Store is the data-access object for projects and their children.
// Every public method runs in its own transaction.
type Store struct {
	db      *sqlx.DB
	dialect dao.Dialect
	tx      *dao.TxRunner
}

// Open connects to the database named by driver and dsn.
//
// For SQLite the pool is limited to one connection and the pragmas below are
// applied. Open does not create tables; call ApplySchema for that.
func Open(driver, dsn string) (*Store, error) {
	dialect, err := dao.DialectFor(driver)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(dialect.DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify connection works
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s, err := New(db, dialect)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an open handle. Tests use it to supply instrumented drivers.
func New(db *sqlx.DB, dialect dao.Dialect) (*Store, error) {
	if dialect.Name == dao.SQLite.Name {
		// SQLite only supports one writer at a time
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)

		if err := applyPragmas(db); err != nil {
			return nil, fmt.Errorf("failed to apply pragmas: %w", err)
		}
	}
	return &Store{db: db, dialect: dialect, tx: dao.NewTxRunner(db)}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying handle.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Dialect returns the dialect the store was opened with.
func (s *Store) Dialect() dao.Dialect {
	return s.dialect
}

// SetLogger sets the logger used for transaction tracing.
func (s *Store) SetLogger(l *slog.Logger) {
	s.tx.Logger = l
}

// SetOpIDGenerator replaces the UUIDv7 operation ids in transaction logs.
func (s *Store) SetOpIDGenerator(g dao.OpIDGenerator) {
	s.tx.IDs = g
}

// ApplySchema creates any missing tables. It is idempotent.
func (s *Store) ApplySchema(ctx context.Context) error {
	stmts, err := schemaStatements(s.dialect)
	if err != nil {
		return err
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute schema: %w", err)
		}
	}
	return nil
}

// schemaStatements returns the dialect's DDL split into single statements,
// since the MySQL driver rejects multi-statement strings by default.
func schemaStatements(d dao.Dialect) ([]string, error) {
	data, err := schemaFS.ReadFile("schema/" + d.Name + ".sql")
	if err != nil {
		return nil, fmt.Errorf("no schema for dialect %q: %w", d.Name, err)
	}

	var b strings.Builder
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	stmts := []string{}
	for _, stmt := range strings.Split(b.String(), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
