package dao

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// OpIDGenerator produces the identifier attached to every log line of one
// transactional operation.
type OpIDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 operation ids.
//
// Thread-safety: stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Beginner opens transactions. *sqlx.DB satisfies it.
type Beginner interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// TxFunc is the body of a transactional operation.
type TxFunc func(tx Querier) error

// TxRunner runs operations in their own transaction.
type TxRunner struct {
	DB     Beginner
	IDs    OpIDGenerator
	Logger *slog.Logger
}

// NewTxRunner returns a runner using UUIDv7 op ids and the default logger.
func NewTxRunner(db Beginner) *TxRunner {
	return &TxRunner{DB: db, IDs: UUIDv7Generator{}}
}

// Run begins a transaction, calls fn and commits if fn returns nil. When fn
// fails or panics the transaction is rolled back. Failures are returned as
// *TransactionError naming op; a rollback failure is joined to the cause.
func (r *TxRunner) Run(ctx context.Context, op string, fn TxFunc) error {
	log := r.logger().With("op", op, "op_id", r.opID())

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		log.Error("begin transaction failed", "error", err)
		return &TransactionError{Op: op, Err: fmt.Errorf("begin: %w", err)}
	}
	log.Debug("transaction started")

	finished := false
	defer func() {
		if finished {
			return
		}
		if p := recover(); p != nil {
			_ = tx.Rollback()
			log.Error("transaction rolled back after panic", "panic", p)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		finished = true
		log.Debug("transaction rolled back", "error", err)
		return &TransactionError{Op: op, Err: err}
	}

	finished = true
	if err := tx.Commit(); err != nil {
		log.Error("commit failed", "error", err)
		return &TransactionError{Op: op, Err: fmt.Errorf("commit: %w", err)}
	}
	log.Debug("transaction committed")
	return nil
}

func (r *TxRunner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

func (r *TxRunner) opID() string {
	if r.IDs == nil {
		return UUIDv7Generator{}.Generate()
	}
	return r.IDs.Generate()
}
