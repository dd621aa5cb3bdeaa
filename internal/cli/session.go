package cli

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/cockroachdb/apd/v3"

	"github.com/roach88/projects/internal/config"
	"github.com/roach88/projects/internal/dao"
	"github.com/roach88/projects/internal/service"
	"github.com/roach88/projects/internal/store"
)

// session is an open store and the service over it, for one command.
type session struct {
	store *store.Store
	svc   *service.ProjectService
}

// openSession resolves configuration (file, environment, flags) and opens
// the database.
func openSession(opts *RootOptions, f *OutputFormatter) (*session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, failWith(f, ErrCodeConfig, ExitCommandError, "load config", err)
	}

	db := cfg.Database
	if opts.Driver != "" {
		db.Driver = opts.Driver
	}
	if opts.DSN != "" {
		db.DSN = opts.DSN
	}

	driver, err := db.DriverName()
	if err != nil {
		return nil, failWith(f, ErrCodeConfig, ExitCommandError, "resolve driver", err)
	}
	dsn, err := db.DataSourceName()
	if err != nil {
		return nil, failWith(f, ErrCodeConfig, ExitCommandError, "build connection string", err)
	}

	f.VerboseLog("Opening %s database", driver)
	st, err := store.Open(driver, dsn)
	if err != nil {
		return nil, failWith(f, ErrCodeStorage, ExitCommandError, "open database", err)
	}
	slog.Debug("database ready", "driver", driver)

	return &session{store: st, svc: service.New(st)}, nil
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}

// fail reports err and returns the ExitError for it: exit 1 for a missing
// project or category, exit 2 otherwise.
func fail(f *OutputFormatter, err error) error {
	switch {
	case service.IsNotFound(err):
		return failWith(f, ErrCodeNotFound, ExitFailure, "not found", err)
	case dao.IsTransactionError(err):
		var te *dao.TransactionError
		errors.As(err, &te)
		return failWith(f, ErrCodeStorage, ExitCommandError, te.Op, err)
	default:
		return failWith(f, ErrCodeStorage, ExitCommandError, "command failed", err)
	}
}

func failWith(f *OutputFormatter, code string, exit int, message string, err error) error {
	_ = f.Error(code, err.Error(), nil)
	return WrapExitError(exit, message, err)
}

func failInput(f *OutputFormatter, message string) error {
	_ = f.Error(ErrCodeInvalidInput, message, nil)
	return NewExitError(ExitCommandError, message)
}

// parseID parses a positive row id argument.
func parseID(f *OutputFormatter, what, s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, failInput(f, "invalid "+what+" ID "+strconv.Quote(s))
	}
	return id, nil
}

// parseDecimal parses an optional decimal flag; the empty string is nil.
func parseDecimal(f *OutputFormatter, flag, s string) (*apd.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return nil, failInput(f, "invalid --"+flag+" "+strconv.Quote(s)+": must be a decimal number")
	}
	return d, nil
}
