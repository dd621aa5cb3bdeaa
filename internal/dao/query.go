package dao

import (
	"context"
	"database/sql"
	"fmt"
)

// Querier is the statement surface shared by *sqlx.DB and *sqlx.Tx.
// Statements are written with '?' placeholders and passed through Rebind.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	Rebind(query string) string
}

// QueryAll runs query and extracts every row into a T. It returns an empty
// slice, never nil, when there are no rows.
func QueryAll[T any](ctx context.Context, q Querier, query string, params *Params) ([]T, error) {
	args, err := params.Args()
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, q.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	cursor, err := ScanRows(rows)
	if err != nil {
		rows.Close()
		return nil, err
	}
	defer cursor.Close()

	out := []T{}
	for cursor.Next() {
		obj, err := Extract[T](cursor.Row())
		if err != nil {
			return nil, err
		}
		out = append(out, *obj)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}

// QueryOne runs query and extracts its first row. found is false when the
// result set is empty.
func QueryOne[T any](ctx context.Context, q Querier, query string, params *Params) (obj *T, found bool, err error) {
	args, err := params.Args()
	if err != nil {
		return nil, false, err
	}

	rows, err := q.QueryContext(ctx, q.Rebind(query), args...)
	if err != nil {
		return nil, false, fmt.Errorf("query: %w", err)
	}
	cursor, err := ScanRows(rows)
	if err != nil {
		rows.Close()
		return nil, false, err
	}
	defer cursor.Close()

	if !cursor.Next() {
		if err := cursor.Err(); err != nil {
			return nil, false, fmt.Errorf("iterate rows: %w", err)
		}
		return nil, false, nil
	}
	obj, err = Extract[T](cursor.Row())
	if err != nil {
		return nil, false, err
	}
	return obj, true, nil
}

// Exec runs a statement that returns no rows.
func Exec(ctx context.Context, q Querier, query string, params *Params) (sql.Result, error) {
	args, err := params.Args()
	if err != nil {
		return nil, err
	}
	res, err := q.ExecContext(ctx, q.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("exec: %w", err)
	}
	return res, nil
}
