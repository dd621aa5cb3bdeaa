package dao

import (
	"context"
	"fmt"
)

// LastInsertID returns the identity generated by the most recent insert on
// q's session. q must be the transaction that performed the insert; on any
// other session the value is undefined.
//
// The query selects from table, so an empty table yields no row and a
// NoResultError.
func LastInsertID(ctx context.Context, q Querier, d Dialect, table string) (int, error) {
	if !validIdentifier(table) {
		return 0, fmt.Errorf("last insert id: invalid table name %q", table)
	}
	if d.LastInsertFunc == "" {
		return 0, fmt.Errorf("last insert id: dialect %q has no identity function", d.Name)
	}

	query := fmt.Sprintf("SELECT %s FROM %s LIMIT 1", d.LastInsertFunc, table)
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, fmt.Errorf("last insert id: %w", err)
		}
		return 0, &NoResultError{Query: query}
	}
	var id int64
	if err := rows.Scan(&id); err != nil {
		return 0, fmt.Errorf("last insert id: scan: %w", err)
	}
	return int(id), nil
}
