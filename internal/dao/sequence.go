package dao

import (
	"context"
	"fmt"
)

// NextOrdinal returns one more than the number of rows in table whose
// parentColumn equals parentID, so the first child gets 1.
//
// The ordinal is not reserved. Two transactions inserting under the same
// parent at once can both compute the same value.
func NextOrdinal(ctx context.Context, q Querier, parentID int, table, parentColumn string) (int, error) {
	if !validIdentifier(table) {
		return 0, fmt.Errorf("next ordinal: invalid table name %q", table)
	}
	if !validIdentifier(parentColumn) {
		return 0, fmt.Errorf("next ordinal: invalid column name %q", parentColumn)
	}

	args, err := NewParams().Add(parentID, TypeOf[int]()).Args()
	if err != nil {
		return 0, fmt.Errorf("next ordinal: %w", err)
	}

	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = ?", table, parentColumn)
	rows, err := q.QueryContext(ctx, q.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("next ordinal: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, fmt.Errorf("next ordinal: %w", err)
		}
		return 0, &NoResultError{Query: query}
	}
	var count int
	if err := rows.Scan(&count); err != nil {
		return 0, fmt.Errorf("next ordinal: scan: %w", err)
	}
	return count + 1, nil
}
