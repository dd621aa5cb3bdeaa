package dao

import (
	"database/sql"
	"fmt"
)

// Row exposes one result row by column name.
type Row interface {
	// Value returns the column's value and whether the column exists.
	// A present column holding SQL NULL returns (nil, true).
	Value(column string) (any, bool)
}

// MapRow is a Row backed by a map. Keys are matched after the same
// normalisation ScanRows applies (quotes stripped, lower-cased).
type MapRow map[string]any

// Value implements Row.
func (m MapRow) Value(column string) (any, bool) {
	if v, ok := m[column]; ok {
		return v, true
	}
	col := normalizeColumn(column)
	for k, v := range m {
		if normalizeColumn(k) == col {
			return v, true
		}
	}
	return nil, false
}

// Rows is a cursor over a result set that yields each row as a MapRow.
type Rows struct {
	rows    *sql.Rows
	columns []string
	current MapRow
	err     error
}

// ScanRows wraps rows. The caller still owns rows and must Close the cursor.
func ScanRows(rows *sql.Rows) (*Rows, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}
	normalized := make([]string, len(cols))
	for i, c := range cols {
		normalized[i] = normalizeColumn(c)
	}
	return &Rows{rows: rows, columns: normalized}, nil
}

// Columns returns the normalised column names of the result set.
func (r *Rows) Columns() []string {
	return r.columns
}

// Next advances to the next row.
func (r *Rows) Next() bool {
	if r.err != nil || !r.rows.Next() {
		return false
	}

	values := make([]any, len(r.columns))
	ptrs := make([]any, len(r.columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := r.rows.Scan(ptrs...); err != nil {
		r.err = fmt.Errorf("scan row: %w", err)
		return false
	}

	row := make(MapRow, len(r.columns))
	for i, c := range r.columns {
		// Drivers may reuse the backing array of []byte values between rows.
		if b, ok := values[i].([]byte); ok {
			values[i] = append([]byte(nil), b...)
		}
		row[c] = values[i]
	}
	r.current = row
	return true
}

// Row returns the row Next advanced to.
func (r *Rows) Row() Row {
	return r.current
}

// Err returns the first error met while iterating.
func (r *Rows) Err() error {
	if r.err != nil {
		return r.err
	}
	return r.rows.Err()
}

// Close closes the underlying rows.
func (r *Rows) Close() error {
	return r.rows.Close()
}
