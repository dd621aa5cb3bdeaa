// Package dao holds the generic pieces every table-specific data-access type
// is built from.
//
// # Row extraction
//
// Extract populates a fresh record from one result row. The record's shape is
// read once per Go type by reflection and cached:
//   - Fields bind by `db:"name"` first; otherwise the field name is turned into a
//     column name by ColumnName ("NumRequired" -> "num_required").
//   - A column missing from the result set leaves the field untouched. This is
//     what keeps collection fields (slices of structs) that Init pre-populated.
//   - SQL NULL also leaves the field untouched.
//   - A field whose column name collides with an unrelated column silently
//     receives that column's value. Select columns explicitly when in doubt, or
//     use an Extractor with Strict set to turn missing columns into errors.
//
// # Parameter binding
//
// Params binds positional parameters with a declared Go type so that a nil
// value still carries a storage type (see StorageTypeOf). Types outside the
// closed table are rejected with UnsupportedTypeError.
//
// # Transactions
//
// RunInTx opens one transaction per call and always finishes it: commit when
// the callback returns nil, rollback otherwise. Every failure after BEGIN is
// reported as a *TransactionError that wraps the original cause.
//
// # Helpers
//
//   - NextOrdinal: count of child rows under a parent plus one. The value is not
//     reserved, so two concurrent inserts under the same parent can compute the
//     same ordinal.
//   - LastInsertID: the identity generated by the last insert on the session,
//     using the dialect's session function.
package dao
