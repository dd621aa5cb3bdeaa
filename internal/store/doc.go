// Package store provides durable storage for DIY projects on MySQL,
// PostgreSQL or SQLite.
//
// The schema holds five tables:
//   - project: the parent rows
//   - material, step: children owned by one project, deleted with it
//   - category: shared labels with unique names
//   - project_category: links projects to categories
//
// # Transactions
//
// Each exported method opens exactly one transaction and commits or rolls it
// back before returning. Errors after BEGIN surface as *dao.TransactionError;
// errors.Is and errors.As reach the driver's cause through it.
//
// # Aggregates
//
// FetchProjectByID reads the project row first and only queries children
// when it exists. Materials come back in insertion order, steps by
// step_order and categories by name.
//
// # Identity
//
// Inserted rows get their id from the dialect's last-insert function, read
// on the same transaction as the insert.
package store
