package dao

import (
	"fmt"
	"strings"
)

// Dialect holds what differs between the supported databases.
type Dialect struct {
	// Name is the canonical dialect name.
	Name string

	// DriverName is the database/sql driver to open.
	DriverName string

	// LastInsertFunc is the session function returning the last generated identity.
	LastInsertFunc string
}

var (
	MySQL    = Dialect{Name: "mysql", DriverName: "mysql", LastInsertFunc: "LAST_INSERT_ID()"}
	Postgres = Dialect{Name: "postgres", DriverName: "postgres", LastInsertFunc: "lastval()"}
	SQLite   = Dialect{Name: "sqlite3", DriverName: "sqlite3", LastInsertFunc: "last_insert_rowid()"}
)

// DialectFor resolves a driver name or common alias to its dialect.
func DialectFor(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mysql", "mariadb":
		return MySQL, nil
	case "postgres", "postgresql", "pg":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	}
	return Dialect{}, fmt.Errorf("unknown database driver %q (want mysql, postgres or sqlite3)", name)
}

func (d Dialect) String() string {
	return d.Name
}
