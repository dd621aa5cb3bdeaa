package service

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by every NotFoundError.
var ErrNotFound = errors.New("not found")

// NotFoundError reports that the addressed row does not exist.
type NotFoundError struct {
	// Entity is the kind of row, e.g. "project".
	Entity string

	// Key identifies the row, e.g. "ID=7".
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with %s does not exist", e.Entity, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// IsNotFound reports whether err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func projectNotFound(projectID int) error {
	return &NotFoundError{Entity: "project", Key: fmt.Sprintf("ID=%d", projectID)}
}
