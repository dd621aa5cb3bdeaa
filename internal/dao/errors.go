package dao

import (
	"database/sql"
	"errors"
	"fmt"
	"reflect"
)

// ErrorCode categorizes data-access errors.
type ErrorCode string

const (
	// ErrCodeUnsupportedType indicates a Go type with no storage mapping.
	ErrCodeUnsupportedType ErrorCode = "UNSUPPORTED_TYPE"

	// ErrCodeExtraction indicates a row could not be materialized into a record.
	ErrCodeExtraction ErrorCode = "EXTRACTION_FAILED"

	// ErrCodeNoResult indicates a query that must return a row returned none.
	ErrCodeNoResult ErrorCode = "NO_RESULT"

	// ErrCodeTransaction indicates a transactional operation failed and was rolled back.
	ErrCodeTransaction ErrorCode = "TRANSACTION_FAILED"
)

// ErrMissingColumn is wrapped by ExtractionError when a strict Extractor finds
// no column for a scalar field.
var ErrMissingColumn = errors.New("column not in result set")

// ErrNoRows is returned by QueryOne callers that require a row. It is
// sql.ErrNoRows so both spellings match with errors.Is.
var ErrNoRows = sql.ErrNoRows

// UnsupportedTypeError is returned when a declared parameter or field type is
// outside the storage type table. It is a programming error.
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("%s: unsupported type %v", ErrCodeUnsupportedType, e.Type)
}

// ExtractionError reports a failure to build a record from a result row.
type ExtractionError struct {
	// Type is the record type being built.
	Type reflect.Type

	// Field and Column identify the failing field, empty when construction failed.
	Field  string
	Column string

	Err error
}

func (e *ExtractionError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: unable to create object of type %v: field %s (column %s): %v",
			ErrCodeExtraction, e.Type, e.Field, e.Column, e.Err)
	}
	return fmt.Sprintf("%s: unable to create object of type %v: %v", ErrCodeExtraction, e.Type, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NoResultError is returned when a query expected to produce a row produced
// none. For LastInsertID this means the session or driver was misused.
type NoResultError struct {
	Query string
}

func (e *NoResultError) Error() string {
	return fmt.Sprintf("%s: no result row for %q", ErrCodeNoResult, e.Query)
}

// TransactionError wraps any failure that happened after a transaction began.
// By the time it is returned the transaction has been rolled back.
type TransactionError struct {
	// Op names the operation, e.g. "insert project".
	Op string

	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrCodeTransaction, e.Op, e.Err)
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}

// IsUnsupportedType reports whether err is or wraps an UnsupportedTypeError.
func IsUnsupportedType(err error) bool {
	var ue *UnsupportedTypeError
	return errors.As(err, &ue)
}

// IsExtractionError reports whether err is or wraps an ExtractionError.
func IsExtractionError(err error) bool {
	var ee *ExtractionError
	return errors.As(err, &ee)
}

// IsNoResult reports whether err is or wraps a NoResultError.
func IsNoResult(err error) bool {
	var ne *NoResultError
	return errors.As(err, &ne)
}

// IsTransactionError reports whether err is or wraps a TransactionError.
func IsTransactionError(err error) bool {
	var te *TransactionError
	return errors.As(err, &te)
}
