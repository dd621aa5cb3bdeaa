package dao

import (
	"database/sql"
	"reflect"

	"github.com/cockroachdb/apd/v3"
)

// SQLType is the storage type tag a Go type binds as.
type SQLType int

const (
	Integer SQLType = iota + 1
	Decimal
	Double
	Varchar
	// Other covers types without a first-class column type (TimeOfDay).
	// Values are handed to the driver as-is.
	Other
)

func (t SQLType) String() string {
	switch t {
	case Integer:
		return "INTEGER"
	case Decimal:
		return "DECIMAL"
	case Double:
		return "DOUBLE"
	case Varchar:
		return "VARCHAR"
	case Other:
		return "OTHER"
	default:
		return "UNKNOWN"
	}
}

var (
	decimalType   = reflect.TypeOf(apd.Decimal{})
	timeOfDayType = reflect.TypeOf(TimeOfDay{})
)

// TypeOf returns the reflect.Type of T. It is the usual way to spell a
// declared type for Params:
//
//	params.Add(project.Notes, dao.TypeOf[string]())
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// StorageTypeOf maps a declared Go type to its storage type tag. Pointer
// types map through their element type. The table is closed: anything not
// listed is an UnsupportedTypeError.
//
//	int, int8..int64, uint..uint64 -> Integer
//	apd.Decimal                    -> Decimal
//	float32, float64               -> Double
//	string                         -> Varchar
//	TimeOfDay                      -> Other
func StorageTypeOf(declared reflect.Type) (SQLType, error) {
	if declared == nil {
		return 0, &UnsupportedTypeError{Type: declared}
	}
	t := derefType(declared)

	switch t {
	case decimalType:
		return Decimal, nil
	case timeOfDayType:
		return Other, nil
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Integer, nil
	case reflect.Float32, reflect.Float64:
		return Double, nil
	case reflect.String:
		return Varchar, nil
	}
	return 0, &UnsupportedTypeError{Type: declared}
}

// typedNull returns the driver argument used for a NULL of the given tag.
func typedNull(t SQLType) any {
	switch t {
	case Integer:
		return sql.NullInt64{}
	case Decimal:
		return apd.NullDecimal{}
	case Double:
		return sql.NullFloat64{}
	case Varchar:
		return sql.NullString{}
	default:
		return nil
	}
}

func derefType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUintKind(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isFloatKind(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}
