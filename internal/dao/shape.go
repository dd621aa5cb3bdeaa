package dao

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// FieldKind separates fields that map to a column from child collections.
type FieldKind int

const (
	ScalarField FieldKind = iota
	// CollectionField is a slice of structs filled by the caller after
	// extraction. Extraction never writes to it.
	CollectionField
)

// Field is one settable field of a record type.
type Field struct {
	Name   string
	Column string
	Index  int
	Type   reflect.Type
	Kind   FieldKind
}

// Shape is the ordered field list of a record type.
type Shape struct {
	Type   reflect.Type
	Fields []Field
}

var shapeCache sync.Map // map[reflect.Type]*Shape

// ShapeOf returns the shape of struct type t, computing it on first use.
// Fields tagged `db:"-"` are skipped.
func ShapeOf(t reflect.Type) (*Shape, error) {
	if s, ok := shapeCache.Load(t); ok {
		return s.(*Shape), nil
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%v is not a struct", t)
	}

	shape := &Shape{Type: t, Fields: make([]Field, 0, t.NumField())}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag := sf.Tag.Get("db")
		if tag == "-" {
			continue
		}
		column, _, _ := strings.Cut(tag, ",")
		if column == "" {
			column = ColumnName(fieldIdentifier(sf.Name))
		}

		kind := ScalarField
		if isCollection(sf.Type) {
			kind = CollectionField
		}

		shape.Fields = append(shape.Fields, Field{
			Name:   sf.Name,
			Column: normalizeColumn(column),
			Index:  i,
			Type:   sf.Type,
			Kind:   kind,
		})
	}

	actual, _ := shapeCache.LoadOrStore(t, shape)
	return actual.(*Shape), nil
}

// ShapeFor is ShapeOf for a type parameter.
func ShapeFor[T any]() (*Shape, error) {
	return ShapeOf(TypeOf[T]())
}

// Columns returns the column names of the scalar fields in declaration order.
func (s *Shape) Columns() []string {
	cols := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		if f.Kind == ScalarField {
			cols = append(cols, f.Column)
		}
	}
	return cols
}

func isCollection(t reflect.Type) bool {
	if t.Kind() != reflect.Slice {
		return false
	}
	return derefType(t.Elem()).Kind() == reflect.Struct
}
