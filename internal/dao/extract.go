package dao

import (
	"database/sql"
	"fmt"
	"reflect"
	"strconv"
	"time"
	"unsafe"
)

// Initializer is implemented by records that need set-up before columns are
// copied in, typically to give collection fields empty non-nil slices.
type Initializer interface {
	Init() error
}

// Extractor builds records from rows.
type Extractor struct {
	// Strict makes a scalar field whose column is missing from the row an
	// error instead of leaving the field untouched.
	Strict bool
}

var defaultExtractor = &Extractor{}

// Extract builds a new T from row with the default, lenient extractor.
func Extract[T any](row Row) (*T, error) {
	return ExtractWith[T](defaultExtractor, row)
}

// ExtractWith builds a new T from row using x.
func ExtractWith[T any](x *Extractor, row Row) (*T, error) {
	obj := new(T)
	if err := x.Extract(obj, row); err != nil {
		return nil, err
	}
	return obj, nil
}

// Extract populates the struct dst points to from row. If dst implements
// Initializer, Init runs first.
func (x *Extractor) Extract(dst any, row Row) error {
	pv := reflect.ValueOf(dst)
	if pv.Kind() != reflect.Ptr || pv.IsNil() {
		return &ExtractionError{Type: reflect.TypeOf(dst), Err: fmt.Errorf("destination must be a non-nil pointer")}
	}
	v := pv.Elem()
	t := v.Type()

	shape, err := ShapeOf(t)
	if err != nil {
		return &ExtractionError{Type: t, Err: err}
	}

	if in, ok := dst.(Initializer); ok {
		if err := in.Init(); err != nil {
			return &ExtractionError{Type: t, Err: fmt.Errorf("init: %w", err)}
		}
	}

	for _, f := range shape.Fields {
		if f.Kind == CollectionField {
			continue
		}

		val, ok := row.Value(f.Column)
		if !ok {
			if x.Strict {
				return &ExtractionError{Type: t, Field: f.Name, Column: f.Column, Err: ErrMissingColumn}
			}
			continue
		}
		if val == nil {
			continue
		}

		if err := assign(settable(v.Field(f.Index)), val); err != nil {
			return &ExtractionError{Type: t, Field: f.Name, Column: f.Column, Err: err}
		}
	}
	return nil
}

// settable returns a writable view of an addressable field, including
// unexported ones.
func settable(fv reflect.Value) reflect.Value {
	if fv.CanSet() {
		return fv
	}
	return reflect.NewAt(fv.Type(), unsafe.Pointer(fv.UnsafeAddr())).Elem()
}

func assign(dst reflect.Value, src any) error {
	if tm, ok := src.(time.Time); ok && derefType(dst.Type()) == timeOfDayType {
		src = TimeOfDayOf(tm)
	}

	if dst.Kind() == reflect.Ptr {
		elem := reflect.New(dst.Type().Elem())
		if err := assign(elem.Elem(), src); err != nil {
			return err
		}
		dst.Set(elem)
		return nil
	}

	sv := reflect.ValueOf(src)
	if sv.Type().AssignableTo(dst.Type()) {
		dst.Set(sv)
		return nil
	}

	if sc, ok := dst.Addr().Interface().(sql.Scanner); ok {
		return sc.Scan(src)
	}

	return convert(dst, sv)
}

func convert(dst, sv reflect.Value) error {
	sk, dk := sv.Kind(), dst.Kind()

	// Text protocols return numbers as bytes.
	if b, ok := sv.Interface().([]byte); ok {
		if dk == reflect.String {
			dst.SetString(string(b))
			return nil
		}
		sv, sk = reflect.ValueOf(string(b)), reflect.String
	}

	switch {
	case sk == reflect.String && dk == reflect.String:
		dst.SetString(sv.String())
		return nil
	case sk == reflect.String && isIntKind(dk):
		n, err := strconv.ParseInt(sv.String(), 10, 64)
		if err != nil {
			return fmt.Errorf("convert %q to %s: %w", sv.String(), dst.Type(), err)
		}
		return setInt(dst, n)
	case sk == reflect.String && isUintKind(dk):
		n, err := strconv.ParseUint(sv.String(), 10, 64)
		if err != nil {
			return fmt.Errorf("convert %q to %s: %w", sv.String(), dst.Type(), err)
		}
		return setUint(dst, n)
	case sk == reflect.String && isFloatKind(dk):
		f, err := strconv.ParseFloat(sv.String(), 64)
		if err != nil {
			return fmt.Errorf("convert %q to %s: %w", sv.String(), dst.Type(), err)
		}
		dst.SetFloat(f)
		return nil
	case isIntKind(sk) && isIntKind(dk):
		return setInt(dst, sv.Int())
	case isIntKind(sk) && isUintKind(dk):
		if sv.Int() < 0 {
			return fmt.Errorf("value %d overflows %s", sv.Int(), dst.Type())
		}
		return setUint(dst, uint64(sv.Int()))
	case isUintKind(sk) && isIntKind(dk):
		return setInt(dst, int64(sv.Uint()))
	case isUintKind(sk) && isUintKind(dk):
		return setUint(dst, sv.Uint())
	case (isIntKind(sk) || isUintKind(sk) || isFloatKind(sk)) && isFloatKind(dk):
		dst.Set(sv.Convert(dst.Type()))
		return nil
	case sk == reflect.Bool && dk == reflect.Bool:
		dst.SetBool(sv.Bool())
		return nil
	case isIntKind(sk) && dk == reflect.Bool:
		dst.SetBool(sv.Int() != 0)
		return nil
	case sv.Type().ConvertibleTo(dst.Type()) && sk == dk:
		dst.Set(sv.Convert(dst.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %s to %s", sv.Type(), dst.Type())
}

func setInt(dst reflect.Value, n int64) error {
	if dst.OverflowInt(n) {
		return fmt.Errorf("value %d overflows %s", n, dst.Type())
	}
	dst.SetInt(n)
	return nil
}

func setUint(dst reflect.Value, n uint64) error {
	if dst.OverflowUint(n) {
		return fmt.Errorf("value %d overflows %s", n, dst.Type())
	}
	dst.SetUint(n)
	return nil
}
