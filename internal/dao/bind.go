package dao

import (
	"fmt"
	"math"
	"reflect"

	"github.com/cockroachdb/apd/v3"
)

// Params collects positional statement parameters. Positions are 1-based to
// line up with the placeholders in the statement text.
type Params struct {
	args []any
	set  []bool
	err  error
}

// NewParams returns an empty parameter list.
func NewParams() *Params {
	return &Params{}
}

// Set binds value at position using the storage type of declared. A nil value
// (untyped nil or a nil pointer) binds a typed NULL. A non-nil value must
// match declared: integers for Integer, floats for Double, strings for
// Varchar, apd.Decimal for Decimal and the exact declared type for Other.
func (p *Params) Set(position int, value any, declared reflect.Type) error {
	sqlType, err := StorageTypeOf(declared)
	if err != nil {
		return err
	}
	if position < 1 {
		return fmt.Errorf("bind parameter %d: position must be >= 1", position)
	}

	arg, err := bindValue(value, declared, sqlType)
	if err != nil {
		return fmt.Errorf("bind parameter %d: %w", position, err)
	}

	for len(p.args) < position {
		p.args = append(p.args, nil)
		p.set = append(p.set, false)
	}
	p.args[position-1] = arg
	p.set[position-1] = true
	return nil
}

// Add binds value at the next free position. It returns p so a statement's
// parameters can be listed in one chain; the first failure is kept and
// reported by Args.
func (p *Params) Add(value any, declared reflect.Type) *Params {
	if p.err != nil {
		return p
	}
	p.err = p.Set(len(p.args)+1, value, declared)
	return p
}

// Len returns the highest bound position.
func (p *Params) Len() int {
	return len(p.args)
}

// Args returns the bound arguments in position order.
func (p *Params) Args() ([]any, error) {
	if p == nil {
		return nil, nil
	}
	if p.err != nil {
		return nil, p.err
	}
	for i, ok := range p.set {
		if !ok {
			return nil, fmt.Errorf("bind parameter %d: not set", i+1)
		}
	}
	out := make([]any, len(p.args))
	copy(out, p.args)
	return out, nil
}

func bindValue(value any, declared reflect.Type, sqlType SQLType) (any, error) {
	rv := reflect.ValueOf(value)
	for rv.IsValid() && rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return typedNull(sqlType), nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return typedNull(sqlType), nil
	}

	mismatch := func() error {
		return fmt.Errorf("cannot bind %s as %s (declared %v)", rv.Type(), sqlType, declared)
	}

	switch sqlType {
	case Integer:
		switch {
		case isIntKind(rv.Kind()):
			return rv.Int(), nil
		case isUintKind(rv.Kind()):
			u := rv.Uint()
			if u > math.MaxInt64 {
				return nil, fmt.Errorf("value %d overflows INTEGER", u)
			}
			return int64(u), nil
		}
	case Decimal:
		if rv.Type() == decimalType {
			d := rv.Interface().(apd.Decimal)
			return d, nil
		}
	case Double:
		if isFloatKind(rv.Kind()) {
			return rv.Float(), nil
		}
	case Varchar:
		if rv.Kind() == reflect.String {
			return rv.String(), nil
		}
	case Other:
		if rv.Type() == derefType(declared) {
			return rv.Interface(), nil
		}
	}
	return nil, mismatch()
}
