// Package query provides a small, store-agnostic filter expression language.
//
// Expressions are plain values: a Cond compares one field against a value,
// And / Or compose expressions. Store adapters translate them into their
// native syntax (bson for MongoDB, a WHERE clause for SQL) and the in-memory
// store evaluates them directly with Match.
//
//	filter := query.AllOf(
//	    query.In("type", []any{"fruit", "vegetable"}),
//	    query.Gte("price", 10),
//	)
package query

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/ncobase/relaypage/ecode"
)

// Op represents a comparison operator
type Op string

const (
	OpEq  Op = "eq"
	OpNe  Op = "ne"
	OpGt  Op = "gt"
	OpGte Op = "gte"
	OpLt  Op = "lt"
	OpLte Op = "lte"
	OpIn  Op = "in"
	OpNin Op = "nin"
)

// Valid reports whether op is a known operator
func (op Op) Valid() bool {
	switch op {
	case OpEq, OpNe, OpGt, OpGte, OpLt, OpLte, OpIn, OpNin:
		return true
	}
	return false
}

// Expr is a filter expression. It is implemented by Cond, And and Or only.
type Expr interface {
	expr()
	String() string
}

// Cond compares a single field against a value.
type Cond struct {
	Field string
	Op    Op
	Value any
}

// And matches when every child matches. An empty And matches everything.
type And []Expr

// Or matches when at least one child matches. An empty Or matches nothing.
type Or []Expr

func (Cond) expr() {}
func (And) expr()  {}
func (Or) expr()   {}

func (c Cond) String() string {
	return fmt.Sprintf("%s %s %v", c.Field, c.Op, c.Value)
}

func (a And) String() string { return join("AND", a) }

func (o Or) String() string { return join("OR", o) }

func join(sep string, exprs []Expr) string {
	parts := make([]string, 0, len(exprs))
	for _, e := range exprs {
		parts = append(parts, e.String())
	}
	return "(" + strings.Join(parts, " "+sep+" ") + ")"
}

// Eq builds field == value
func Eq(field string, value any) Cond { return Cond{Field: field, Op: OpEq, Value: value} }

// Ne builds field != value
func Ne(field string, value any) Cond { return Cond{Field: field, Op: OpNe, Value: value} }

// Gt builds field > value
func Gt(field string, value any) Cond { return Cond{Field: field, Op: OpGt, Value: value} }

// Gte builds field >= value
func Gte(field string, value any) Cond { return Cond{Field: field, Op: OpGte, Value: value} }

// Lt builds field < value
func Lt(field string, value any) Cond { return Cond{Field: field, Op: OpLt, Value: value} }

// Lte builds field <= value
func Lte(field string, value any) Cond { return Cond{Field: field, Op: OpLte, Value: value} }

// In builds field IN values
func In(field string, values any) Cond { return Cond{Field: field, Op: OpIn, Value: values} }

// Nin builds field NOT IN values
func Nin(field string, values any) Cond { return Cond{Field: field, Op: OpNin, Value: values} }

// AllOf ANDs the given expressions together. Nil expressions are dropped and
// nested Ands are flattened; a single remaining expression is returned as is.
// AllOf returns nil when nothing is left.
func AllOf(exprs ...Expr) Expr {
	var out And
	for _, e := range exprs {
		switch v := e.(type) {
		case nil:
		case And:
			for _, child := range v {
				if child != nil {
					out = append(out, child)
				}
			}
		default:
			out = append(out, v)
		}
	}
	switch len(out) {
	case 0:
		return nil
	case 1:
		return out[0]
	}
	return out
}

// AnyOf ORs the given expressions together, dropping nils.
func AnyOf(exprs ...Expr) Expr {
	var out Or
	for _, e := range exprs {
		if e != nil {
			out = append(out, e)
		}
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}

// Validate checks an expression tree for structural errors.
func Validate(e Expr) error {
	switch v := e.(type) {
	case nil:
		return nil
	case Cond:
		if v.Field == "" {
			return fmt.Errorf("query: %s", ecode.FieldIsRequired("field"))
		}
		if !v.Op.Valid() {
			return fmt.Errorf("query: %s %q", ecode.FieldIsInvalid("operator"), v.Op)
		}
		if v.Op == OpIn || v.Op == OpNin {
			if _, err := Values(v.Value); err != nil {
				return err
			}
		}
	case And:
		for _, child := range v {
			if err := Validate(child); err != nil {
				return err
			}
		}
	case Or:
		for _, child := range v {
			if err := Validate(child); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("query: unsupported expression %T", e)
	}
	return nil
}

// Values flattens the operand of an in / nin condition into a slice.
func Values(v any) ([]any, error) {
	if vs, ok := v.([]any); ok {
		return vs, nil
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, fmt.Errorf("query: %s, expected a slice, got %T", ecode.FieldIsInvalid("operand"), v)
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}
