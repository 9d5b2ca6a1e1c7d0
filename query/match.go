package query

import (
	"errors"
	"fmt"
)

// Getter resolves a field of the record being matched. It returns
// ok == false when the record has no such field.
type Getter func(field string) (value any, ok bool, err error)

// Match evaluates e against a single record. A nil expression matches
// everything. Missing fields behave like null, the way document stores
// treat them.
func Match(e Expr, get Getter) (bool, error) {
	switch v := e.(type) {
	case nil:
		return true, nil
	case Cond:
		return matchCond(v, get)
	case And:
		for _, child := range v {
			ok, err := Match(child, get)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	case Or:
		for _, child := range v {
			ok, err := Match(child, get)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	}
	return false, fmt.Errorf("query: unsupported expression %T", e)
}

func matchCond(c Cond, get Getter) (bool, error) {
	if get == nil {
		return false, errors.New("query: nil getter")
	}
	value, found, err := get(c.Field)
	if err != nil {
		return false, err
	}
	if !found {
		value = nil
	}

	switch c.Op {
	case OpEq:
		return Equal(value, c.Value), nil
	case OpNe:
		return !Equal(value, c.Value), nil
	case OpGt:
		return sameKind(value, c.Value) && Compare(value, c.Value) > 0, nil
	case OpGte:
		return sameKind(value, c.Value) && Compare(value, c.Value) >= 0, nil
	case OpLt:
		return sameKind(value, c.Value) && Compare(value, c.Value) < 0, nil
	case OpLte:
		return sameKind(value, c.Value) && Compare(value, c.Value) <= 0, nil
	case OpIn, OpNin:
		candidates, err := Values(c.Value)
		if err != nil {
			return false, err
		}
		in := false
		for _, candidate := range candidates {
			if Equal(value, candidate) {
				in = true
				break
			}
		}
		return in == (c.Op == OpIn), nil
	}
	return false, fmt.Errorf("query: unsupported operator %q", c.Op)
}

// Range operators only match values of the same kind, so `price > 5` never
// matches a string or a missing price. A null bound compares against the
// whole order, which keeps cursors positioned on missing keys usable.
func sameKind(value, bound any) bool {
	bound = Normalize(bound)
	return bound == nil || rank(Normalize(value)) == rank(bound)
}
