package binding

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ncobase/relaypage/paging"
	"github.com/ncobase/relaypage/query"
)

// ParseWhere parses filter terms into one expression, ANDing the terms.
//
// A term is field:value for equality, or field:op:value with op one of
// eq, ne, gt, gte, lt, lte, in and nin. The operands of in and nin are
// separated by commas. Values are typed: null, true and false, integers
// and floats are recognised, and a value in double quotes is always a
// string.
func ParseWhere(terms []string) (query.Expr, error) {
	exprs := make([]query.Expr, 0, len(terms))
	for _, term := range terms {
		if strings.TrimSpace(term) == "" {
			continue
		}
		e, err := parseTerm(term)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return query.AllOf(exprs...), nil
}

func parseTerm(term string) (query.Expr, error) {
	field, rest, ok := strings.Cut(term, ":")
	if !ok || field == "" {
		return nil, fmt.Errorf("%w: where term %q is not field:value", paging.ErrInvalidArgument, term)
	}

	op := query.OpEq
	if name, value, ok := strings.Cut(rest, ":"); ok && query.Op(name).Valid() {
		op, rest = query.Op(name), value
	}

	var value any
	if op == query.OpIn || op == query.OpNin {
		parts := strings.Split(rest, ",")
		values := make([]any, len(parts))
		for i, p := range parts {
			values[i] = parseValue(p)
		}
		value = values
	} else {
		value = parseValue(rest)
	}
	return query.Cond{Field: field, Op: op, Value: value}, nil
}

func parseValue(s string) any {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	switch s {
	case "null":
		return nil
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return s
}
