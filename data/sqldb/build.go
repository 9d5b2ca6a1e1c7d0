package sqldb

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ncobase/relaypage/query"
)

const (
	sqlTrue  = "1 = 1"
	sqlFalse = "1 = 0"
)

var comparisons = map[query.Op]string{
	query.OpEq:  "=",
	query.OpNe:  "<>",
	query.OpGt:  ">",
	query.OpGte: ">=",
	query.OpLt:  "<",
	query.OpLte: "<=",
}

// builder accumulates SQL text and its bind arguments.
type builder struct {
	d    *Dialect
	sb   strings.Builder
	args []any
}

func (b *builder) bind(v any) string {
	b.args = append(b.args, v)
	return b.d.Placeholder(len(b.args))
}

// Build renders a Find against table into a SELECT statement.
func (d *Dialect) Build(table string, q query.Find) (string, []any, error) {
	b := &builder{d: d}
	b.sb.WriteString("SELECT * FROM ")
	b.sb.WriteString(table)
	if err := b.where(q.Where()); err != nil {
		return "", nil, err
	}
	if len(q.Sort) > 0 {
		b.sb.WriteString(" ORDER BY ")
		for i, o := range q.Sort {
			if i > 0 {
				b.sb.WriteString(", ")
			}
			term, err := d.order(o)
			if err != nil {
				return "", nil, err
			}
			b.sb.WriteString(term)
		}
	}
	if q.Limit > 0 {
		b.sb.WriteString(" LIMIT ")
		b.sb.WriteString(strconv.Itoa(q.Limit))
	}
	return b.sb.String(), b.args, nil
}

// BuildCount renders a count of the rows of table matching filter.
func (d *Dialect) BuildCount(table string, filter query.Expr) (string, []any, error) {
	b := &builder{d: d}
	b.sb.WriteString("SELECT count(*) FROM ")
	b.sb.WriteString(table)
	if err := b.where(filter); err != nil {
		return "", nil, err
	}
	return b.sb.String(), b.args, nil
}

// Where renders a filter as a boolean SQL expression with its arguments.
// A nil filter renders as a tautology.
func (d *Dialect) Where(filter query.Expr) (string, []any, error) {
	b := &builder{d: d}
	sql, err := b.expr(filter)
	if err != nil {
		return "", nil, err
	}
	return sql, b.args, nil
}

func (b *builder) where(e query.Expr) error {
	if e == nil {
		return nil
	}
	sql, err := b.expr(e)
	if err != nil {
		return err
	}
	b.sb.WriteString(" WHERE ")
	b.sb.WriteString(sql)
	return nil
}

func (d *Dialect) order(o query.Order) (string, error) {
	column, err := d.Column(o.Field)
	if err != nil {
		return "", err
	}
	switch {
	case o.Desc && d.NullsClause:
		return column + " DESC NULLS LAST", nil
	case o.Desc:
		return column + " DESC", nil
	case d.NullsClause:
		return column + " ASC NULLS FIRST", nil
	}
	return column + " ASC", nil
}

func (b *builder) expr(e query.Expr) (string, error) {
	switch v := e.(type) {
	case nil:
		return sqlTrue, nil
	case query.Cond:
		return b.cond(v)
	case query.And:
		return b.join(v, " AND ", sqlTrue)
	case query.Or:
		return b.join(v, " OR ", sqlFalse)
	}
	return "", fmt.Errorf("sqldb: unsupported expression %T", e)
}

func (b *builder) join(exprs []query.Expr, sep, empty string) (string, error) {
	if len(exprs) == 0 {
		return empty, nil
	}
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		sql, err := b.expr(e)
		if err != nil {
			return "", err
		}
		parts[i] = sql
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return "(" + strings.Join(parts, sep) + ")", nil
}

// cond renders a condition so that NULL behaves as the lowest value and
// as unequal to everything but NULL.
func (b *builder) cond(c query.Cond) (string, error) {
	column, err := b.d.Column(c.Field)
	if err != nil {
		return "", err
	}

	switch c.Op {
	case query.OpIn, query.OpNin:
		return b.membership(column, c)
	}
	op, ok := comparisons[c.Op]
	if !ok {
		return "", fmt.Errorf("sqldb: unsupported operator %q", c.Op)
	}

	if c.Value == nil {
		switch c.Op {
		case query.OpEq, query.OpLte:
			return column + " IS NULL", nil
		case query.OpNe, query.OpGt:
			return column + " IS NOT NULL", nil
		case query.OpGte:
			return sqlTrue, nil
		}
		return sqlFalse, nil
	}
	if c.Op == query.OpNe {
		return "(" + column + " <> " + b.bind(c.Value) + " OR " + column + " IS NULL)", nil
	}
	return column + " " + op + " " + b.bind(c.Value), nil
}

func (b *builder) membership(column string, c query.Cond) (string, error) {
	values, err := query.Values(c.Value)
	if err != nil {
		return "", err
	}
	var (
		placeholders []string
		null         bool
	)
	for _, v := range values {
		if v == nil {
			null = true
			continue
		}
		placeholders = append(placeholders, b.bind(v))
	}
	list := "(" + strings.Join(placeholders, ", ") + ")"

	if c.Op == query.OpIn {
		switch {
		case len(placeholders) == 0 && null:
			return column + " IS NULL", nil
		case len(placeholders) == 0:
			return sqlFalse, nil
		case null:
			return "(" + column + " IN " + list + " OR " + column + " IS NULL)", nil
		}
		return column + " IN " + list, nil
	}

	switch {
	case len(placeholders) == 0 && null:
		return column + " IS NOT NULL", nil
	case len(placeholders) == 0:
		return sqlTrue, nil
	case null:
		return column + " NOT IN " + list, nil
	}
	return "(" + column + " NOT IN " + list + " OR " + column + " IS NULL)", nil
}
