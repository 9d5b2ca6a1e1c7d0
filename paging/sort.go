package paging

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ncobase/relaypage/query"
)

// DefaultTieBreakField is the identity field used when none is configured.
const DefaultTieBreakField = "_id"

// Direction is a sort direction.
type Direction int

const (
	Ascending  Direction = 1
	Descending Direction = -1
)

// Valid reports whether d is Ascending or Descending.
func (d Direction) Valid() bool {
	return d == Ascending || d == Descending
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// orDefault maps every unrecognised value onto Ascending.
func (d Direction) orDefault() Direction {
	if d.Valid() {
		return d
	}
	return Ascending
}

// ParseDirection converts a loosely typed direction token. Numbers ±1,
// "1"/"-1" and "asc"/"desc"/"ascending"/"descending" are recognised;
// anything else falls back to Ascending instead of failing.
func ParseDirection(v any) Direction {
	switch val := v.(type) {
	case Direction:
		return val.orDefault()
	case int:
		return Direction(val).orDefault()
	case int32:
		return Direction(val).orDefault()
	case int64:
		if val == -1 {
			return Descending
		}
	case float32:
		return ParseDirection(float64(val))
	case float64:
		if val == -1 {
			return Descending
		}
	case string:
		s := strings.ToLower(strings.TrimSpace(val))
		switch s {
		case "desc", "descending":
			return Descending
		}
		if n, err := strconv.Atoi(s); err == nil {
			return ParseDirection(n)
		}
	}
	return Ascending
}

// SortSpec is the total order a connection is paginated over.
type SortSpec struct {
	Field         string
	Direction     Direction
	TieBreakField string
}

// unique reports whether the sort field is its own tie-break.
func (s SortSpec) unique() bool {
	return s.Field == s.TieBreakField
}

// signature identifies the order a cursor was issued under.
func (s SortSpec) signature() string {
	return fmt.Sprintf("%s:%d:%s", s.Field, s.Direction, s.TieBreakField)
}

func (s SortSpec) String() string {
	return fmt.Sprintf("%s %s, %s %s", s.Field, s.Direction, s.TieBreakField, s.Direction)
}

// orders returns the store sort keys for scanning in direction d.
func (s SortSpec) orders(d Direction) []query.Order {
	desc := d == Descending
	if s.unique() {
		return []query.Order{{Field: s.Field, Desc: desc}}
	}
	return []query.Order{
		{Field: s.Field, Desc: desc},
		{Field: s.TieBreakField, Desc: desc},
	}
}

// boundary returns the predicate selecting records strictly beyond pos when
// scanning in direction d.
func (s SortSpec) boundary(pos *Position, d Direction) query.Expr {
	if pos == nil {
		return nil
	}
	beyond := beyondKey(s.Field, pos.Key, d)
	if s.unique() {
		if beyond == nil {
			// Nothing lies past a null key scanning descending.
			return query.Or{}
		}
		return beyond
	}
	op := query.OpGt
	if d == Descending {
		op = query.OpLt
	}
	return query.AnyOf(
		beyond,
		query.And{
			query.Eq(s.Field, pos.Key),
			query.Cond{Field: s.TieBreakField, Op: op, Value: pos.TieBreak},
		},
	)
}

// beyondKey selects values strictly past key in direction d. Null, which
// also stands for a missing field, orders before every other value.
func beyondKey(field string, key any, d Direction) query.Expr {
	if d == Descending {
		if key == nil {
			return nil
		}
		return query.Or{query.Lt(field, key), query.Eq(field, nil)}
	}
	if key == nil {
		return query.Ne(field, nil)
	}
	return query.Gt(field, key)
}
