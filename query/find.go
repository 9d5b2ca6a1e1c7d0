package query

import "fmt"

// Order is one sort key of a Find.
type Order struct {
	Field string
	Desc  bool
}

func (o Order) String() string {
	if o.Desc {
		return o.Field + " desc"
	}
	return o.Field + " asc"
}

// Find describes a single bounded, sorted read against a store.
type Find struct {
	// Filter is the caller's base filter.
	Filter Expr
	// Boundary restricts results to one side of a cursor position.
	Boundary Expr
	// Sort lists the sort keys in priority order.
	Sort []Order
	// Limit caps the number of records; 0 means no limit.
	Limit int
}

// Where returns the effective predicate: Filter AND Boundary.
func (f Find) Where() Expr {
	return AllOf(f.Filter, f.Boundary)
}

func (f Find) String() string {
	where := "true"
	if w := f.Where(); w != nil {
		where = w.String()
	}
	return fmt.Sprintf("where %s sort %v limit %d", where, f.Sort, f.Limit)
}
