// Package sqldb pages over SQL tables through database/sql.
//
// Query expressions are rendered into parameterised WHERE clauses, sort keys
// into ORDER BY clauses with nulls ordered before every value, and rows are
// scanned into documents keyed by column name. Dotted fields map onto
// columns by replacing dots with underscores, so "stats.size" reads the
// column stats_size.
//
// The postgres, mysql and sqlite drivers register themselves on top of this
// package; import them rather than this package to open a source.
package sqldb

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Dialect holds what differs between SQL databases.
type Dialect struct {
	// Name is the store driver name.
	Name string
	// DriverName is the database/sql driver name.
	DriverName string
	// Placeholder returns the bind parameter for the n-th argument, from 1.
	Placeholder func(n int) string
	// QuoteChar quotes identifiers.
	QuoteChar byte
	// NullsClause appends NULLS FIRST/LAST to ordering terms. Databases
	// that already sort nulls lowest leave it false.
	NullsClause bool
	// TableExists returns a query yielding a count of tables named table.
	TableExists func(schema, table string) (string, []any)
}

var (
	// Postgres orders nulls as the largest value, so the ordering is
	// spelled out.
	Postgres = &Dialect{
		Name:        "postgres",
		DriverName:  "pgx",
		Placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
		QuoteChar:   '"',
		NullsClause: true,
		TableExists: func(schema, table string) (string, []any) {
			if schema == "" {
				return "SELECT count(*) FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = $1", []any{table}
			}
			return "SELECT count(*) FROM information_schema.tables WHERE table_schema = $1 AND table_name = $2", []any{schema, table}
		},
	}

	MySQL = &Dialect{
		Name:        "mysql",
		DriverName:  "mysql",
		Placeholder: func(int) string { return "?" },
		QuoteChar:   '`',
		TableExists: func(schema, table string) (string, []any) {
			if schema == "" {
				return "SELECT count(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?", []any{table}
			}
			return "SELECT count(*) FROM information_schema.tables WHERE table_schema = ? AND table_name = ?", []any{schema, table}
		},
	}

	SQLite = &Dialect{
		Name:        "sqlite",
		DriverName:  "sqlite3",
		Placeholder: func(int) string { return "?" },
		QuoteChar:   '"',
		TableExists: func(schema, table string) (string, []any) {
			if schema == "" {
				schema = "main"
			}
			return "SELECT count(*) FROM " + quote('"', schema) + ".sqlite_master WHERE type IN ('table', 'view') AND name = ?", []any{table}
		},
	}
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Quote quotes a single identifier.
func (d *Dialect) Quote(ident string) string {
	return quote(d.QuoteChar, ident)
}

func quote(c byte, ident string) string {
	q := string(c)
	return q + strings.ReplaceAll(ident, q, q+q) + q
}

// Column maps a field path to its quoted column.
func (d *Dialect) Column(field string) (string, error) {
	column := ColumnName(field)
	if !identifier.MatchString(column) {
		return "", fmt.Errorf("sqldb: field %q is not a column name", field)
	}
	return d.Quote(column), nil
}

// Table returns the quoted, optionally schema-qualified table name.
func (d *Dialect) Table(schema, table string) string {
	if schema == "" {
		return d.Quote(table)
	}
	return d.Quote(schema) + "." + d.Quote(table)
}

// ColumnName maps a field path to a column name: a.b becomes a_b.
func ColumnName(field string) string {
	return strings.ReplaceAll(field, ".", "_")
}
