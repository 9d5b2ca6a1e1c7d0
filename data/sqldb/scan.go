package sqldb

import (
	"database/sql"
	"fmt"
	"strings"
)

// ScanMap reads every remaining row into a map keyed by column name.
// Text returned as bytes is converted to string; binary columns stay []byte
// so keys such as BINARY(16) identifiers survive a cursor round trip.
func ScanMap(rows *sql.Rows) ([]map[string]any, error) {
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("sqldb: columns: %w", err)
	}
	columns := make([]string, len(types))
	binary := make([]bool, len(types))
	for i, ct := range types {
		columns[i] = ct.Name()
		binary[i] = binaryType(ct.DatabaseTypeName())
	}

	var out []map[string]any
	values := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("sqldb: scan: %w", err)
		}
		row := make(map[string]any, len(columns))
		for i, column := range columns {
			if b, ok := values[i].([]byte); ok && !binary[i] {
				row[column] = string(b)
			} else {
				row[column] = values[i]
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqldb: rows: %w", err)
	}
	return out, nil
}

// binaryType reports whether a driver column type holds raw bytes.
func binaryType(name string) bool {
	switch name = strings.ToUpper(name); {
	case name == "BYTEA":
		return true
	case strings.HasSuffix(name, "BLOB"), strings.HasSuffix(name, "BINARY"):
		// BLOB, TINYBLOB, LONGBLOB, BINARY, VARBINARY
		return true
	}
	return false
}
