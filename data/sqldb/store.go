package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ncobase/relaypage/paging"
	"github.com/ncobase/relaypage/query"
)

// Store pages over one table, yielding rows as documents.
type Store struct {
	dialect *Dialect
	table   string
	db      func(ctx context.Context) *sql.DB
}

// NewStore creates a store over table, which must already be quoted, e.g.
// with Dialect.Table.
func NewStore(db *sql.DB, dialect *Dialect, table string) *Store {
	return &Store{
		dialect: dialect,
		table:   table,
		db:      func(context.Context) *sql.DB { return db },
	}
}

func newManagedStore(m *Manager, dialect *Dialect, table string) *Store {
	return &Store{dialect: dialect, table: table, db: m.Slave}
}

// Find implements paging.Store.
func (s *Store) Find(ctx context.Context, q query.Find) ([]map[string]any, error) {
	stmt, args, err := s.dialect.Build(s.table, q)
	if err != nil {
		return nil, err
	}
	rows, err := s.db(ctx).QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: find %s: %w", s.dialect.Name, s.table, err)
	}
	defer rows.Close()

	docs, err := ScanMap(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.dialect.Name, err)
	}
	return docs, nil
}

// Count implements paging.Store.
func (s *Store) Count(ctx context.Context, filter query.Expr) (int64, error) {
	stmt, args, err := s.dialect.BuildCount(s.table, filter)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := s.db(ctx).QueryRowContext(ctx, stmt, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: count %s: %w", s.dialect.Name, s.table, err)
	}
	return n, nil
}

// FieldValue implements paging.FieldValuer, reading the column a field
// maps to.
func (s *Store) FieldValue(doc map[string]any, field string) (any, error) {
	v, ok := doc[ColumnName(field)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", paging.ErrFieldNotFound, field)
	}
	return v, nil
}
