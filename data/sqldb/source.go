package sqldb

import (
	"context"
	"fmt"

	"github.com/ncobase/relaypage/data"
	"github.com/ncobase/relaypage/data/config"
)

// Source serves the tables of one database as collections.
type Source struct {
	dialect *Dialect
	manager *Manager
	schema  string
}

// Open connects the configured database with dialect.
func Open(ctx context.Context, cfg *config.Config, dialect *Dialect) (*Source, error) {
	if cfg == nil || cfg.Database == nil {
		return nil, fmt.Errorf("%s: database configuration is required", dialect.Name)
	}
	manager, err := NewManager(ctx, cfg.Database, dialect)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dialect.Name, err)
	}
	return NewSource(manager, dialect, cfg.Database.Name), nil
}

// NewSource creates a source over an open manager. schema may be empty.
func NewSource(manager *Manager, dialect *Dialect, schema string) *Source {
	return &Source{dialect: dialect, manager: manager, schema: schema}
}

// Collection implements data.Source. The table must exist.
func (s *Source) Collection(ctx context.Context, name string) (data.Collection, error) {
	if err := data.ValidateCollectionName(name); err != nil {
		return nil, err
	}

	stmt, args := s.dialect.TableExists(s.schema, name)
	var n int
	if err := s.manager.Master().QueryRowContext(ctx, stmt, args...).Scan(&n); err != nil {
		return nil, fmt.Errorf("%s: lookup %s: %w", s.dialect.Name, name, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: %s", data.ErrCollectionNotFound, name)
	}
	return newManagedStore(s.manager, s.dialect, s.dialect.Table(s.schema, name)), nil
}

// Ping implements data.Source.
func (s *Source) Ping(ctx context.Context) error {
	if err := s.manager.Health(ctx); err != nil {
		return fmt.Errorf("%s: ping failed: %w", s.dialect.Name, err)
	}
	return nil
}

// Close implements data.Source.
func (s *Source) Close(ctx context.Context) error {
	if err := s.manager.Close(); err != nil {
		return fmt.Errorf("%s: failed to close: %w", s.dialect.Name, err)
	}
	return nil
}
