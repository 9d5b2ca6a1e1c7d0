// Package sqlite provides a SQLite store driver for relaypage/data.
//
// This driver uses mattn/go-sqlite3 (github.com/mattn/go-sqlite3) as the underlying
// database/sql driver with CGO. It registers itself automatically when imported:
//
//	import _ "github.com/ncobase/relaypage/data/sqlite"
//
// Example connection strings:
//
//	"file:shop.db?mode=ro"        // URI format with options
//	"shop.db"                     // Simple file path
//	"file::memory:?cache=shared"  // Shared in-memory database
package sqlite

import (
	"context"
	"errors"

	"github.com/ncobase/relaypage/data"
	"github.com/ncobase/relaypage/data/config"
	"github.com/ncobase/relaypage/data/sqldb"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// driver implements data.StoreDriver for SQLite.
type driver struct{}

// Name returns the driver identifier used in configuration files.
func (d *driver) Name() string {
	return "sqlite"
}

// Connect opens the master and slave nodes of cfg.Database.
func (d *driver) Connect(ctx context.Context, cfg *config.Config) (data.Source, error) {
	if cfg == nil || cfg.Database == nil || cfg.Database.Master == nil {
		return nil, errors.New("sqlite: master configuration is required")
	}
	if cfg.Database.Master.Source == "" {
		return nil, errors.New("sqlite: connection source is empty")
	}
	source, err := sqldb.Open(ctx, cfg, sqldb.SQLite)
	if err != nil {
		return nil, err
	}
	return source, nil
}

// init registers the SQLite driver with the data package.
// This function is called automatically when the package is imported.
func init() {
	data.RegisterStoreDriver(&driver{})
}
