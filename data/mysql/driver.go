// Package mysql provides a MySQL store driver for relaypage/data.
//
// This driver uses go-sql-driver/mysql (github.com/go-sql-driver/mysql) as the
// underlying database/sql driver. It registers itself automatically when imported:
//
//	import _ "github.com/ncobase/relaypage/data/mysql"
//
// Add parseTime=true to the DSN so DATETIME columns scan as time.Time and
// round-trip through cursors:
//
//	data:
//	  driver: mysql
//	  database:
//	    master:
//	      source: user:pass@tcp(localhost:3306)/shop?parseTime=true
package mysql

import (
	"context"
	"errors"

	"github.com/ncobase/relaypage/data"
	"github.com/ncobase/relaypage/data/config"
	"github.com/ncobase/relaypage/data/sqldb"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
)

// driver implements data.StoreDriver for MySQL.
type driver struct{}

// Name returns the driver identifier used in configuration files.
func (d *driver) Name() string {
	return "mysql"
}

// Connect opens the master and slave nodes of cfg.Database.
func (d *driver) Connect(ctx context.Context, cfg *config.Config) (data.Source, error) {
	if cfg == nil || cfg.Database == nil || cfg.Database.Master == nil {
		return nil, errors.New("mysql: master configuration is required")
	}
	if cfg.Database.Master.Source == "" {
		return nil, errors.New("mysql: connection source is empty")
	}
	source, err := sqldb.Open(ctx, cfg, sqldb.MySQL)
	if err != nil {
		return nil, err
	}
	return source, nil
}

// init registers the MySQL driver with the data package.
// This function is called automatically when the package is imported.
func init() {
	data.RegisterStoreDriver(&driver{})
}
