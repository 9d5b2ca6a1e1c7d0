// Package mongodb provides a MongoDB store driver for relaypage/data.
//
// This driver uses mongo-driver (go.mongodb.org/mongo-driver) as the underlying client.
// It registers itself automatically when imported:
//
//	import _ "github.com/ncobase/relaypage/data/mongodb"
//
// Filters and sort keys are translated to bson, so paging runs entirely on
// the server. Cursors carry ObjectID, Decimal128 and datetime values
// natively. Reads go to replicas when slaves are configured:
//
//	data:
//	  driver: mongodb
//	  mongodb:
//	    database: shop
//	    master:
//	      uri: mongodb://localhost:27017
//	    slaves:
//	      - uri: mongodb://replica:27017
//	        weight: 2
//	    strategy: weight
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/ncobase/relaypage/data"
	"github.com/ncobase/relaypage/data/config"
)

// driver implements data.StoreDriver for MongoDB.
type driver struct{}

// Name returns the driver identifier used in configuration files.
func (d *driver) Name() string {
	return "mongodb"
}

// Connect establishes a MongoDB connection using the provided configuration.
func (d *driver) Connect(ctx context.Context, cfg *config.Config) (data.Source, error) {
	if cfg == nil || cfg.MongoDB == nil {
		return nil, errors.New("mongodb: configuration is required")
	}

	mongoCfg := cfg.MongoDB
	if mongoCfg.Master == nil {
		return nil, errors.New("mongodb: master configuration is required")
	}

	if mongoCfg.Master.URI == "" {
		return nil, errors.New("mongodb: master URI is empty")
	}

	manager, err := NewManager(ctx, mongoCfg)
	if err != nil {
		return nil, fmt.Errorf("mongodb: failed to create manager: %w", err)
	}

	return &source{manager: manager}, nil
}

// source implements data.Source over a Manager.
type source struct {
	manager *Manager
}

func (s *source) Collection(ctx context.Context, name string) (data.Collection, error) {
	if err := data.ValidateCollectionName(name); err != nil {
		return nil, err
	}
	return newManagedStore[data.Document](s.manager, name), nil
}

func (s *source) Ping(ctx context.Context) error {
	if err := s.manager.Health(ctx); err != nil {
		return fmt.Errorf("mongodb: ping failed: %w", err)
	}
	return nil
}

func (s *source) Close(ctx context.Context) error {
	if err := s.manager.Close(ctx); err != nil {
		return fmt.Errorf("mongodb: failed to disconnect: %w", err)
	}
	return nil
}

// init registers the MongoDB driver with the data package.
// This function is called automatically when the package is imported.
func init() {
	data.RegisterStoreDriver(&driver{})
}
