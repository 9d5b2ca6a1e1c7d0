package data

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"sync"

	"github.com/ncobase/relaypage/data/config"
	"github.com/ncobase/relaypage/paging"
)

// Document is the record type every store driver yields.
type Document = map[string]any

// Collection is a paginatable set of documents. Implementations may also
// implement paging.FieldValuer[Document] and paging.CodecProvider.
type Collection interface {
	paging.Store[Document]
}

// Source is an open connection to a backend, handing out collections.
type Source interface {
	// Collection returns the named collection. It fails with
	// ErrCollectionNotFound when the backend knows the collection does not
	// exist.
	Collection(ctx context.Context, name string) (Collection, error)

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases the connection.
	Close(ctx context.Context) error
}

// StoreDriver opens sources for one kind of backend.
// Following the design pattern of database/sql, drivers register themselves
// using init() functions and are looked up at runtime based on configuration.
type StoreDriver interface {
	// Name returns the driver identifier (e.g., "mongodb", "postgres", "memory")
	Name() string

	// Connect opens a source using the data configuration.
	Connect(ctx context.Context, cfg *config.Config) (Source, error)
}

var (
	// ErrCollectionNotFound reports a collection the backend does not have.
	ErrCollectionNotFound = errors.New("data: collection not found")
	// ErrInvalidCollection reports a collection name that is not an identifier.
	ErrInvalidCollection = errors.New("data: invalid collection name")
)

var collectionName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,63}$`)

// ValidateCollectionName checks that name can be used as a table, collection
// or file name as is.
func ValidateCollectionName(name string) error {
	if !collectionName.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidCollection, name)
	}
	return nil
}

var (
	storeDrivers   = make(map[string]StoreDriver)
	storeDriversMu sync.RWMutex
)

// RegisterStoreDriver makes a store driver available by the provided name.
// It is intended to be called from the init function in driver packages.
//
// Example usage in a driver package:
//
//	func init() {
//	    data.RegisterStoreDriver(&driver{})
//	}
//
// If RegisterStoreDriver is called twice with the same name or if driver is nil,
// it panics.
func RegisterStoreDriver(driver StoreDriver) {
	storeDriversMu.Lock()
	defer storeDriversMu.Unlock()

	if driver == nil {
		panic("data: RegisterStoreDriver driver is nil")
	}

	name := driver.Name()
	if name == "" {
		panic("data: RegisterStoreDriver driver name is empty")
	}

	if _, exists := storeDrivers[name]; exists {
		panic(fmt.Sprintf("data: RegisterStoreDriver called twice for driver %s", name))
	}

	storeDrivers[name] = driver
}

// GetStoreDriver retrieves a registered store driver by name.
// It returns an error with helpful instructions if the driver is not found.
func GetStoreDriver(name string) (StoreDriver, error) {
	storeDriversMu.RLock()
	defer storeDriversMu.RUnlock()

	driver, ok := storeDrivers[name]
	if !ok {
		return nil, fmt.Errorf(
			"data: store driver %q not registered\n\n"+
				"Did you forget to import the driver package?\n"+
				"Add to your imports:\n"+
				"    _ \"github.com/ncobase/relaypage/data/%s\"\n\n"+
				"Available drivers: %v",
			name, name, listStoreDriversLocked(),
		)
	}

	return driver, nil
}

// ListStoreDrivers returns the names of all registered drivers, sorted.
func ListStoreDrivers() []string {
	storeDriversMu.RLock()
	defer storeDriversMu.RUnlock()
	return listStoreDriversLocked()
}

// must be called with lock held
func listStoreDriversLocked() []string {
	names := make([]string, 0, len(storeDrivers))
	for name := range storeDrivers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// FieldValue reads field from doc the way c does.
func FieldValue(c Collection, doc Document, field string) (any, error) {
	if fv, ok := c.(paging.FieldValuer[Document]); ok {
		return fv.FieldValue(doc, field)
	}
	return paging.LookupField(doc, field)
}

// CursorCodec returns the codec c provides, or nil.
func CursorCodec(c Collection) *paging.Codec {
	if p, ok := c.(paging.CodecProvider); ok {
		return p.CursorCodec()
	}
	return nil
}
