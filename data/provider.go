package data

import (
	"context"

	"github.com/google/wire"
	"github.com/ncobase/relaypage/data/config"
)

// ProviderSet is the wire provider set for the data package.
// It provides *Data with a cleanup function that closes the source.
//
// Usage:
//
//	wire.Build(
//	    data.ProviderSet,
//	    // ... other providers
//	)
var ProviderSet = wire.NewSet(ProvideData)

// ProvideData connects the data layer and returns it with its cleanup.
func ProvideData(ctx context.Context, cfg *config.Config) (*Data, func(), error) {
	return New(ctx, cfg)
}
