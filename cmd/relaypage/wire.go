//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/ncobase/relaypage/config"
	"github.com/ncobase/relaypage/data"
	"github.com/ncobase/relaypage/logging/logger"
)

// initializeApp wires the application from the configuration loaded last.
func initializeApp(ctx context.Context) (*App, func(), error) {
	panic(wire.Build(
		config.ProviderSet,
		logger.ProviderSet,
		data.ProviderSet,
		provideHandler,
		NewApp,
	))
}
