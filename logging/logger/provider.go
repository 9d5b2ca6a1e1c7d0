package logger

import (
	"github.com/google/wire"
	"github.com/ncobase/relaypage/logging/logger/config"
	"github.com/ncobase/relaypage/version"
)

// ProviderSet is the wire provider set for the logger package
var ProviderSet = wire.NewSet(ProvideLogger)

// ProvideLogger configures the standard logger, stamping every entry with
// the build version. The cleanup closes the log file, if any.
func ProvideLogger(cfg *config.Config) (*Logger, func(), error) {
	l := StdLogger()
	l.SetVersion(version.GetVersionInfo().Version)
	cleanup, err := l.Init(cfg)
	if err != nil {
		return nil, nil, err
	}
	return l, cleanup, nil
}
