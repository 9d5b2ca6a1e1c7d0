package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ncobase/relaypage/config"
	dc "github.com/ncobase/relaypage/data/config"
	"github.com/spf13/cobra"
)

// rootOptions are the flags shared by every command.
type rootOptions struct {
	configFile string
	fixture    string

	// defaultCollection is the collection named by a single fixture file.
	defaultCollection string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "relaypage",
		Short:         "Relay cursor pagination over document and SQL stores",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&opts.fixture, "fixture", "", "JSON fixture file or directory, served by the memory driver")

	rootCmd.AddCommand(
		newPageCommand(opts),
		newServeCommand(opts),
		newVersionCommand(),
	)
	return rootCmd
}

// load reads the configuration and applies the fixture override.
func (o *rootOptions) load() (*config.Config, error) {
	cfg, err := config.LoadConfig(o.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if o.fixture == "" {
		return cfg, nil
	}

	info, err := os.Stat(o.fixture)
	if err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	dir := o.fixture
	if !info.IsDir() {
		dir = filepath.Dir(o.fixture)
		o.defaultCollection = strings.TrimSuffix(filepath.Base(o.fixture), filepath.Ext(o.fixture))
	}

	cfg.Data.Driver = "memory"
	if cfg.Data.Memory == nil {
		cfg.Data.Memory = &dc.Memory{}
	}
	cfg.Data.Memory.Fixtures = dir
	return cfg, nil
}
