package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/ncobase/relaypage/logging/logger"
	"github.com/ncobase/relaypage/validator"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides: RELAYPAGE_DATA_DRIVER sets
// data.driver.
const EnvPrefix = "RELAYPAGE"

var (
	config *Config
	path   string
	mu     sync.RWMutex
	v      *viper.Viper
)

// Config represents the configuration implementation.
type Config struct {
	AppName  string       `json:"app_name"`
	RunMode  string       `json:"run_mode" validate:"omitempty,oneof=debug release test"`
	Server   *Server      `json:"server"`
	Logger   *Logger      `json:"logger"`
	Paging   *Paging      `json:"paging"`
	Data     *Data        `json:"data"`
	Observes *Observes    `json:"observes"`
	Viper    *viper.Viper `json:"-" validate:"-"`
}

func newViper() *viper.Viper {
	vp := viper.New()
	vp.SetEnvPrefix(EnvPrefix)
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vp.AutomaticEnv()
	return vp
}

// GetConfig returns the configuration loaded last, loading it from the
// default locations on first use.
func GetConfig() (*Config, error) {
	mu.RLock()
	cfg := config
	mu.RUnlock()
	if cfg != nil {
		return cfg, nil
	}
	cfg, err := LoadConfig("")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	return cfg, nil
}

// BindConfigToContext binds the configuration to the context.
func BindConfigToContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext returns the configuration bound to ctx, if any.
func FromContext(ctx context.Context) (*Config, bool) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	return cfg, ok
}

type configKey struct{}

// LoadConfig loads the configuration from configPath, or from config.* in
// the default locations when configPath is empty. A missing default file is
// not an error: defaults and environment overrides apply.
func LoadConfig(configPath string) (*Config, error) {
	vp := newViper()
	if configPath != "" {
		vp.SetConfigFile(configPath)
	} else {
		vp.SetConfigName("config")
		vp.AddConfigPath("/etc/relaypage")
		vp.AddConfigPath("$HOME/.relaypage")
		vp.AddConfigPath(".")
		if ex, err := os.Executable(); err == nil {
			vp.AddConfigPath(filepath.Dir(ex))
		}
	}

	if err := vp.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := fromViper(vp)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	mu.Lock()
	config, path, v = cfg, configPath, vp
	mu.Unlock()
	return cfg, nil
}

func fromViper(vp *viper.Viper) *Config {
	return &Config{
		AppName:  getStringOrDefault(vp, "app_name", "relaypage"),
		RunMode:  getStringOrDefault(vp, "run_mode", "release"),
		Server:   getServerConfig(vp),
		Logger:   getLoggerConfig(vp),
		Paging:   getPagingConfig(vp),
		Data:     getDataConfig(vp),
		Observes: getObservesConfig(vp),
		Viper:    vp,
	}
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	return validator.Validate(c)
}

// Reload reloads the configuration from the file loaded last.
func Reload() error {
	mu.RLock()
	p := path
	mu.RUnlock()

	if _, err := LoadConfig(p); err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}
	return nil
}

// Watch watches the configuration file loaded last and calls callback
// with the new configuration after every successful reload. Invalid
// edits are logged and the previous configuration stays in effect.
func Watch(callback func(*Config)) {
	mu.RLock()
	vp := v
	mu.RUnlock()
	if vp == nil || vp.ConfigFileUsed() == "" {
		return
	}

	vp.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		if err := Reload(); err != nil {
			logger.Errorf(context.Background(), "Error reloading config: %v", err)
			return
		}
		mu.RLock()
		cfg := config
		mu.RUnlock()
		callback(cfg)
	})
	vp.WatchConfig()
}
