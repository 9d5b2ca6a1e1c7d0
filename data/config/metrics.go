package config

import (
	"time"

	"github.com/spf13/viper"
)

// Metrics data metrics config
type Metrics struct {
	Enabled       bool          `yaml:"enabled" json:"enabled"`
	KeyPrefix     string        `yaml:"key_prefix" json:"key_prefix"`
	SlowThreshold time.Duration `yaml:"slow_threshold" json:"slow_threshold"`
	BatchSize     int           `yaml:"batch_size" json:"batch_size" validate:"gte=0"`
}

// getMetricsConfig returns metrics config
func getMetricsConfig(v *viper.Viper) *Metrics {
	return &Metrics{
		Enabled:       v.GetBool("data.metrics.enabled"),
		KeyPrefix:     getStringOrDefault(v, "data.metrics.key_prefix", "relaypage_data"),
		SlowThreshold: getDurationOrDefault(v, "data.metrics.slow_threshold", 500*time.Millisecond),
		BatchSize:     getIntOrDefault(v, "data.metrics.batch_size", 100),
	}
}

// getStringOrDefault returns string value or default
func getStringOrDefault(v *viper.Viper, key, defaultValue string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return defaultValue
}

// getIntOrDefault returns int value or default
func getIntOrDefault(v *viper.Viper, key string, defaultValue int) int {
	if v.IsSet(key) {
		return v.GetInt(key)
	}
	return defaultValue
}

func getDurationOrDefault(v *viper.Viper, key string, defaultValue time.Duration) time.Duration {
	if v.IsSet(key) {
		return v.GetDuration(key)
	}
	return defaultValue
}

func getFloatOrDefault(v *viper.Viper, key string, defaultValue float64) float64 {
	if v.IsSet(key) {
		return v.GetFloat64(key)
	}
	return defaultValue
}
