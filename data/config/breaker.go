package config

import (
	"time"

	"github.com/spf13/viper"
)

// Breaker circuit breaker config for store calls
type Breaker struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
	// MaxRequests allowed through while half-open.
	MaxRequests uint32 `yaml:"max_requests" json:"max_requests"`
	// Interval clears the failure counts while closed. 0 never clears.
	Interval time.Duration `yaml:"interval" json:"interval"`
	// Timeout is how long the breaker stays open.
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
	// MinRequests and FailureRatio decide when the breaker trips.
	MinRequests  uint32  `yaml:"min_requests" json:"min_requests"`
	FailureRatio float64 `yaml:"failure_ratio" json:"failure_ratio" validate:"gte=0,lte=1"`
}

// getBreakerConfig returns breaker config
func getBreakerConfig(v *viper.Viper) *Breaker {
	return &Breaker{
		Enabled:      v.GetBool("data.breaker.enabled"),
		MaxRequests:  uint32(getIntOrDefault(v, "data.breaker.max_requests", 100)),
		Interval:     getDurationOrDefault(v, "data.breaker.interval", 5*time.Second),
		Timeout:      getDurationOrDefault(v, "data.breaker.timeout", 3*time.Second),
		MinRequests:  uint32(getIntOrDefault(v, "data.breaker.min_requests", 3)),
		FailureRatio: getFloatOrDefault(v, "data.breaker.failure_ratio", 0.6),
	}
}
