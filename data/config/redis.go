package config

import (
	"time"

	"github.com/spf13/viper"
)

// Redis configures the count cache. The cache is off while Addr is empty.
type Redis struct {
	Addr         string        `json:"addr" yaml:"addr"`
	Username     string        `json:"username" yaml:"username"`
	Password     string        `json:"password" yaml:"password"`
	Db           int           `json:"db" yaml:"db" validate:"gte=0"`
	ReadTimeout  time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`
	DialTimeout  time.Duration `json:"dial_timeout" yaml:"dial_timeout"`

	// KeyPrefix namespaces the cached counts.
	KeyPrefix string `json:"key_prefix" yaml:"key_prefix"`
	// CountTTL is how long a total count is served from the cache.
	CountTTL time.Duration `json:"count_ttl" yaml:"count_ttl" validate:"gte=0"`
}

// getRedisConfigs reads Redis configurations
func getRedisConfigs(v *viper.Viper) *Redis {
	return &Redis{
		Addr:         v.GetString("data.redis.addr"),
		Username:     v.GetString("data.redis.username"),
		Password:     v.GetString("data.redis.password"),
		Db:           v.GetInt("data.redis.db"),
		ReadTimeout:  getDurationOrDefault(v, "data.redis.read_timeout", 3*time.Second),
		WriteTimeout: getDurationOrDefault(v, "data.redis.write_timeout", 3*time.Second),
		DialTimeout:  getDurationOrDefault(v, "data.redis.dial_timeout", 5*time.Second),
		KeyPrefix:    getStringOrDefault(v, "data.redis.key_prefix", "relaypage:count"),
		CountTTL:     getDurationOrDefault(v, "data.redis.count_ttl", 30*time.Second),
	}
}
