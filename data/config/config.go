package config

import (
	"github.com/spf13/viper"
)

// Config data config struct
type Config struct {
	Driver    string `yaml:"driver" json:"driver" validate:"required,oneof=memory mongodb postgres mysql sqlite"`
	*Database `yaml:"database" json:"database"`
	*MongoDB  `yaml:"mongodb" json:"mongodb"`
	*Memory   `yaml:"memory" json:"memory"`
	*Breaker  `yaml:"breaker" json:"breaker"`
	*Redis    `yaml:"redis" json:"redis"`
	*Metrics  `yaml:"metrics" json:"metrics"`
}

// GetConfig returns data config
func GetConfig(v *viper.Viper) *Config {
	driver := v.GetString("data.driver")
	if driver == "" {
		driver = "memory"
	}
	return &Config{
		Driver:   driver,
		Database: getDatabaseConfig(v),
		MongoDB:  getMongoDBConfigs(v),
		Memory:   getMemoryConfig(v),
		Breaker:  getBreakerConfig(v),
		Redis:    getRedisConfigs(v),
		Metrics:  getMetricsConfig(v),
	}
}
