package config

import "github.com/spf13/viper"

// Memory configures the in-memory driver. Each collection is loaded from
// <Fixtures>/<collection>.json, a JSON array of objects.
type Memory struct {
	Fixtures string `yaml:"fixtures" json:"fixtures"`
}

func getMemoryConfig(v *viper.Viper) *Memory {
	return &Memory{
		Fixtures: getStringOrDefault(v, "data.memory.fixtures", "fixtures"),
	}
}
