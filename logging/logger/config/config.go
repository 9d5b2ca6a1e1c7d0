package config

import (
	"github.com/spf13/viper"
)

// Config configuration struct
type Config struct {
	Level      int    `json:"level" yaml:"level" validate:"gte=0,lte=6"`
	Format     string `json:"format" yaml:"format" validate:"omitempty,oneof=json text"`
	Output     string `json:"output" yaml:"output" validate:"omitempty,oneof=stdout stderr file"`
	OutputFile string `json:"output_file" yaml:"output_file"`
}

// GetConfig returns the logger configuration. Unset keys default to info
// level text logs on stderr.
func GetConfig(v *viper.Viper) *Config {
	c := &Config{Level: 4, Format: "text", Output: "stderr"}
	if v.IsSet("logger.level") {
		c.Level = v.GetInt("logger.level")
	}
	if v.IsSet("logger.format") {
		c.Format = v.GetString("logger.format")
	}
	if v.IsSet("logger.output") {
		c.Output = v.GetString("logger.output")
	}
	c.OutputFile = v.GetString("logger.output_file")
	return c
}
