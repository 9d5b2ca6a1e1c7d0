package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type node struct {
	Source string `json:"source" validate:"required"`
}

type settings struct {
	Driver string `json:"driver" validate:"required,oneof=memory mongodb"`
	Limit  int    `yaml:"limit" validate:"gte=0"`
	Master *node  `json:"master"`
}

func TestValidateStruct(t *testing.T) {
	failures := ValidateStruct(&settings{Driver: "redis", Limit: -1, Master: &node{}})
	assert.Equal(t, map[string]string{
		"driver":        "The field 'driver' must be one of [memory mongodb].",
		"limit":         "The field 'limit' must be greater than or equal to 0.",
		"master.source": "The field 'master.source' is required.",
	}, failures)

	assert.Empty(t, ValidateStruct(&settings{Driver: "memory"}))
}

func TestValidate(t *testing.T) {
	err := Validate(&settings{Limit: -1})
	if assert.Error(t, err) {
		assert.Equal(t, "The field 'driver' is required. The field 'limit' must be greater than or equal to 0.", err.Error())
	}
	assert.NoError(t, Validate(&settings{Driver: "mongodb"}))
}
