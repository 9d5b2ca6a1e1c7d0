package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Database database config struct
type Database struct {
	Master   *DBNode   `json:"master" yaml:"master"`
	Slaves   []*DBNode `json:"slaves" yaml:"slaves"`
	Strategy string    `json:"strategy" yaml:"strategy" validate:"omitempty,oneof=round_robin random weight"`
	MaxRetry int       `json:"max_retry" yaml:"max_retry" validate:"gte=0"`
	// Name is the schema holding the collections, used by MySQL and
	// PostgreSQL when tables are not on the search path.
	Name string `json:"name" yaml:"name"`
}

// DBNode represents a single database node configuration
type DBNode struct {
	Source          string        `json:"source" yaml:"source"`
	Logging         bool          `json:"logging" yaml:"logging"`
	MaxIdleConn     int           `json:"max_idle_conn" yaml:"max_idle_conn"`
	MaxOpenConn     int           `json:"max_open_conn" yaml:"max_open_conn"`
	ConnMaxLifeTime time.Duration `json:"conn_max_life_time" yaml:"conn_max_life_time"`
	Weight          int           `json:"weight" yaml:"weight"`
}

// getDatabaseConfig reads database configurations
func getDatabaseConfig(v *viper.Viper) *Database {
	return &Database{
		Master:   getNode(v, "data.database.master"),
		Slaves:   getSlaveConfigs(v),
		Strategy: v.GetString("data.database.strategy"),
		MaxRetry: v.GetInt("data.database.max_retry"),
		Name:     v.GetString("data.database.name"),
	}
}

func getNode(v *viper.Viper, prefix string) *DBNode {
	return &DBNode{
		Source:          v.GetString(prefix + ".source"),
		Logging:         v.GetBool(prefix + ".logging"),
		MaxIdleConn:     v.GetInt(prefix + ".max_idle_conn"),
		MaxOpenConn:     v.GetInt(prefix + ".max_open_conn"),
		ConnMaxLifeTime: v.GetDuration(prefix + ".max_life_time"),
		Weight:          v.GetInt(prefix + ".weight"),
	}
}

// getSlaveConfigs reads slave database configurations
func getSlaveConfigs(v *viper.Viper) []*DBNode {
	var slaves []*DBNode

	slavesList, ok := v.Get("data.database.slaves").([]any)
	if !ok {
		return slaves
	}

	for i := range slavesList {
		slave := getNode(v, fmt.Sprintf("data.database.slaves.%d", i))
		if slave.Source == "" {
			continue
		}
		slaves = append(slaves, slave)
	}
	return slaves
}

// Weights returns the read weights of the slaves, in order.
func (d *Database) Weights() []int {
	weights := make([]int, len(d.Slaves))
	for i, s := range d.Slaves {
		weights[i] = s.Weight
	}
	return weights
}
