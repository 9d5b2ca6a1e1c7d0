// Package config loads relaypage configuration using Viper, with support for
// YAML, JSON and TOML files, environment overrides and hot-reloading.
//
// # Configuration Loading
//
// Load configuration from the default locations (/etc/relaypage,
// $HOME/.relaypage, the working directory and the executable's directory):
//
//	cfg, err := config.GetConfig()
//
// Load with a custom path:
//
//	cfg, err := config.LoadConfig("./config.yaml")
//
// Every key can be overridden from the environment with the RELAYPAGE_
// prefix, dots replaced by underscores:
//
//	RELAYPAGE_DATA_DRIVER=postgres RELAYPAGE_SERVER_PORT=9000 relaypage serve
//
// # Configuration Format
//
//	server:
//	  host: 0.0.0.0
//	  port: 8080
//
//	logger:
//	  level: 4
//	  format: json
//	  output: stdout
//
//	paging:
//	  default_page_size: 20
//	  max_page_size: 100
//	  tie_break_field: _id
//
//	data:
//	  driver: mongodb
//	  mongodb:
//	    database: shop
//	    master:
//	      uri: mongodb://localhost:27017
//	  breaker:
//	    enabled: true
//
//	observes:
//	  tracer:
//	    endpoint: localhost:4317
//
// # Hot Reload
//
//	config.Watch(func(cfg *config.Config) {
//	    logger.SetLevel(logrus.Level(cfg.Logger.Level))
//	})
package config
