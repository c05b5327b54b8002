// Package config parses configuration from the environment into tagged
// structs. Settings are declared with `env` tags and defaults:
//
//	type Config struct {
//	    RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
//	    HTTPPort  int    `env:"HTTP_PORT" envDefault:"8080"`
//	}
package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load fills cfg from the process environment. Missing required variables
// and unparseable values are reported in a single error.
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
