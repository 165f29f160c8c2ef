// Package config loads connstore settings from .env files, an optional YAML
// file and the process environment, and turns them into an AWS SDK config.
//
// Precedence, lowest first: defaults, YAML file, environment.
//
//	cfg, err := config.Load()          // reads ./.env if present
//	if err == nil {
//	    err = cfg.Validate()
//	}
//	awsCfg, err := cfg.AWSConfig(ctx)
package config
