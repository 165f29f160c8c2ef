/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	connerrors "github.com/suparena/connstore/errors"
	"github.com/suparena/connstore/storagemodels"
)

// Config holds the settings needed to reach the store and the queue.
type Config struct {
	// Region is the AWS region of the table and the queue.
	Region string `yaml:"region"`

	// AccessKey and SecretKey are optional static credentials.
	// When empty the default AWS credential chain is used.
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`

	// Endpoint overrides the AWS endpoint, e.g. DynamoDB Local or LocalStack.
	Endpoint string `yaml:"endpoint"`

	// ConnectionsTable is the table holding connection records.
	// Default: "websocket-connections"
	ConnectionsTable string `yaml:"connections_table"`

	// QueueURL is the queue whose messages are acknowledged.
	QueueURL string `yaml:"queue_url"`

	// PageSize is the scan page size limit.
	// Default: 25
	PageSize int32 `yaml:"page_size"`

	// LogLevel is a zap level name (debug, info, warn, error).
	// Default: "info"
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the defaults used for unset fields.
func DefaultConfig() Config {
	return Config{
		ConnectionsTable: "websocket-connections",
		PageSize:         storagemodels.DefaultPageSize,
		LogLevel:         "info",
	}
}

// applyDefaults fills unset fields.
func (c *Config) applyDefaults() {
	if c.ConnectionsTable == "" {
		c.ConnectionsTable = "websocket-connections"
	}
	if c.PageSize == 0 {
		c.PageSize = storagemodels.DefaultPageSize
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate checks the configuration is usable.
func (c Config) Validate() error {
	if c.Region == "" {
		return connerrors.NewValidationError("region", "AWS_REGION must be set")
	}
	if c.PageSize < 1 {
		return connerrors.NewValidationError("page_size", "must be a positive integer")
	}
	if (c.AccessKey == "") != (c.SecretKey == "") {
		return connerrors.NewValidationError("access_key", "access key and secret key must be set together")
	}
	return nil
}

// Load reads .env files into the process environment and builds a Config from it.
// Without arguments it loads ".env" from the working directory and tolerates its absence;
// explicitly named files must exist.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		if len(envFiles) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load env file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := cfg.overlayEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads a YAML config file. Environment variables override file values.
func LoadFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.overlayEnv(); err != nil {
		return Config{}, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// overlayEnv replaces fields with the environment variables that are set.
func (c *Config) overlayEnv() error {
	setString(&c.Region, "AWS_REGION")
	setString(&c.AccessKey, "AWS_ACCESS_KEY", "AWS_ACCESS_KEY_ID")
	setString(&c.SecretKey, "AWS_SECRET_KEY", "AWS_SECRET_ACCESS_KEY")
	setString(&c.Endpoint, "AWS_ENDPOINT_URL")
	setString(&c.ConnectionsTable, "CONNECTIONS_TABLE")
	setString(&c.QueueURL, "QUEUE_URL")
	setString(&c.LogLevel, "LOG_LEVEL")

	if v := os.Getenv("SCAN_PAGE_SIZE"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return connerrors.NewValidationError("SCAN_PAGE_SIZE", fmt.Sprintf("not an integer: %q", v))
		}
		c.PageSize = int32(n)
	}
	return nil
}

// setString assigns the first non-empty variable among names.
func setString(dst *string, names ...string) {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			*dst = v
			return
		}
	}
}

// AWSConfig loads the AWS SDK configuration for this Config.
func (c Config) AWSConfig(ctx context.Context) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(c.Region),
	}
	if c.AccessKey != "" && c.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	if c.Endpoint != "" {
		awsCfg.BaseEndpoint = aws.String(c.Endpoint)
	}
	return awsCfg, nil
}
