/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"

	connerrors "github.com/suparena/connstore/errors"
)

// clearEnv blanks every variable the loader reads.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"AWS_REGION", "AWS_ACCESS_KEY", "AWS_ACCESS_KEY_ID", "AWS_SECRET_KEY",
		"AWS_SECRET_ACCESS_KEY", "AWS_ENDPOINT_URL", "CONNECTIONS_TABLE",
		"QUEUE_URL", "LOG_LEVEL", "SCAN_PAGE_SIZE", "AWS_PROFILE",
	} {
		t.Setenv(name, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ConnectionsTable != "websocket-connections" {
		t.Errorf("expected ConnectionsTable 'websocket-connections', got %q", cfg.ConnectionsTable)
	}
	if cfg.PageSize != 25 {
		t.Errorf("expected PageSize 25, got %d", cfg.PageSize)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected LogLevel 'info', got %q", cfg.LogLevel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("AWS_REGION", "us-east-1")
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIDEXAMPLE")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
	t.Setenv("QUEUE_URL", "https://sqs.us-east-1.amazonaws.com/1/q")
	t.Setenv("SCAN_PAGE_SIZE", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Region != "us-east-1" || cfg.AccessKey != "AKIDEXAMPLE" || cfg.SecretKey != "secret" {
		t.Errorf("unexpected credentials/region: %+v", cfg)
	}
	if cfg.PageSize != 10 {
		t.Errorf("expected PageSize 10, got %d", cfg.PageSize)
	}
	if cfg.ConnectionsTable != "websocket-connections" {
		t.Errorf("expected default table, got %q", cfg.ConnectionsTable)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv sets variables that are currently unset, so unset them for real.
	os.Unsetenv("AWS_REGION")
	os.Unsetenv("CONNECTIONS_TABLE")

	path := filepath.Join(t.TempDir(), "test.env")
	content := "AWS_REGION=eu-west-1\nCONNECTIONS_TABLE=conn\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.Unsetenv("AWS_REGION")
		os.Unsetenv("CONNECTIONS_TABLE")
	})

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Region != "eu-west-1" || cfg.ConnectionsTable != "conn" {
		t.Errorf("env file not applied: %+v", cfg)
	}
}

func TestLoadMissingEnvFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "absent.env")); err == nil {
		t.Error("expected an error for an explicitly named missing file")
	}
}

func TestLoadInvalidPageSize(t *testing.T) {
	clearEnv(t)
	t.Setenv("SCAN_PAGE_SIZE", "lots")

	_, err := Load()
	if !connerrors.IsValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("QUEUE_URL", "https://from-env")

	path := filepath.Join(t.TempDir(), "connstore.yml")
	content := `
region: ap-southeast-2
connections_table: sockets
queue_url: https://from-file
page_size: 50
endpoint: http://localhost:8000
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Region != "ap-southeast-2" || cfg.ConnectionsTable != "sockets" || cfg.PageSize != 50 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.QueueURL != "https://from-env" {
		t.Errorf("expected env to override file, got %q", cfg.QueueURL)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level, got %q", cfg.LogLevel)
	}
}

func TestLoadFileErrors(t *testing.T) {
	clearEnv(t)
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("expected error for a missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(path, []byte("page_size: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{name: "valid", mutate: func(c *Config) {}, valid: true},
		{name: "missing region", mutate: func(c *Config) { c.Region = "" }},
		{name: "zero page size", mutate: func(c *Config) { c.PageSize = 0 }},
		{name: "negative page size", mutate: func(c *Config) { c.PageSize = -5 }},
		{name: "access key without secret", mutate: func(c *Config) { c.AccessKey = "AKID" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Region = "us-east-1"
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.valid && !connerrors.IsValidationError(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestAWSConfig(t *testing.T) {
	clearEnv(t)

	cfg := DefaultConfig()
	cfg.Region = "us-west-2"
	cfg.AccessKey = "AKIDEXAMPLE"
	cfg.SecretKey = "secret"
	cfg.Endpoint = "http://localhost:8000"

	awsCfg, err := cfg.AWSConfig(context.Background())
	if err != nil {
		t.Fatalf("AWSConfig failed: %v", err)
	}
	if awsCfg.Region != "us-west-2" {
		t.Errorf("expected region us-west-2, got %q", awsCfg.Region)
	}
	if aws.ToString(awsCfg.BaseEndpoint) != "http://localhost:8000" {
		t.Errorf("expected base endpoint, got %q", aws.ToString(awsCfg.BaseEndpoint))
	}

	creds, err := awsCfg.Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if creds.AccessKeyID != "AKIDEXAMPLE" {
		t.Errorf("expected static credentials, got %q", creds.AccessKeyID)
	}
}
