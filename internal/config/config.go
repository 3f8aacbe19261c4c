// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// server and the client. It is populated by merging defaults, environment
// variables, command-line flags and an optional JSON or YAML file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token, integrity and logging settings.
	App App `envPrefix:"APP_"`

	// Storage holds the database connection settings. On the server this is
	// PostgreSQL, on the client a SQLite file.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds listener addresses and the request timeout.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the client's view of the server.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds background job settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a config file. Files ending in
	// .yaml or .yml are decoded as YAML, anything else as JSON.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration for all storage backends used by the
// application.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// HashKey is the HMAC key used for the HashSHA256 body integrity header.
	// Empty disables signing and verification.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// Version is exposed via GET /api/version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address of the REST API, e.g. ":4000".
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address of the gRPC health service.
	// Empty disables it.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the PostgreSQL connection string on the server and the SQLite
	// file path on the client.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Adapter holds the client's connection settings to the sync server.
type Adapter struct {
	// HTTPAddress is the base URL or host:port of the server.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background jobs on both sides.
type Workers struct {
	// SyncInterval is the client's periodic refresh interval.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// QueueMaxAttempts is the number of transient failures after which a
	// queued mutation is dead-lettered. 0 retries forever.
	// Env: WORKERS_QUEUE_MAX_ATTEMPTS
	QueueMaxAttempts int `env:"QUEUE_MAX_ATTEMPTS"`

	// QueueBaseBackoff is the delay after the first transient failure.
	// Env: WORKERS_QUEUE_BASE_BACKOFF
	QueueBaseBackoff time.Duration `env:"QUEUE_BASE_BACKOFF"`

	// QueueMaxBackoff caps the exponential backoff.
	// Env: WORKERS_QUEUE_MAX_BACKOFF
	QueueMaxBackoff time.Duration `env:"QUEUE_MAX_BACKOFF"`

	// Snapshot configures the server backup worker.
	Snapshot Snapshot `envPrefix:"SNAPSHOT_"`
}

// Snapshot configures periodic full-dataset backups on the server.
type Snapshot struct {
	// Interval between snapshots. 0 disables the worker.
	// Env: WORKERS_SNAPSHOT_INTERVAL
	Interval time.Duration `env:"INTERVAL"`

	// Dir is the local directory sink. Used when S3.Bucket is empty.
	// Env: WORKERS_SNAPSHOT_DIR
	Dir string `env:"DIR"`

	// S3 is the object storage sink.
	S3 S3 `envPrefix:"S3_"`
}

// S3 holds object storage settings for snapshot uploads.
type S3 struct {
	Bucket          string `env:"BUCKET"`
	Region          string `env:"REGION"`
	Endpoint        string `env:"ENDPOINT"`
	Prefix          string `env:"PREFIX"`
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
}

// GetStructuredConfig loads, merges, and validates the server configuration
// from all available sources in the following priority order (last source
// wins for non-zero fields):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags
//  4. Config file (path resolved from sources 2 and 3)
func GetStructuredConfig() (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withDefaults(serverDefaults()).
		withEnv().
		withFlags().
		withFile("").
		build()
	if err != nil {
		return nil, err
	}

	return cfg, cfg.validate()
}

func serverDefaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "go-waste-sync",
			TokenDuration: 15 * time.Minute,
			LogLevel:      "debug",
		},
		Server: Server{
			HTTPAddress:    ":4000",
			RequestTimeout: 30 * time.Second,
		},
	}
}
