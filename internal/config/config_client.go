package config

import (
	"fmt"
	"time"
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// HashKey is the HMAC key used by the client to sign request bodies.
	HashKey string
	// LogLevel is the zerolog level of the client log file.
	LogLevel string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the sync server.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite file path.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	DB ClientDB
}

// ClientWorkers contains client background job settings.
type ClientWorkers struct {
	// SyncInterval defines how often the cache is refreshed while online.
	SyncInterval time.Duration
	// QueueMaxAttempts is the transient failure ceiling per queued mutation.
	QueueMaxAttempts int
	// QueueBaseBackoff is the delay after the first transient failure.
	QueueBaseBackoff time.Duration
	// QueueMaxBackoff caps the retry delay.
	QueueMaxBackoff time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view.
//
// Sources are merged in this order: defaults, environment, config file and
// finally overrides. Overrides come from the command tree, which owns flag
// parsing on the client, so the standard flag set is not consulted.
func GetClientConfig(overrides *StructuredConfig) (*ClientConfig, error) {
	var path string
	if overrides != nil {
		path = overrides.JSONFilePath
	}

	cfg, err := newConfigBuilder().
		withDefaults(clientDefaults()).
		withEnv().
		withFile(path).
		withOverrides(overrides).
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)

	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			HashKey:  cfg.App.HashKey,
			LogLevel: cfg.App.LogLevel,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: cfg.Storage.DB.DSN},
		},
		Workers: ClientWorkers{
			SyncInterval:     cfg.Workers.SyncInterval,
			QueueMaxAttempts: cfg.Workers.QueueMaxAttempts,
			QueueBaseBackoff: cfg.Workers.QueueBaseBackoff,
			QueueMaxBackoff:  cfg.Workers.QueueMaxBackoff,
		},
	}
}

func clientDefaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{LogLevel: "info"},
		Adapter: Adapter{
			HTTPAddress:    "http://localhost:4000",
			RequestTimeout: 10 * time.Second,
		},
		Storage: Storage{
			DB: DB{DSN: "waste-sync.db"},
		},
		Workers: Workers{
			SyncInterval:     15 * time.Second,
			QueueMaxAttempts: 8,
			QueueBaseBackoff: 2 * time.Second,
			QueueMaxBackoff:  5 * time.Minute,
		},
	}
}
