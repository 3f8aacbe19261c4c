package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape of the config file. Durations accept
// either a Go duration string ("30s") or a number of nanoseconds.
type fileConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key" yaml:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer" yaml:"token_issuer"`
		TokenDuration Duration `json:"token_duration" yaml:"token_duration"`
		HashKey       string   `json:"hash_key" yaml:"hash_key"`
		Version       string   `json:"version" yaml:"version"`
		LogLevel      string   `json:"log_level" yaml:"log_level"`
	} `json:"app" yaml:"app"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn" yaml:"dsn"`
		} `json:"db" yaml:"db"`
	} `json:"storage" yaml:"storage"`

	Server struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		GRPCAddress    string   `json:"grpc_address" yaml:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
	} `json:"server" yaml:"server"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
	} `json:"adapter" yaml:"adapter"`

	Workers struct {
		SyncInterval     Duration `json:"sync_interval" yaml:"sync_interval"`
		QueueMaxAttempts int      `json:"queue_max_attempts" yaml:"queue_max_attempts"`
		QueueBaseBackoff Duration `json:"queue_base_backoff" yaml:"queue_base_backoff"`
		QueueMaxBackoff  Duration `json:"queue_max_backoff" yaml:"queue_max_backoff"`
		Snapshot         struct {
			Interval Duration `json:"interval" yaml:"interval"`
			Dir      string   `json:"dir" yaml:"dir"`
			S3       S3File   `json:"s3" yaml:"s3"`
		} `json:"snapshot" yaml:"snapshot"`
	} `json:"workers" yaml:"workers"`
}

// S3File is the file form of [S3].
type S3File struct {
	Bucket          string `json:"bucket" yaml:"bucket"`
	Region          string `json:"region" yaml:"region"`
	Endpoint        string `json:"endpoint" yaml:"endpoint"`
	Prefix          string `json:"prefix" yaml:"prefix"`
	AccessKeyID     string `json:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key" yaml:"secret_access_key"`
}

func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	}

	return fc.toStructured(), nil
}

func (fc *fileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenSignKey:  fc.App.TokenSignKey,
			TokenIssuer:   fc.App.TokenIssuer,
			TokenDuration: time.Duration(fc.App.TokenDuration),
			HashKey:       fc.App.HashKey,
			Version:       fc.App.Version,
			LogLevel:      fc.App.LogLevel,
		},
		Storage: Storage{
			DB: DB{DSN: fc.Storage.DB.DSN},
		},
		Server: Server{
			HTTPAddress:    fc.Server.HTTPAddress,
			GRPCAddress:    fc.Server.GRPCAddress,
			RequestTimeout: time.Duration(fc.Server.RequestTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    fc.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(fc.Adapter.RequestTimeout),
		},
		Workers: Workers{
			SyncInterval:     time.Duration(fc.Workers.SyncInterval),
			QueueMaxAttempts: fc.Workers.QueueMaxAttempts,
			QueueBaseBackoff: time.Duration(fc.Workers.QueueBaseBackoff),
			QueueMaxBackoff:  time.Duration(fc.Workers.QueueMaxBackoff),
			Snapshot: Snapshot{
				Interval: time.Duration(fc.Workers.Snapshot.Interval),
				Dir:      fc.Workers.Snapshot.Dir,
				S3:       S3(fc.Workers.Snapshot.S3),
			},
		},
	}
}

// Duration is a wrapper around time.Duration that decodes from strings like
// "1h" or "30s" as well as from plain numbers of nanoseconds.
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	return d.set(v)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}

	return d.set(v)
}

func (d *Duration) set(v any) error {
	switch value := v.(type) {
	case nil:
		*d = 0
		return nil
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case int:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	}

	return errors.New("duration must be a string or a number")
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
