package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validServerConfig() *StructuredConfig {
	return &StructuredConfig{
		App:     App{TokenSignKey: "k", TokenDuration: time.Minute},
		Storage: Storage{DB: DB{DSN: "postgres://localhost/waste"}},
		Server:  Server{HTTPAddress: ":4000"},
	}
}

func TestStructuredConfig_validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *StructuredConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(c *StructuredConfig) {}},
		{name: "no sign key", mutate: func(c *StructuredConfig) { c.App.TokenSignKey = "" }, wantErr: ErrInvalidAppConfigs},
		{name: "no dsn", mutate: func(c *StructuredConfig) { c.Storage.DB.DSN = "" }, wantErr: ErrInvalidStorageConfigs},
		{name: "no address", mutate: func(c *StructuredConfig) { c.Server.HTTPAddress = "" }, wantErr: ErrInvalidServerConfigs},
		{
			name:    "snapshot without sink",
			mutate:  func(c *StructuredConfig) { c.Workers.Snapshot.Interval = time.Hour },
			wantErr: ErrInvalidWorkerConfigs,
		},
		{
			name: "snapshot with s3 sink",
			mutate: func(c *StructuredConfig) {
				c.Workers.Snapshot.Interval = time.Hour
				c.Workers.Snapshot.S3.Bucket = "b"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validServerConfig()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClientConfig_validate(t *testing.T) {
	base := func() *ClientConfig {
		return newClientConfig(clientDefaults())
	}

	assert.NoError(t, base().validate())

	c := base()
	c.Adapter.RequestTimeout = 0
	assert.ErrorIs(t, c.validate(), ErrInvalidAdapterConfigs)

	c = base()
	c.Workers.SyncInterval = 0
	assert.ErrorIs(t, c.validate(), ErrInvalidWorkerConfigs)

	c = base()
	c.Workers.QueueMaxBackoff = time.Millisecond
	assert.ErrorIs(t, c.validate(), ErrInvalidWorkerConfigs)
}
