package config

import (
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func resetFlags(t *testing.T, args ...string) {
	t.Helper()
	oldArgs := os.Args
	oldCommandLine := flag.CommandLine
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	os.Args = append([]string{"cmd"}, args...)
	t.Cleanup(func() {
		os.Args = oldArgs
		flag.CommandLine = oldCommandLine
	})
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBuild_MergesMultipleConfigs(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{Version: "1.0.0"}},
		&StructuredConfig{App: App{TokenIssuer: "issuer"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, "issuer", cfg.App.TokenIssuer)
}

func TestBuild_LaterNonZeroWins(t *testing.T) {
	b := newConfigBuilder().
		withDefaults(&StructuredConfig{Server: Server{HTTPAddress: ":4000", RequestTimeout: time.Second}}).
		withOverrides(&StructuredConfig{Server: Server{HTTPAddress: ":9999"}})

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.HTTPAddress)
	assert.Equal(t, time.Second, cfg.Server.RequestTimeout, "zero override must not erase a default")
}

// ── withEnv ───────────────────────────────────────────────────────────────────

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("APP_VERSION", "env-version")
	t.Setenv("WORKERS_SNAPSHOT_S3_BUCKET", "backups")
	t.Setenv("WORKERS_QUEUE_MAX_ATTEMPTS", "3")

	b := newConfigBuilder().withEnv()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-version", b.configs[0].App.Version)
	assert.Equal(t, "backups", b.configs[0].Workers.Snapshot.S3.Bucket)
	assert.Equal(t, 3, b.configs[0].Workers.QueueMaxAttempts)
}

func TestWithEnv_InvalidDuration(t *testing.T) {
	t.Setenv("WORKERS_SYNC_INTERVAL", "soon")

	b := newConfigBuilder().withEnv()
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFile ──────────────────────────────────────────────────────────────────

func TestWithFile_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withFile("")

	assert.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

func TestWithFile_UsesLastPathFromConfigs(t *testing.T) {
	first := writeTempJSONConfig(t, map[string]any{"app": map[string]any{"version": "first"}})
	second := writeTempJSONConfig(t, map[string]any{"app": map[string]any{"version": "second"}})

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: first}, &StructuredConfig{JSONFilePath: second})
	b.withFile("")

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "second", b.configs[2].App.Version)
}

func TestWithFile_ExplicitPathWins(t *testing.T) {
	fromEnv := writeTempJSONConfig(t, map[string]any{"app": map[string]any{"version": "env"}})
	explicit := writeTempJSONConfig(t, map[string]any{"app": map[string]any{"version": "explicit"}})

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: fromEnv})
	b.withFile(explicit)

	require.NoError(t, b.err)
	assert.Equal(t, "explicit", b.configs[len(b.configs)-1].App.Version)
}

func TestWithFile_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder().withFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, b.err)
}

func TestWithFile_DoesNotAppend_WhenErrorAlreadySet(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{})
	b := newConfigBuilder()
	b.err = assert.AnError
	b.withFile(path)
	assert.Empty(t, b.configs)
}

// ── GetStructuredConfig ───────────────────────────────────────────────────────

func TestGetStructuredConfig_EnvFlagsAndDefaults(t *testing.T) {
	resetFlags(t, "-a", "127.0.0.1:8088", "-token-sign-key", "flag-secret")
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://u:p@localhost/waste")
	t.Setenv("APP_TOKEN_SIGN_KEY", "env-secret")

	cfg, err := GetStructuredConfig()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8088", cfg.Server.HTTPAddress)
	assert.Equal(t, "flag-secret", cfg.App.TokenSignKey)
	assert.Equal(t, "postgres://u:p@localhost/waste", cfg.Storage.DB.DSN)
	assert.Equal(t, 15*time.Minute, cfg.App.TokenDuration)
	assert.Equal(t, "go-waste-sync", cfg.App.TokenIssuer)
}

func TestGetStructuredConfig_MissingSignKey(t *testing.T) {
	resetFlags(t)
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://localhost/waste")
	t.Setenv("APP_TOKEN_SIGN_KEY", "")

	_, err := GetStructuredConfig()
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
}

// ── GetClientConfig ───────────────────────────────────────────────────────────

func TestGetClientConfig_Defaults(t *testing.T) {
	cfg, err := GetClientConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:4000", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 15*time.Second, cfg.Workers.SyncInterval)
	assert.Equal(t, 8, cfg.Workers.QueueMaxAttempts)
	assert.Equal(t, "waste-sync.db", cfg.Storage.DB.DSN)
}

func TestGetClientConfig_OverridesBeatFileAndEnv(t *testing.T) {
	t.Setenv("ADAPTER_ADDRESS", "http://env:4000")
	path := writeTempFile(t, "client.yaml", `
adapter:
  http_address: http://file:4000
  request_timeout: 3s
workers:
  sync_interval: 1m
`)

	cfg, err := GetClientConfig(&StructuredConfig{
		JSONFilePath: path,
		Storage:      Storage{DB: DB{DSN: "override.db"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "http://file:4000", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 3*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, time.Minute, cfg.Workers.SyncInterval)
	assert.Equal(t, "override.db", cfg.Storage.DB.DSN)
}

func TestGetClientConfig_InMemoryDSNRejected(t *testing.T) {
	_, err := GetClientConfig(&StructuredConfig{Storage: Storage{DB: DB{DSN: ":memory:"}}})
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}
