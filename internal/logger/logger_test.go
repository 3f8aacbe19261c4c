package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captured builds a logger like NewLogger but writing into buf.
func captured(t *testing.T, role string) (*Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })
	return newLogger(&buf, role), &buf
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

// ── constructors ─────────────────────────────────────────────────────────────

func TestNewLogger_Fields(t *testing.T) {
	l, buf := captured(t, "waste-sync-server")

	l.Info().Str("client_reference", "pickup-1").Msg("pickup created")

	entry := lastEntry(t, buf)
	assert.Equal(t, "waste-sync-server", entry["role"])
	assert.Equal(t, "pickup-1", entry["client_reference"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry["func"], "TestNewLogger_Fields")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNop_DiscardsOutput(t *testing.T) {
	l := Nop()
	require.NotNil(t, l)

	l.Error().Msg("dropped")
	assert.Equal(t, zerolog.Disabled, l.GetLevel())
}

func TestWithComponent(t *testing.T) {
	l, buf := captured(t, "waste-sync-client")

	l.WithComponent("connectivity").Info().Msg("online")

	assert.Equal(t, "connectivity", lastEntry(t, buf)["component"])
}

func TestGetChildLogger_IsIndependent(t *testing.T) {
	l, buf := captured(t, "waste-sync-client")
	child := l.GetChildLogger()
	child.Logger = child.With().Str("area", "payments").Logger()

	l.Info().Msg("parent")
	assert.NotContains(t, lastEntry(t, buf), "area")

	child.Info().Msg("child")
	entry := lastEntry(t, buf)
	assert.Equal(t, "payments", entry["area"])
	assert.Equal(t, "waste-sync-client", entry["role"])
}

// ── SetLevel ─────────────────────────────────────────────────────────────────

func TestSetLevel(t *testing.T) {
	tests := []struct {
		level   string
		want    zerolog.Level
		wantErr bool
	}{
		{level: "info", want: zerolog.InfoLevel},
		{level: " WARN ", want: zerolog.WarnLevel},
		{level: "", want: zerolog.DebugLevel},
		{level: "loud", want: zerolog.DebugLevel, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })

			err := SetLevel(tt.level)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

// ── context helpers ──────────────────────────────────────────────────────────

func TestFromContext_RoundTrip(t *testing.T) {
	l, buf := captured(t, "waste-sync-server")
	scoped := &Logger{l.With().Str("trace_id", "t-1").Logger()}

	ctx := scoped.WithContext(context.Background())
	FromContext(ctx).Info().Msg("from ctx")

	assert.Equal(t, "t-1", lastEntry(t, buf)["trace_id"])
}

func TestFromContext_Empty(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}

func TestFromRequest(t *testing.T) {
	l, buf := captured(t, "waste-sync-server")
	req := httptest.NewRequest("GET", "/api/sync/updates", nil)
	req = req.WithContext(l.WithComponent("http").WithContext(req.Context()))

	FromRequest(req).Info().Msg("request")

	assert.Equal(t, "http", lastEntry(t, buf)["component"])
}
