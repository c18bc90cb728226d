package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	SetOutput(buf)
	t.Cleanup(func() { SetOutput(os.Stdout) })
	return buf
}

func TestLoggerWritesStandardFields(t *testing.T) {
	buf := capture(t)

	New("wallet").WithRequestID("req-1").Info("deposit_done", map[string]any{"amount": "10"})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "wallet", entry["service"])
	assert.Equal(t, "deposit_done", entry["action"])
	assert.Equal(t, "deposit_done", entry["message"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "10", entry["amount"])
	assert.Contains(t, entry, "timestamp")
	assert.Contains(t, entry, "hostname")
}

func TestLoggerErrorCarriesCause(t *testing.T) {
	buf := capture(t)

	New("orders").Error("persist_failed", errors.New("boom"), nil)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	cause, ok := entry["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "boom", cause["msg"])
}

func TestFromContextFallsBack(t *testing.T) {
	fallback := New("fallback")
	assert.Same(t, fallback, FromContext(context.Background(), fallback))

	scoped := New("scoped")
	ctx := IntoContext(context.Background(), scoped)
	assert.Same(t, scoped, FromContext(ctx, nil))
}

func TestFromContextKeepsCallerService(t *testing.T) {
	buf := capture(t)
	ctx := IntoContext(context.Background(), New("api").WithRequestID("req-7"))

	FromContext(ctx, New("wallet")).Info("ledger_applied", nil)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "wallet", entry["service"])
	assert.Equal(t, "req-7", entry["request_id"])
}
