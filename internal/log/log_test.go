package log_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/inventory-console/internal/config"
	"github.com/tuanvumaihuynh/inventory-console/internal/log"
	"github.com/tuanvumaihuynh/inventory-console/pkg/correlationid"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(config.Log{Format: config.LogFormatJSON, Level: slog.LevelInfo}, &buf)

	ctx := correlationid.NewContext(context.Background(), "corr-42")
	logger.With(slog.String("service", "http")).InfoContext(ctx, "hello")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "corr-42", rec["correlation_id"])
	assert.Equal(t, "http", rec["service"])
	assert.NotContains(t, rec, "trace_id")
}

func TestNewTextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(config.Log{Format: config.LogFormatText, Level: slog.LevelWarn}, &buf)

	logger.Info("dropped")
	assert.Empty(t, buf.String())

	logger.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestWithUser(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(config.Log{Format: config.LogFormatJSON, Level: slog.LevelInfo}, &buf)

	logger.InfoContext(log.WithUser(context.Background(), "alice"), "navigated")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "alice", rec["user"])
}
