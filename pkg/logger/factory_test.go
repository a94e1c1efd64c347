package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielBingham/communities-notify/pkg/logger"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(
		logger.WithFormat(logger.FormatJSON),
		logger.WithOutput(&buf),
		logger.WithAttr(slog.String("service", "notify")),
	)

	log.Info("hello", slog.String("k", "v"))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "notify", rec["service"])
	assert.Equal(t, "v", rec["k"])
}

func TestNew_InvalidFormatPanics(t *testing.T) {
	assert.Panics(t, func() {
		logger.New(logger.WithFormat("xml"))
	})
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithLevel(slog.LevelWarn),
	)

	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestNew_ForEnv(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(
		logger.ForEnv("notify", "development"),
		logger.WithOutput(&buf),
	)

	log.Debug("visible in development")

	out := buf.String()
	assert.Contains(t, out, "visible in development")
	assert.Contains(t, out, "service=notify")
	assert.Contains(t, out, "env=development")
}

type ctxKey struct{}

func TestNew_ContextValueExtractor(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithContextValue("request_id", ctxKey{}),
	)

	ctx := context.WithValue(context.Background(), ctxKey{}, "req-42")
	log.InfoContext(ctx, "with context")

	assert.Contains(t, buf.String(), "req-42")
}

func TestAttr_NilSafety(t *testing.T) {
	assert.Equal(t, slog.Attr{}, logger.Error(nil))
	assert.Equal(t, slog.Attr{}, logger.UserID(nil))
	assert.Equal(t, slog.Attr{}, logger.NotificationType(nil))
}

func TestAttr_DeviceTokenTruncated(t *testing.T) {
	attr := logger.DeviceToken("abcdefghijklmnop")
	assert.Equal(t, "abcdefgh...", attr.Value.String())
}
