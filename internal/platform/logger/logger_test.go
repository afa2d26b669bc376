package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbenning/cardbox-api/internal/config"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
	}{
		{name: "debug level", logLevel: "debug"},
		{name: "info level", logLevel: "info"},
		{name: "warn level", logLevel: "warn"},
		{name: "error level", logLevel: "error"},
		{name: "mixed case level", logLevel: "INFO"},
		{name: "invalid level falls back to info", logLevel: "verbose"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			log, err := Setup(config.ServerConfig{Port: 8080, LogLevel: tc.logLevel})
			require.NoError(t, err)
			assert.NotNil(t, log)
		})
	}
}

func TestContextLogger(t *testing.T) {
	t.Run("round trips through context", func(t *testing.T) {
		log := slog.Default().With("test", t.Name())
		ctx := WithLogger(context.Background(), log)
		assert.Same(t, log, FromContext(ctx))
	})

	t.Run("empty context falls back to default", func(t *testing.T) {
		assert.Same(t, slog.Default(), FromContext(context.Background()))
	})

	t.Run("FromContextOrDefault prefers the context logger", func(t *testing.T) {
		ctxLog := slog.Default().With("source", "context")
		def := slog.Default().With("source", "component")

		ctx := WithLogger(context.Background(), ctxLog)
		assert.Same(t, ctxLog, FromContextOrDefault(ctx, def))
	})

	t.Run("FromContextOrDefault falls back to the component logger", func(t *testing.T) {
		def := slog.Default().With("source", "component")
		assert.Same(t, def, FromContextOrDefault(context.Background(), def))
	})

	t.Run("FromContextOrDefault with nothing falls back to default", func(t *testing.T) {
		assert.Same(t, slog.Default(), FromContextOrDefault(context.Background(), nil))
	})
}
