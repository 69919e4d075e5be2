package mylog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/habiliai/searchchat/internal/mylog"
	"github.com/stretchr/testify/require"
)

func TestToLogLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, mylog.ToLogLevel("debug"))
	require.Equal(t, slog.LevelWarn, mylog.ToLogLevel("warn"))
	require.Equal(t, slog.LevelWarn, mylog.ToLogLevel("WARNING"))
	require.Equal(t, slog.LevelInfo, mylog.ToLogLevel("bogus"))
}

func TestJSONHandlerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := mylog.NewLoggerWithWriter(&buf, "warn", "json")

	logger.Info("hidden")
	logger.Warn("shown", "tool", "arxiv")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), `"tool":"arxiv"`)
}

func TestCredentialAttributesAreRedacted(t *testing.T) {
	for _, handler := range []string{"json", "default"} {
		var buf bytes.Buffer
		logger := mylog.NewLoggerWithWriter(&buf, "debug", handler)

		logger.Info("credential received", "api_key", "gsk_secret", "Authorization", "Bearer gsk_secret")

		require.NotContains(t, buf.String(), "gsk_secret", handler)
		require.Contains(t, buf.String(), mylog.Redacted, handler)
	}
}
