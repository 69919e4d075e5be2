package mylog

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

type Logger = slog.Logger

const Redacted = "[redacted]"

// sensitiveKeys are attribute keys whose values never reach the log output.
var sensitiveKeys = map[string]struct{}{
	"api_key":       {},
	"apikey":        {},
	"credential":    {},
	"authorization": {},
	"groq_api_key":  {},
}

func ToLogLevel(logLevel string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(logLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func NewLogger(logLevel string, logHandler string) *Logger {
	return NewLoggerWithWriter(os.Stderr, logLevel, logHandler)
}

// NewLoggerWithWriter builds a tint logger, or a JSON logger when logHandler is "json".
func NewLoggerWithWriter(w io.Writer, logLevel string, logHandler string) *Logger {
	level := ToLogLevel(logLevel)

	var handler slog.Handler
	if strings.EqualFold(logHandler, "json") {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource:   true,
			Level:       level,
			ReplaceAttr: redact,
		})
	} else {
		handler = tint.NewHandler(w, &tint.Options{
			AddSource:   level == slog.LevelDebug,
			Level:       level,
			TimeFormat:  time.DateTime,
			ReplaceAttr: redact,
		})
	}

	return slog.New(handler)
}

func redact(_ []string, attr slog.Attr) slog.Attr {
	if _, ok := sensitiveKeys[strings.ToLower(attr.Key)]; ok {
		return slog.String(attr.Key, Redacted)
	}
	return attr
}
