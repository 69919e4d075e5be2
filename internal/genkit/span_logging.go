package genkit

import (
	"context"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/sdk/trace"
)

const (
	genkitAttrPrefix = "genkit:"
	maxAttrLen       = 200
)

// payloadAttrs carry prompts and tool results; they are logged only in verbose mode.
var payloadAttrs = map[string]struct{}{
	"genkit:input":  {},
	"genkit:output": {},
}

type loggingSpanProcessor struct {
	verbose bool
	logger  *slog.Logger
}

func newLoggingSpanProcessor(logger *slog.Logger, verbose bool) *loggingSpanProcessor {
	return &loggingSpanProcessor{
		verbose: verbose,
		logger:  logger.With("component", "genkit"),
	}
}

func (l *loggingSpanProcessor) OnStart(_ context.Context, s trace.ReadWriteSpan) {
	l.logger.Debug("span start", slog.String("span", s.Name()))
}

func (l *loggingSpanProcessor) OnEnd(s trace.ReadOnlySpan) {
	args := []any{
		slog.String("span", s.Name()),
		slog.Duration("elapsed", s.EndTime().Sub(s.StartTime())),
		slog.String("status", s.Status().Code.String()),
	}
	if desc := s.Status().Description; desc != "" {
		args = append(args, slog.String("status_description", desc))
	}
	args = append(args, l.genkitAttrs(s)...)
	l.logger.Debug("span end", args...)
}

func (l *loggingSpanProcessor) Shutdown(context.Context) error   { return nil }
func (l *loggingSpanProcessor) ForceFlush(context.Context) error { return nil }

var _ trace.SpanProcessor = (*loggingSpanProcessor)(nil)

func (l *loggingSpanProcessor) genkitAttrs(s trace.ReadOnlySpan) []any {
	var args []any
	for _, attr := range s.Attributes() {
		key := string(attr.Key)
		if !strings.HasPrefix(key, genkitAttrPrefix) {
			continue
		}
		if _, ok := payloadAttrs[key]; ok && !l.verbose {
			continue
		}
		value := attr.Value.Emit()
		if !l.verbose && len(value) > maxAttrLen {
			value = value[:maxAttrLen] + "..."
		}
		args = append(args, slog.String(strings.TrimPrefix(key, genkitAttrPrefix), value))
	}
	return args
}
