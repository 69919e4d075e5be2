package genkit

import (
	"context"
	"log/slog"
	"sync"

	"github.com/firebase/genkit/go/genkit"
	"github.com/habiliai/searchchat/config"
	"github.com/habiliai/searchchat/errors"
	"github.com/habiliai/searchchat/internal/genkit/plugins/groq"
)

var registerSpanLogger sync.Once

// NewGenkit initialises a genkit instance whose Groq models authenticate with
// the credential bound to conf.
func NewGenkit(ctx context.Context, conf *config.ModelConfig, logger *slog.Logger) (*genkit.Genkit, error) {
	if conf == nil {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "model config is required")
	}
	if conf.GroqAPIKey == "" {
		return nil, errors.WithStack(errors.ErrMissingCredential)
	}

	g, err := genkit.Init(
		ctx,
		genkit.WithPlugins(&groq.Plugin{
			APIKey:  conf.GroqAPIKey,
			BaseURL: conf.BaseURL,
			Models:  []string{conf.ModelName},
		}),
		genkit.WithDefaultModel(groq.ModelName(conf.ModelName)),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to init genkit")
	}

	// The tracer provider is process-wide while genkit instances are per session.
	registerSpanLogger.Do(func() {
		genkit.RegisterSpanProcessor(g, newLoggingSpanProcessor(logger, conf.TraceVerbose))
	})

	return g, nil
}
