package engine

import (
	"log/slog"

	"github.com/firebase/genkit/go/genkit"
	"github.com/habiliai/searchchat/config"
	"github.com/habiliai/searchchat/tool"
)

type (
	Options struct {
		// Name is how the agent introduces itself in its instructions.
		Name string
		// Model is the fully qualified genkit model name, e.g. "groq/llama3-8b-8192".
		Model string
		// Instruction is appended to the system instructions.
		Instruction string
		MaxTurns    int
	}

	Engine struct {
		logger      *slog.Logger
		genkit      *genkit.Genkit
		toolManager *tool.Manager
		opts        Options
	}
)

func NewEngine(
	logger *slog.Logger,
	genkit *genkit.Genkit,
	toolManager *tool.Manager,
	opts Options,
) *Engine {
	if opts.Name == "" {
		opts.Name = "searchchat"
	}
	if opts.MaxTurns <= 0 {
		opts.MaxTurns = config.DefaultMaxTurns
	}
	return &Engine{
		logger:      logger,
		genkit:      genkit,
		toolManager: toolManager,
		opts:        opts,
	}
}
