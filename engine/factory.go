package engine

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/habiliai/searchchat/chat"
	"github.com/habiliai/searchchat/config"
	"github.com/habiliai/searchchat/errors"
	genkitinternal "github.com/habiliai/searchchat/internal/genkit"
	"github.com/habiliai/searchchat/internal/genkit/plugins/groq"
	"github.com/habiliai/searchchat/tool"
)

// Factory builds one Engine per request, bound to the requesting session's credential.
type Factory struct {
	logger      *slog.Logger
	modelConfig *config.ModelConfig
	agent       config.AgentConfig
	adapters    []tool.Adapter
}

func NewFactory(
	logger *slog.Logger,
	modelConfig *config.ModelConfig,
	toolConfig *config.ToolConfig,
	agent config.AgentConfig,
	httpClient *http.Client,
) (*Factory, error) {
	modelConfig = modelConfig.WithAPIKey("")
	agent.ApplyModel(modelConfig)

	toolOverrides := *toolConfig
	toolConfig = &toolOverrides
	if err := agent.ApplyToolOptions(toolConfig); err != nil {
		return nil, err
	}
	adapters, err := tool.NewAdapters(toolConfig, agent.ToolNames(), httpClient)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build tools")
	}

	return &Factory{
		logger:      logger,
		modelConfig: modelConfig,
		agent:       agent,
		adapters:    adapters,
	}, nil
}

func (f *Factory) Adapters() []tool.Adapter {
	return f.adapters
}

func (f *Factory) NewEngine(ctx context.Context, apiKey string) (*Engine, error) {
	conf := f.modelConfig.WithAPIKey(apiKey)
	g, err := genkitinternal.NewGenkit(ctx, conf, f.logger)
	if err != nil {
		return nil, err
	}

	toolManager, err := tool.NewManager(g, f.logger, f.adapters...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to register tools")
	}

	return NewEngine(f.logger, g, toolManager, Options{
		Name:        f.agent.Name,
		Model:       groq.ModelName(conf.ModelName),
		Instruction: f.agent.System,
		MaxTurns:    conf.MaxTurns,
	}), nil
}

// New satisfies chat.AgentFactory.
func (f *Factory) New(ctx context.Context, apiKey string) (chat.Agent, error) {
	e, err := f.NewEngine(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	return e, nil
}

var (
	_ chat.Agent        = (*Engine)(nil)
	_ chat.AgentFactory = (&Factory{}).New
)
