package searchchat

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/habiliai/searchchat/chat"
	"github.com/habiliai/searchchat/config"
	"github.com/habiliai/searchchat/engine"
	"github.com/habiliai/searchchat/internal/mylog"
	"github.com/habiliai/searchchat/tool"
)

type (
	// Runtime wires the chat service to Groq-backed agents and the search tools.
	Runtime struct {
		logger  *slog.Logger
		agent   config.AgentConfig
		factory *engine.Factory
		service *chat.Service

		modelConfig *config.ModelConfig
		toolConfig  *config.ToolConfig
		logConfig   *config.LogConfig
		httpClient  *http.Client
	}
	Option func(*Runtime)
)

func New(optionFuncs ...Option) (*Runtime, error) {
	r := &Runtime{
		agent: config.DefaultAgentConfig(),
	}
	for _, f := range optionFuncs {
		f(r)
	}

	var err error
	if r.logConfig == nil {
		if r.logConfig, err = config.NewLogConfig(); err != nil {
			return nil, err
		}
	}
	if r.logger == nil {
		r.logger = mylog.NewLogger(r.logConfig.LogLevel, r.logConfig.LogHandler)
	}
	if r.modelConfig == nil {
		if r.modelConfig, err = config.NewModelConfig(); err != nil {
			return nil, err
		}
	}
	if r.toolConfig == nil {
		if r.toolConfig, err = config.NewToolConfig(); err != nil {
			return nil, err
		}
	}

	r.factory, err = engine.NewFactory(r.logger, r.modelConfig, r.toolConfig, r.agent, r.httpClient)
	if err != nil {
		return nil, err
	}
	r.service = chat.NewService(r.factory.New, r.logger)

	return r, nil
}

func (r *Runtime) Agent() config.AgentConfig {
	return r.agent
}

func (r *Runtime) Logger() *slog.Logger {
	return r.logger
}

func (r *Runtime) Service() *chat.Service {
	return r.service
}

func (r *Runtime) Adapters() []tool.Adapter {
	return r.factory.Adapters()
}

// NewSession starts a conversation seeded with the agent's greeting.
func (r *Runtime) NewSession() *chat.Session {
	return chat.NewSession(r.agent.Greeting)
}

// Ask runs a single prompt without a surrounding conversation.
func (r *Runtime) Ask(ctx context.Context, apiKey, prompt string, sink chat.Sink) (*chat.Result, error) {
	session := r.NewSession()
	session.SetCredential(apiKey)
	return r.service.Submit(ctx, session, prompt, sink)
}

// NewEngine builds an agent directly, for callers that manage history themselves.
func (r *Runtime) NewEngine(ctx context.Context, apiKey string) (*engine.Engine, error) {
	return r.factory.NewEngine(ctx, apiKey)
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

func WithLogConfig(logConfig *config.LogConfig) Option {
	return func(r *Runtime) {
		r.logConfig = logConfig
	}
}

func WithAgent(agent config.AgentConfig) Option {
	return func(r *Runtime) {
		r.agent = agent
	}
}

func WithModelConfig(modelConfig *config.ModelConfig) Option {
	return func(r *Runtime) {
		r.modelConfig = modelConfig
	}
}

func WithToolConfig(toolConfig *config.ToolConfig) Option {
	return func(r *Runtime) {
		r.toolConfig = toolConfig
	}
}

// WithHTTPClient sets the client the search tools use.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Runtime) {
		r.httpClient = client
	}
}

