package searchchat_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/habiliai/searchchat"
	"github.com/habiliai/searchchat/config"
	"github.com/habiliai/searchchat/errors"
	"github.com/habiliai/searchchat/tool"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestNewWithExampleAgent(t *testing.T) {
	agent, err := config.LoadAgentFromFile("examples/researcher.agent.yaml")
	require.NoError(t, err)

	r, err := searchchat.New(
		searchchat.WithLogger(slog.Default()),
		searchchat.WithAgent(agent),
		searchchat.WithModelConfig(&config.ModelConfig{ModelName: config.DefaultModelName}),
		searchchat.WithToolConfig(config.DefaultToolConfig()),
	)
	require.NoError(t, err)

	require.Equal(t, "researcher", r.Agent().Name)
	require.Equal(t, config.KnownTools, lo.Map(r.Adapters(), func(a tool.Adapter, _ int) string { return a.Name() }))

	session := r.NewSession()
	require.Equal(t, agent.Greeting, session.Messages()[0].Content)

	e, err := r.NewEngine(context.Background(), "gsk_test")
	require.NoError(t, err)
	prompt, err := e.BuildSystemPrompt()
	require.NoError(t, err)
	require.Contains(t, prompt, "Prefer arXiv for scientific questions")
}

func TestAskWithoutCredential(t *testing.T) {
	r, err := searchchat.New(
		searchchat.WithLogger(slog.Default()),
		searchchat.WithModelConfig(&config.ModelConfig{ModelName: config.DefaultModelName}),
		searchchat.WithToolConfig(config.DefaultToolConfig()),
	)
	require.NoError(t, err)

	_, err = r.Ask(context.Background(), "", "What is machine learning?", nil)
	require.True(t, errors.Is(err, errors.ErrMissingCredential))
}
