package groq_test

import (
	"context"
	"flag"
	"strings"
	"testing"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/habiliai/searchchat/internal/genkit/plugins/groq"
	"github.com/stretchr/testify/require"
)

// The live tests only work with an API key set to a valid value.
var apiKey = flag.String("key", "", "Groq API key")

func TestInitDefinesConfiguredModels(t *testing.T) {
	ctx := context.Background()
	g, err := genkit.Init(ctx, genkit.WithPlugins(&groq.Plugin{
		APIKey:  "gsk_test",
		BaseURL: "http://127.0.0.1:0",
		Models:  []string{"custom-model"},
	}))
	require.NoError(t, err)

	require.NotNil(t, groq.Model(g, "llama3-8b-8192"))
	require.NotNil(t, groq.Model(g, "custom-model"))
	require.Nil(t, groq.Model(g, "not-defined"))
	require.Equal(t, "groq/llama3-8b-8192", groq.ModelName("llama3-8b-8192"))
}

func TestLive(t *testing.T) {
	if *apiKey == "" {
		t.Skipf("no -key provided")
	}
	ctx := context.Background()
	g, err := genkit.Init(ctx, genkit.WithPlugins(&groq.Plugin{
		APIKey: *apiKey,
	}))
	require.NoError(t, err)

	t.Run("generate", func(t *testing.T) {
		resp, err := genkit.Generate(
			ctx,
			g,
			ai.WithModel(groq.Model(g, "llama3-8b-8192")),
			ai.WithPrompt("Just the country name where Napoleon was emperor, no period."),
		)
		require.NoError(t, err)
		require.Contains(t, resp.Text(), "France")
	})

	t.Run("stream", func(t *testing.T) {
		var chunks strings.Builder
		resp, err := genkit.Generate(
			ctx,
			g,
			ai.WithModel(groq.Model(g, "llama3-8b-8192")),
			ai.WithPrompt("Count from one to five in words."),
			ai.WithStreaming(func(ctx context.Context, chunk *ai.ModelResponseChunk) error {
				chunks.WriteString(chunk.Text())
				return nil
			}),
		)
		require.NoError(t, err)
		require.Equal(t, resp.Text(), chunks.String())
	})
}
