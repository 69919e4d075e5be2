package groq

import (
	"context"
	"fmt"
	"os"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/habiliai/searchchat/internal/genkit/plugins/internal/config"
	"github.com/habiliai/searchchat/internal/genkit/plugins/internal/openaiapi"
	goopenai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	Provider       = "groq"
	labelPrefix    = "Groq"
	apiKeyEnv      = "GROQ_API_KEY"
	DefaultBaseURL = "https://api.groq.com/openai/v1"
)

var (
	knownCaps = map[string]ai.ModelSupports{
		"llama3-8b-8192":          config.BasicText,
		"llama3-70b-8192":         config.BasicText,
		"llama-3.1-8b-instant":    config.BasicText,
		"llama-3.3-70b-versatile": config.BasicText,
		"gemma2-9b-it":            config.BasicText,
	}
)

type Plugin struct {
	// The API key to access Groq.
	// If empty, the value of the environment variable GROQ_API_KEY will be consulted.
	APIKey string

	// BaseURL overrides the OpenAI-compatible endpoint. Defaults to DefaultBaseURL.
	BaseURL string

	// Models are defined in addition to the known ones, with basic text capabilities.
	Models []string

	// MaxRetries is handed to the HTTP client. Zero disables retries.
	MaxRetries int
}

var (
	_ genkit.Plugin = (*Plugin)(nil)
)

// Name implements genkit.Plugin.
func (o *Plugin) Name() string {
	return Provider
}

// Init implements genkit.Plugin.
func (o *Plugin) Init(_ context.Context, g *genkit.Genkit) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("%s.Init: %w", Provider, err)
		}
	}()

	apiKey := o.APIKey
	if apiKey == "" {
		apiKey = os.Getenv(apiKeyEnv)
		if apiKey == "" {
			return fmt.Errorf("Groq API key not found in environment variable: %s", apiKeyEnv)
		}
	}

	baseURL := o.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	client := goopenai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(o.MaxRetries),
	)

	for model, caps := range knownCaps {
		openaiapi.DefineModel(g, client, labelPrefix, Provider, model, caps)
	}
	for _, model := range o.Models {
		if _, ok := knownCaps[model]; ok || model == "" {
			continue
		}
		openaiapi.DefineModel(g, client, labelPrefix, Provider, model, config.BasicText)
	}

	return nil
}

// ModelName returns the fully qualified genkit name of a Groq model.
func ModelName(name string) string {
	return Provider + "/" + name
}

// Model returns the [ai.Model] with the given name.
// It returns nil if the model was not defined.
func Model(g *genkit.Genkit, name string) ai.Model {
	return genkit.LookupModel(g, Provider, name)
}
