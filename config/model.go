package config

const (
	DefaultModelName = "llama3-8b-8192"
	DefaultMaxTurns  = 10
)

type ModelConfig struct {
	// GroqAPIKey is supplied per session by the user and is never read from the environment.
	GroqAPIKey string

	ModelName    string `env:"GROQ_MODEL"`
	BaseURL      string `env:"GROQ_BASE_URL"`
	MaxTurns     int    `env:"AGENT_MAX_TURNS"`
	TraceVerbose bool   `env:"TRACE_VERBOSE"`
}

func NewModelConfig() (*ModelConfig, error) {
	conf := &ModelConfig{
		ModelName: DefaultModelName,
		MaxTurns:  DefaultMaxTurns,
	}
	return conf, resolveConfig(conf)
}

// WithAPIKey returns a copy of the config bound to the given credential.
func (c ModelConfig) WithAPIKey(apiKey string) *ModelConfig {
	c.GroqAPIKey = apiKey
	return &c
}
