package config

import (
	"os"
	"slices"

	"github.com/goccy/go-yaml"
	"github.com/habiliai/searchchat/errors"
	"github.com/mitchellh/mapstructure"
)

const DefaultGreeting = "Hi, I'm a chatbot who can search Arxiv, Wikipedia, Reddit, YouTube and more. How can I help you?"

type (
	AgentConfig struct {
		Name     string            `yaml:"name"`
		Greeting string            `yaml:"greeting"`
		System   string            `yaml:"system"`
		Model    string            `yaml:"model"`
		MaxTurns int               `yaml:"maxTurns"`
		Tools    []ToolConfigEntry `yaml:"tools"`
	}

	ToolConfigEntry struct {
		Name    string         `yaml:"name"`
		Options map[string]any `yaml:"options"`
	}

	limitOptions struct {
		TopK     *int    `mapstructure:"top_k_results"`
		MaxChars *int    `mapstructure:"doc_content_chars_max"`
		Lang     *string `mapstructure:"lang"`
	}

	searchOptions struct {
		MaxResults *int `mapstructure:"max_results"`
	}

	redditOptions struct {
		UserAgent  *string `mapstructure:"user_agent"`
		Limit      *int    `mapstructure:"limit"`
		Sort       *string `mapstructure:"sort"`
		TimeFilter *string `mapstructure:"time_filter"`
		Subreddit  *string `mapstructure:"subreddit"`
	}

	youtubeOptions struct {
		DefaultCount *int `mapstructure:"default_count"`
	}
)

func DefaultAgentConfig() AgentConfig {
	tools := make([]ToolConfigEntry, 0, len(KnownTools))
	for _, name := range KnownTools {
		tools = append(tools, ToolConfigEntry{Name: name})
	}
	return AgentConfig{
		Name:     "searchchat",
		Greeting: DefaultGreeting,
		Tools:    tools,
	}
}

func LoadAgentFromFile(file string) (agent AgentConfig, err error) {
	var yamlBytes []byte
	if yamlBytes, err = os.ReadFile(file); err != nil {
		err = errors.Wrapf(err, "failed to read file %s", file)
		return
	}

	return ParseAgentConfig(yamlBytes)
}

func ParseAgentConfig(yamlBytes []byte) (agent AgentConfig, err error) {
	agent = DefaultAgentConfig()
	agent.Tools = nil
	if err = yaml.Unmarshal(yamlBytes, &agent); err != nil {
		err = errors.Wrapf(err, "failed to unmarshal agent config")
		return
	}

	defaults := DefaultAgentConfig()
	if agent.Greeting == "" {
		agent.Greeting = defaults.Greeting
	}
	if agent.Name == "" {
		agent.Name = defaults.Name
	}
	if len(agent.Tools) == 0 {
		agent.Tools = defaults.Tools
	}

	err = agent.Validate()
	return
}

func (c *AgentConfig) Validate() error {
	seen := make(map[string]struct{}, len(c.Tools))
	for _, t := range c.Tools {
		if !slices.Contains(KnownTools, t.Name) {
			return errors.Wrapf(errors.ErrInvalidConfig, "unknown tool %q", t.Name)
		}
		if _, ok := seen[t.Name]; ok {
			return errors.Wrapf(errors.ErrInvalidConfig, "tool %q listed twice", t.Name)
		}
		seen[t.Name] = struct{}{}
	}
	if c.MaxTurns < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "maxTurns must not be negative")
	}
	return nil
}

// ToolNames returns the enabled tools in configured order.
func (c *AgentConfig) ToolNames() []string {
	names := make([]string, 0, len(c.Tools))
	for _, t := range c.Tools {
		names = append(names, t.Name)
	}
	return names
}

// ApplyModel overrides model settings that the agent file specifies.
func (c *AgentConfig) ApplyModel(conf *ModelConfig) {
	if c.Model != "" {
		conf.ModelName = c.Model
	}
	if c.MaxTurns > 0 {
		conf.MaxTurns = c.MaxTurns
	}
}

// ApplyToolOptions decodes per-tool options onto conf.
func (c *AgentConfig) ApplyToolOptions(conf *ToolConfig) error {
	for _, t := range c.Tools {
		if len(t.Options) == 0 {
			continue
		}
		switch t.Name {
		case ToolSearch:
			var opts searchOptions
			if err := decodeOptions(t.Options, &opts); err != nil {
				return errors.Wrapf(err, "invalid options for tool %s", t.Name)
			}
			setIfNotNil(&conf.SearchMaxResults, opts.MaxResults)
		case ToolArxiv:
			var opts limitOptions
			if err := decodeOptions(t.Options, &opts); err != nil {
				return errors.Wrapf(err, "invalid options for tool %s", t.Name)
			}
			setIfNotNil(&conf.ArxivTopK, opts.TopK)
			setIfNotNil(&conf.ArxivMaxChars, opts.MaxChars)
		case ToolWikipedia:
			var opts limitOptions
			if err := decodeOptions(t.Options, &opts); err != nil {
				return errors.Wrapf(err, "invalid options for tool %s", t.Name)
			}
			setIfNotNil(&conf.WikipediaTopK, opts.TopK)
			setIfNotNil(&conf.WikipediaMaxChars, opts.MaxChars)
			setIfNotNil(&conf.WikipediaLang, opts.Lang)
		case ToolReddit:
			var opts redditOptions
			if err := decodeOptions(t.Options, &opts); err != nil {
				return errors.Wrapf(err, "invalid options for tool %s", t.Name)
			}
			setIfNotNil(&conf.RedditUserAgent, opts.UserAgent)
			setIfNotNil(&conf.RedditLimit, opts.Limit)
			setIfNotNil(&conf.RedditSort, opts.Sort)
			setIfNotNil(&conf.RedditTimeFilter, opts.TimeFilter)
			setIfNotNil(&conf.RedditSubreddit, opts.Subreddit)
		case ToolYouTube:
			var opts youtubeOptions
			if err := decodeOptions(t.Options, &opts); err != nil {
				return errors.Wrapf(err, "invalid options for tool %s", t.Name)
			}
			setIfNotNil(&conf.YouTubeDefaultCount, opts.DefaultCount)
		}
	}
	return nil
}

func decodeOptions(in map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(decoder.Decode(in))
}

func setIfNotNil[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
