package config

import (
	"time"
)

const (
	ToolSearch    = "search"
	ToolArxiv     = "arxiv"
	ToolWikipedia = "wikipedia"
	ToolReddit    = "reddit_search"
	ToolYouTube   = "youtube_search"
)

// KnownTools lists every tool in the order it is offered to the agent.
var KnownTools = []string{ToolSearch, ToolArxiv, ToolWikipedia, ToolReddit, ToolYouTube}

type ToolConfig struct {
	SearchMaxResults int `env:"SEARCH_MAX_RESULTS"`

	ArxivTopK     int `env:"ARXIV_TOP_K_RESULTS"`
	ArxivMaxChars int `env:"ARXIV_DOC_CONTENT_CHARS_MAX"`

	WikipediaTopK     int    `env:"WIKIPEDIA_TOP_K_RESULTS"`
	WikipediaMaxChars int    `env:"WIKIPEDIA_DOC_CONTENT_CHARS_MAX"`
	WikipediaLang     string `env:"WIKIPEDIA_LANG"`

	RedditUserAgent  string `env:"REDDIT_USER_AGENT"`
	RedditLimit      int    `env:"REDDIT_LIMIT"`
	RedditSort       string `env:"REDDIT_SORT"`
	RedditTimeFilter string `env:"REDDIT_TIME_FILTER"`
	RedditSubreddit  string `env:"REDDIT_SUBREDDIT"`

	YouTubeDefaultCount int `env:"YOUTUBE_DEFAULT_COUNT"`

	// APIUserAgent identifies the client to the arXiv and MediaWiki APIs.
	APIUserAgent       string `env:"TOOL_USER_AGENT"`
	HTTPTimeoutSeconds int    `env:"TOOL_HTTP_TIMEOUT_SECONDS"`
}

func DefaultToolConfig() *ToolConfig {
	return &ToolConfig{
		SearchMaxResults:    5,
		ArxivTopK:           1,
		ArxivMaxChars:       200,
		WikipediaTopK:       1,
		WikipediaMaxChars:   200,
		WikipediaLang:       "en",
		RedditUserAgent:     "searchchat/0.1",
		RedditLimit:         2,
		RedditSort:          "relevance",
		RedditTimeFilter:    "all",
		RedditSubreddit:     "all",
		YouTubeDefaultCount: 2,
		APIUserAgent:        "searchchat/0.1 (https://github.com/habiliai/searchchat)",
		HTTPTimeoutSeconds:  15,
	}
}

func NewToolConfig() (*ToolConfig, error) {
	conf := DefaultToolConfig()
	return conf, resolveConfig(conf)
}

func (c *ToolConfig) HTTPTimeout() time.Duration {
	if c.HTTPTimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}
