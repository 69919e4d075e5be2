package tool

import (
	"net/http"

	"github.com/habiliai/searchchat/config"
	"github.com/habiliai/searchchat/errors"
	"github.com/habiliai/searchchat/internal/httputil"
	"github.com/habiliai/searchchat/tool/arxiv"
	"github.com/habiliai/searchchat/tool/reddit"
	"github.com/habiliai/searchchat/tool/websearch"
	"github.com/habiliai/searchchat/tool/wikipedia"
	"github.com/habiliai/searchchat/tool/youtube"
)

// NewAdapters builds the named search adapters in order. A nil client gets
// one with the configured timeout.
func NewAdapters(conf *config.ToolConfig, names []string, client *http.Client) ([]Adapter, error) {
	if client == nil {
		client = &http.Client{Timeout: conf.HTTPTimeout()}
	}
	browser := httputil.NewFetcher(client, "")
	api := httputil.NewFetcher(client, conf.APIUserAgent)

	adapters := make([]Adapter, 0, len(names))
	for _, name := range names {
		switch name {
		case config.ToolSearch:
			adapters = append(adapters, websearch.New(browser, conf.SearchMaxResults))
		case config.ToolArxiv:
			adapters = append(adapters, arxiv.New(api, conf.ArxivTopK, conf.ArxivMaxChars))
		case config.ToolWikipedia:
			adapters = append(adapters, wikipedia.New(api, conf.WikipediaLang, conf.WikipediaTopK, conf.WikipediaMaxChars))
		case config.ToolReddit:
			adapters = append(adapters, reddit.New(httputil.NewFetcher(client, conf.RedditUserAgent), reddit.Options{
				Subreddit:  conf.RedditSubreddit,
				Sort:       conf.RedditSort,
				TimeFilter: conf.RedditTimeFilter,
				Limit:      conf.RedditLimit,
			}))
		case config.ToolYouTube:
			youtubeFetcher := httputil.NewFetcher(client, "")
			// Skips the EU consent interstitial.
			youtubeFetcher.Header = http.Header{"Cookie": []string{"CONSENT=YES+1"}}
			adapters = append(adapters, youtube.New(youtubeFetcher, conf.YouTubeDefaultCount))
		default:
			return nil, errors.Wrapf(errors.ErrInvalidConfig, "unknown tool %q", name)
		}
	}

	return adapters, nil
}
