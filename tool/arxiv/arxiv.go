// Package arxiv queries the arXiv Atom API.
package arxiv

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/habiliai/searchchat/errors"
	"github.com/habiliai/searchchat/internal/httputil"
	"github.com/habiliai/searchchat/internal/stringutils"
	"github.com/mmcdole/gofeed"
	"github.com/samber/lo"
)

const (
	Name           = "arxiv"
	DefaultBaseURL = "https://export.arxiv.org/api/query"

	maxQueryLength = 300
	noResult       = "No good Arxiv Result was found"
)

var identifierPattern = regexp.MustCompile(`^(\d{4}\.\d{4,5}(v\d+)?|[a-z\-]+(\.[A-Z]{2})?/\d{7}(v\d+)?)$`)

type Arxiv struct {
	BaseURL  string
	TopK     int
	MaxChars int

	fetcher *httputil.Fetcher
	parser  *gofeed.Parser
}

func New(fetcher *httputil.Fetcher, topK, maxChars int) *Arxiv {
	return &Arxiv{
		BaseURL:  DefaultBaseURL,
		TopK:     topK,
		MaxChars: maxChars,
		fetcher:  fetcher,
		parser:   gofeed.NewParser(),
	}
}

func (a *Arxiv) Name() string {
	return Name
}

func (a *Arxiv) Description() string {
	return "A wrapper around Arxiv.org. " +
		"Useful for when you need to answer questions about Physics, Mathematics, Computer Science, " +
		"Quantitative Biology, Quantitative Finance, Statistics, Electrical Engineering, and Economics " +
		"from scientific articles on arxiv.org. " +
		"Input should be a search query."
}

func (a *Arxiv) Invoke(ctx context.Context, query string) (string, error) {
	query = stringutils.Truncate(strings.TrimSpace(query), maxQueryLength)
	if query == "" {
		return noResult, nil
	}

	body, err := a.fetcher.Get(ctx, a.buildURL(query))
	if err != nil {
		return "", errors.Wrapf(err, "failed to query arxiv")
	}

	feed, err := a.parser.ParseString(string(body))
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse arxiv feed")
	}

	items := feed.Items
	if a.TopK > 0 && len(items) > a.TopK {
		items = items[:a.TopK]
	}
	docs := make([]string, 0, len(items))
	for _, item := range items {
		docs = append(docs, formatEntry(item))
	}
	if len(docs) == 0 {
		return noResult, nil
	}

	return stringutils.Truncate(strings.Join(docs, "\n\n"), a.MaxChars), nil
}

func (a *Arxiv) buildURL(query string) string {
	params := url.Values{}
	// Bare identifiers are looked up directly.
	if ids := strings.Fields(query); lo.EveryBy(ids, identifierPattern.MatchString) {
		params.Set("id_list", strings.Join(ids, ","))
	} else {
		params.Set("search_query", query)
	}
	params.Set("start", "0")
	params.Set("max_results", strconv.Itoa(max(a.TopK, 1)))

	return a.BaseURL + "?" + params.Encode()
}

func formatEntry(item *gofeed.Item) string {
	var published string
	switch {
	case item.UpdatedParsed != nil:
		published = item.UpdatedParsed.Format(time.DateOnly)
	case item.PublishedParsed != nil:
		published = item.PublishedParsed.Format(time.DateOnly)
	}

	authors := lo.FilterMap(item.Authors, func(p *gofeed.Person, _ int) (string, bool) {
		if p == nil {
			return "", false
		}
		return p.Name, p.Name != ""
	})

	return fmt.Sprintf("Published: %s\nTitle: %s\nAuthors: %s\nSummary: %s",
		published,
		stringutils.Clean(item.Title),
		strings.Join(authors, ", "),
		stringutils.Clean(item.Description),
	)
}
