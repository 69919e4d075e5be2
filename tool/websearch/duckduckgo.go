// Package websearch scrapes the DuckDuckGo lite results page.
package websearch

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/habiliai/searchchat/errors"
	"github.com/habiliai/searchchat/internal/httputil"
	"github.com/habiliai/searchchat/internal/stringutils"
)

const (
	Name           = "search"
	DefaultBaseURL = "https://lite.duckduckgo.com/lite/"

	noResult = "No good DuckDuckGo Search Result was found"
)

type DuckDuckGo struct {
	BaseURL    string
	MaxResults int

	fetcher *httputil.Fetcher
}

func New(fetcher *httputil.Fetcher, maxResults int) *DuckDuckGo {
	return &DuckDuckGo{
		BaseURL:    DefaultBaseURL,
		MaxResults: maxResults,
		fetcher:    fetcher,
	}
}

func (d *DuckDuckGo) Name() string {
	return Name
}

func (d *DuckDuckGo) Description() string {
	return "A wrapper around DuckDuckGo Search. " +
		"Useful for when you need to answer questions about current events. " +
		"Input should be a search query."
}

// Invoke returns the snippets of the top results joined by spaces.
func (d *DuckDuckGo) Invoke(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return noResult, nil
	}

	form := url.Values{}
	form.Set("q", query)
	body, err := d.fetcher.Do(ctx, http.MethodPost, d.BaseURL, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return "", errors.Wrapf(err, "failed to search duckduckgo")
	}

	snippets, err := parseSnippets(body, d.MaxResults)
	if err != nil {
		return "", err
	}
	if len(snippets) == 0 {
		return noResult, nil
	}

	return strings.Join(snippets, " "), nil
}

func parseSnippets(body []byte, limit int) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse duckduckgo page")
	}

	var snippets []string
	doc.Find("td.result-snippet").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if text := stringutils.Clean(sel.Text()); text != "" {
			snippets = append(snippets, text)
		}
		return limit <= 0 || len(snippets) < limit
	})

	// Some layouts only carry titles.
	if len(snippets) == 0 {
		doc.Find("a.result-link").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			if text := stringutils.Clean(sel.Text()); text != "" {
				snippets = append(snippets, text)
			}
			return limit <= 0 || len(snippets) < limit
		})
	}

	return snippets, nil
}
