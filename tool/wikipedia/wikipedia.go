// Package wikipedia searches Wikipedia through the MediaWiki action API.
package wikipedia

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/habiliai/searchchat/errors"
	"github.com/habiliai/searchchat/internal/httputil"
	"github.com/habiliai/searchchat/internal/stringutils"
	"github.com/tidwall/gjson"
)

const (
	Name = "wikipedia"

	maxQueryLength = 300
	noResult       = "No good Wikipedia Search Result was found"
)

type page struct {
	title   string
	summary string
}

type Wikipedia struct {
	// BaseURL is the api.php endpoint. When empty it is derived from Lang.
	BaseURL  string
	Lang     string
	TopK     int
	MaxChars int

	fetcher *httputil.Fetcher
}

func New(fetcher *httputil.Fetcher, lang string, topK, maxChars int) *Wikipedia {
	return &Wikipedia{
		Lang:     lang,
		TopK:     topK,
		MaxChars: maxChars,
		fetcher:  fetcher,
	}
}

func (w *Wikipedia) Name() string {
	return Name
}

func (w *Wikipedia) Description() string {
	return "A wrapper around Wikipedia. " +
		"Useful for when you need to answer general questions about " +
		"people, places, companies, facts, historical events, or other subjects. " +
		"Input should be a search query."
}

func (w *Wikipedia) Invoke(ctx context.Context, query string) (string, error) {
	query = stringutils.Truncate(strings.TrimSpace(query), maxQueryLength)
	if query == "" {
		return noResult, nil
	}

	titles, err := w.search(ctx, query)
	if err != nil {
		return "", err
	}
	if len(titles) == 0 {
		return noResult, nil
	}

	extracts, err := w.extracts(ctx, titles)
	if err != nil {
		return "", err
	}

	docs := make([]string, 0, len(titles))
	for _, title := range titles {
		p, ok := extracts[title]
		if !ok || p.summary == "" {
			continue
		}
		docs = append(docs, fmt.Sprintf("Page: %s\nSummary: %s", p.title, p.summary))
	}
	if len(docs) == 0 {
		return noResult, nil
	}

	return stringutils.Truncate(strings.Join(docs, "\n\n"), w.MaxChars), nil
}

func (w *Wikipedia) endpoint() string {
	if w.BaseURL != "" {
		return w.BaseURL
	}
	lang := w.Lang
	if lang == "" {
		lang = "en"
	}
	return fmt.Sprintf("https://%s.wikipedia.org/w/api.php", lang)
}

func (w *Wikipedia) search(ctx context.Context, query string) ([]string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("srlimit", strconv.Itoa(max(w.TopK, 1)))
	params.Set("srprop", "")
	params.Set("format", "json")
	params.Set("formatversion", "2")

	body, err := w.fetcher.Get(ctx, w.endpoint()+"?"+params.Encode())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to search wikipedia")
	}
	if msg := gjson.GetBytes(body, "error.info"); msg.Exists() {
		return nil, errors.Errorf("wikipedia search failed: %s", msg.String())
	}

	var titles []string
	for _, title := range gjson.GetBytes(body, "query.search.#.title").Array() {
		titles = append(titles, title.String())
	}
	return titles, nil
}

// extracts returns the intro of each title, keyed by the title as searched.
// Titles the API normalizes or redirects are followed to the page returned.
func (w *Wikipedia) extracts(ctx context.Context, titles []string) (map[string]page, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "extracts")
	params.Set("exintro", "1")
	params.Set("explaintext", "1")
	params.Set("exlimit", "max")
	params.Set("redirects", "1")
	params.Set("titles", strings.Join(titles, "|"))
	params.Set("format", "json")
	params.Set("formatversion", "2")

	body, err := w.fetcher.Get(ctx, w.endpoint()+"?"+params.Encode())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch wikipedia extracts")
	}

	renamed := make(map[string]string)
	for _, path := range []string{"query.normalized", "query.redirects"} {
		gjson.GetBytes(body, path).ForEach(func(_, r gjson.Result) bool {
			renamed[r.Get("from").String()] = r.Get("to").String()
			return true
		})
	}

	pages := make(map[string]page)
	gjson.GetBytes(body, "query.pages").ForEach(func(_, p gjson.Result) bool {
		title := p.Get("title").String()
		pages[title] = page{title: title, summary: stringutils.Clean(p.Get("extract").String())}
		return true
	})

	extracts := make(map[string]page, len(titles))
	for _, title := range titles {
		resolved := title
		// normalized, then redirected; bounded so a redirect cycle ends.
		for range 3 {
			to, ok := renamed[resolved]
			if !ok {
				break
			}
			resolved = to
		}
		if p, ok := pages[resolved]; ok {
			extracts[title] = p
		}
	}
	return extracts, nil
}
