// Package youtube scrapes video links from the YouTube results page.
package youtube

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/habiliai/searchchat/errors"
	"github.com/habiliai/searchchat/internal/httputil"
	"github.com/tidwall/gjson"
)

const (
	Name           = "youtube_search"
	DefaultBaseURL = "https://www.youtube.com"

	// MaxCount caps the result count the model may ask for.
	MaxCount = 20

	sectionsPath = "contents.twoColumnSearchResultsRenderer.primaryContents.sectionListRenderer.contents"
)

type YouTube struct {
	BaseURL      string
	DefaultCount int

	fetcher *httputil.Fetcher
}

func New(fetcher *httputil.Fetcher, defaultCount int) *YouTube {
	return &YouTube{
		BaseURL:      DefaultBaseURL,
		DefaultCount: defaultCount,
		fetcher:      fetcher,
	}
}

func (y *YouTube) Name() string {
	return Name
}

func (y *YouTube) Description() string {
	return "Search for YouTube videos associated with a person or topic. " +
		"The input to this tool should be a comma separated list, " +
		"the first part contains the search terms and the second a number that is the maximum number of video results to return. " +
		"The second part is optional."
}

func (y *YouTube) Invoke(ctx context.Context, input string) (string, error) {
	query, count := ParseInput(input, y.DefaultCount)
	if query == "" {
		return "[]", nil
	}

	params := url.Values{}
	params.Set("search_query", query)
	body, err := y.fetcher.Get(ctx, strings.TrimSuffix(y.BaseURL, "/")+"/results?"+params.Encode())
	if err != nil {
		return "", errors.Wrapf(err, "failed to search youtube")
	}

	data, err := extractInitialData(string(body))
	if err != nil {
		return "", err
	}

	var links []string
	gjson.Get(data, sectionsPath).ForEach(func(_, section gjson.Result) bool {
		section.Get("itemSectionRenderer.contents").ForEach(func(_, item gjson.Result) bool {
			if id := item.Get("videoRenderer.videoId").String(); id != "" {
				links = append(links, y.watchURL(id))
			}
			return len(links) < count
		})
		return len(links) < count
	})

	return "[" + strings.Join(links, ", ") + "]", nil
}

func (y *YouTube) watchURL(id string) string {
	return strings.TrimSuffix(y.BaseURL, "/") + "/watch?v=" + url.QueryEscape(id)
}

// ParseInput splits "<query>,<n>" into the query and the result count,
// clamped to MaxCount. Without a trailing positive number the whole input is
// the query.
func ParseInput(input string, defaultCount int) (string, int) {
	if defaultCount <= 0 {
		defaultCount = 2
	}
	input = strings.TrimSpace(input)
	if i := strings.LastIndex(input, ","); i >= 0 {
		if n, ok := parseCount(strings.TrimSpace(input[i+1:])); ok {
			return strings.TrimSpace(input[:i]), n
		}
	}
	return input, min(defaultCount, MaxCount)
}

func parseCount(s string) (int, bool) {
	n, err := strconv.ParseUint(s, 10, 64)
	switch {
	case errors.Is(err, strconv.ErrRange):
		return MaxCount, true
	case err != nil || n == 0:
		return 0, false
	default:
		return int(min(n, MaxCount)), true
	}
}

func extractInitialData(page string) (string, error) {
	idx := strings.Index(page, "ytInitialData")
	if idx < 0 {
		return "", errors.Errorf("youtube page has no ytInitialData")
	}
	rest := page[idx:]
	start := strings.Index(rest, "{")
	if start < 0 {
		return "", errors.Errorf("youtube page has malformed ytInitialData")
	}
	rest = rest[start:]
	end := strings.Index(rest, ";</script>")
	if end < 0 {
		return "", errors.Errorf("youtube page has unterminated ytInitialData")
	}
	data := strings.TrimSpace(rest[:end])
	if !gjson.Valid(data) {
		return "", errors.Errorf("youtube page has invalid ytInitialData")
	}
	return data, nil
}
