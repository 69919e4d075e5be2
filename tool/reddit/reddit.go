// Package reddit searches posts through Reddit's public JSON listing.
package reddit

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
	Name           = "reddit_search"
	DefaultBaseURL = "https://www.reddit.com"
)

type (
	Options struct {
		Subreddit  string
		Sort       string
		TimeFilter string
		Limit      int
	}

	Reddit struct {
		BaseURL string
		Options

		fetcher *httputil.Fetcher
	}

	post struct {
		Title     string
		Author    string
		Subreddit string
		Text      string
		URL       string
		Category  string
		Score     int64
	}
)

func New(fetcher *httputil.Fetcher, opts Options) *Reddit {
	if opts.Subreddit == "" {
		opts.Subreddit = "all"
	}
	return &Reddit{
		BaseURL: DefaultBaseURL,
		Options: opts,
		fetcher: fetcher,
	}
}

func (r *Reddit) Name() string {
	return Name
}

func (r *Reddit) Description() string {
	return "A tool that searches for posts on Reddit. " +
		"Useful when you need to know post information on a subreddit. " +
		"Input should be a search query."
}

func (r *Reddit) Invoke(ctx context.Context, query string) (string, error) {
	posts, err := r.search(ctx, strings.TrimSpace(query))
	if err != nil {
		return "", err
	}
	if len(posts) == 0 {
		return fmt.Sprintf("Searching r/%s did not find any posts", r.Subreddit), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Searching r/%s found %d posts:", r.Subreddit, len(posts))
	for _, p := range posts {
		fmt.Fprintf(&b, "\nPost Title: '%s'\nUser: %s\nSubreddit: %s:\n", p.Title, p.Author, p.Subreddit)
		fmt.Fprintf(&b, "    Text body: %s\n    Post URL: %s\n    Post Category: %s.\n    Score: %d\n",
			p.Text, p.URL, p.Category, p.Score)
	}
	return b.String(), nil
}

func (r *Reddit) search(ctx context.Context, query string) ([]post, error) {
	params := url.Values{}
	params.Set("q", query)
	if r.Sort != "" {
		params.Set("sort", r.Sort)
	}
	if r.TimeFilter != "" {
		params.Set("t", r.TimeFilter)
	}
	if r.Limit > 0 {
		params.Set("limit", strconv.Itoa(r.Limit))
	}
	if r.Subreddit != "all" {
		params.Set("restrict_sr", "on")
	}
	params.Set("raw_json", "1")

	endpoint := fmt.Sprintf("%s/r/%s/search.json?%s", strings.TrimSuffix(r.BaseURL, "/"), url.PathEscape(r.Subreddit), params.Encode())
	body, err := r.fetcher.Get(ctx, endpoint)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to search reddit")
	}
	if !gjson.ValidBytes(body) {
		return nil, errors.Errorf("reddit returned a non-JSON response")
	}

	var posts []post
	gjson.GetBytes(body, "data.children.#.data").ForEach(func(_, data gjson.Result) bool {
		if r.Limit > 0 && len(posts) >= r.Limit {
			return false
		}
		posts = append(posts, post{
			Title:     stringutils.Clean(data.Get("title").String()),
			Author:    data.Get("author").String(),
			Subreddit: data.Get("subreddit").String(),
			Text:      stringutils.Clean(data.Get("selftext").String()),
			URL:       data.Get("url").String(),
			Category:  data.Get("link_flair_text").String(),
			Score:     data.Get("score").Int(),
		})
		return true
	})
	return posts, nil
}
