// Package httputil holds the small HTTP helper shared by the search adapters.
package httputil

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/habiliai/searchchat/errors"
)

const (
	DefaultTimeout = 15 * time.Second
	// Browser-like agent; DuckDuckGo and YouTube serve reduced pages to unknown agents.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	maxBodySize = 8 << 20
)

type Fetcher struct {
	Client    *http.Client
	UserAgent string
	Header    http.Header
}

func NewFetcher(client *http.Client, userAgent string) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Fetcher{
		Client:    client,
		UserAgent: userAgent,
	}
}

func (f *Fetcher) Get(ctx context.Context, url string) ([]byte, error) {
	return f.Do(ctx, http.MethodGet, url, "", nil)
}

// Do sends the request and returns the body of a 2xx response.
func (f *Fetcher) Do(ctx context.Context, method, url, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create request")
	}
	for k, vs := range f.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("User-Agent", f.UserAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to request %s", req.URL.Host)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Errorf("unexpected status %s from %s", resp.Status, req.URL.Host)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read response body")
	}

	return data, nil
}
