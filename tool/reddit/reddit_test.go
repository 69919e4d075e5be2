package reddit_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/habiliai/searchchat/internal/httputil"
	"github.com/habiliai/searchchat/tool/reddit"
	"github.com/stretchr/testify/require"
)

const listing = `{"kind":"Listing","data":{"children":[
  {"kind":"t3","data":{"title":"Why Go?","author":"gopher","subreddit":"golang","selftext":"Simple  and fast.","url":"https://reddit.com/r/golang/1","link_flair_text":"discussion","score":42}},
  {"kind":"t3","data":{"title":"Generics","author":"rob","subreddit":"golang","selftext":"","url":"https://reddit.com/r/golang/2","link_flair_text":null,"score":7}},
  {"kind":"t3","data":{"title":"Third","author":"ken","subreddit":"golang","selftext":"","url":"https://reddit.com/r/golang/3","score":1}}
]}}`

func newReddit(t *testing.T, body string, opts reddit.Options, check func(r *http.Request)) (*reddit.Reddit, func()) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		_, _ = w.Write([]byte(body))
	}))

	rd := reddit.New(httputil.NewFetcher(srv.Client(), "searchchat-test"), opts)
	rd.BaseURL = srv.URL
	return rd, srv.Close
}

func TestInvokeFormatsPosts(t *testing.T) {
	rd, closeFn := newReddit(t, listing, reddit.Options{Subreddit: "golang", Sort: "top", TimeFilter: "week", Limit: 2}, func(r *http.Request) {
		require.Equal(t, "/r/golang/search.json", r.URL.Path)
		q := r.URL.Query()
		require.Equal(t, "why go", q.Get("q"))
		require.Equal(t, "top", q.Get("sort"))
		require.Equal(t, "week", q.Get("t"))
		require.Equal(t, "2", q.Get("limit"))
		require.Equal(t, "on", q.Get("restrict_sr"))
		require.Equal(t, "searchchat-test", r.Header.Get("User-Agent"))
	})
	defer closeFn()

	out, err := rd.Invoke(context.Background(), "why go")
	require.NoError(t, err)
	require.Contains(t, out, "Searching r/golang found 2 posts:")
	require.Contains(t, out, "Post Title: 'Why Go?'\nUser: gopher\nSubreddit: golang:")
	require.Contains(t, out, "Text body: Simple and fast.")
	require.Contains(t, out, "Post Category: discussion.")
	require.Contains(t, out, "Score: 42")
	require.NotContains(t, out, "Third")
}

func TestInvokeSearchesAllByDefault(t *testing.T) {
	rd, closeFn := newReddit(t, listing, reddit.Options{}, func(r *http.Request) {
		require.Equal(t, "/r/all/search.json", r.URL.Path)
		require.Empty(t, r.URL.Query().Get("restrict_sr"))
	})
	defer closeFn()

	out, err := rd.Invoke(context.Background(), "go")
	require.NoError(t, err)
	require.Contains(t, out, "found 3 posts")
}

func TestInvokeWithoutPosts(t *testing.T) {
	rd, closeFn := newReddit(t, `{"kind":"Listing","data":{"children":[]}}`, reddit.Options{Subreddit: "golang"}, nil)
	defer closeFn()

	out, err := rd.Invoke(context.Background(), "nothing")
	require.NoError(t, err)
	require.Equal(t, "Searching r/golang did not find any posts", out)
}

func TestInvokeRejectsNonJSON(t *testing.T) {
	rd, closeFn := newReddit(t, `<html>blocked</html>`, reddit.Options{}, nil)
	defer closeFn()

	_, err := rd.Invoke(context.Background(), "go")
	require.Error(t, err)
}
