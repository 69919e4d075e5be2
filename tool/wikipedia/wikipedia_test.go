package wikipedia_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/habiliai/searchchat/internal/httputil"
	"github.com/habiliai/searchchat/tool/wikipedia"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, search, extracts string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "query", q.Get("action"))
		w.Header().Set("Content-Type", "application/json")
		switch {
		case q.Get("list") == "search":
			_, _ = w.Write([]byte(search))
		case q.Get("prop") == "extracts":
			_, _ = w.Write([]byte(extracts))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestInvokeFormatsPages(t *testing.T) {
	srv := newServer(t,
		`{"query":{"search":[{"title":"Machine learning"},{"title":"Deep learning"}]}}`,
		`{"query":{"pages":[
			{"title":"Deep learning","extract":"Deep learning is a subset of machine learning."},
			{"title":"Machine learning","extract":"Machine learning is a field of study in artificial intelligence.\n\nIt is statistical."}
		]}}`,
	)
	defer srv.Close()

	wiki := wikipedia.New(httputil.NewFetcher(srv.Client(), ""), "en", 2, 0)
	wiki.BaseURL = srv.URL

	out, err := wiki.Invoke(context.Background(), "machine learning")
	require.NoError(t, err)
	require.Equal(t, "Page: Machine learning\n"+
		"Summary: Machine learning is a field of study in artificial intelligence. It is statistical.\n\n"+
		"Page: Deep learning\n"+
		"Summary: Deep learning is a subset of machine learning.", out)
}

func TestInvokeTruncatesByRunes(t *testing.T) {
	srv := newServer(t,
		`{"query":{"search":[{"title":"Zürich"}]}}`,
		`{"query":{"pages":[{"title":"Zürich","extract":"Zürich is the largest city in Switzerland."}]}}`,
	)
	defer srv.Close()

	wiki := wikipedia.New(httputil.NewFetcher(srv.Client(), ""), "en", 1, 12)
	wiki.BaseURL = srv.URL

	out, err := wiki.Invoke(context.Background(), "zurich")
	require.NoError(t, err)
	require.Equal(t, "Page: Zürich", out)
}

func TestInvokeFollowsNormalizedAndRedirectedTitles(t *testing.T) {
	srv := newServer(t,
		`{"query":{"search":[{"title":"machine_learning"},{"title":"ANN"}]}}`,
		`{"query":{
			"normalized":[{"from":"machine_learning","to":"Machine learning"}],
			"redirects":[{"from":"ANN","to":"Artificial neural network"}],
			"pages":[
				{"pageid":233488,"title":"Machine learning","extract":"Machine learning is a field of study."},
				{"pageid":21523,"title":"Artificial neural network","extract":"A neural network is a model."}
			]}}`,
	)
	defer srv.Close()

	wiki := wikipedia.New(httputil.NewFetcher(srv.Client(), ""), "en", 2, 0)
	wiki.BaseURL = srv.URL

	out, err := wiki.Invoke(context.Background(), "machine learning")
	require.NoError(t, err)
	require.Equal(t, "Page: Machine learning\n"+
		"Summary: Machine learning is a field of study.\n\n"+
		"Page: Artificial neural network\n"+
		"Summary: A neural network is a model.", out)
}

func TestInvokeWithoutResults(t *testing.T) {
	srv := newServer(t, `{"query":{"search":[]}}`, `{}`)
	defer srv.Close()

	wiki := wikipedia.New(httputil.NewFetcher(srv.Client(), ""), "en", 1, 200)
	wiki.BaseURL = srv.URL

	out, err := wiki.Invoke(context.Background(), "qwertyuiop")
	require.NoError(t, err)
	require.Equal(t, "No good Wikipedia Search Result was found", out)
}

func TestInvokeSurfacesAPIErrors(t *testing.T) {
	srv := newServer(t, `{"error":{"code":"badvalue","info":"Unrecognized value"}}`, `{}`)
	defer srv.Close()

	wiki := wikipedia.New(httputil.NewFetcher(srv.Client(), ""), "en", 1, 200)
	wiki.BaseURL = srv.URL

	_, err := wiki.Invoke(context.Background(), "x")
	require.ErrorContains(t, err, "Unrecognized value")
}
