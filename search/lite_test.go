package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const liteFixture = `<html><body><table>
<tr><td>1.</td><td><a rel="nofollow" href="https://www.python.org/" class="result-link">Welcome to Python.org</a></td></tr>
<tr><td></td><td class="result-snippet">The official home of the   Python Programming Language.</td></tr>
<tr><td>2.</td><td><a rel="nofollow" href="https://docs.python.org/3/" class="result-link">Python 3 Documentation</a></td></tr>
<tr><td></td><td class="result-snippet"></td></tr>
<tr><td>3.</td><td><a rel="nofollow" href="https://pypi.org/" class="result-link">PyPI</a></td></tr>
<tr><td></td><td class="result-snippet">The Python Package Index.</td></tr>
</table></body></html>`

func TestLiteProvider(t *testing.T) {
	var gotMethod, gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		r.ParseForm() //nolint:errcheck
		gotQuery = r.PostForm.Get("q")
		w.Write([]byte(liteFixture)) //nolint:errcheck
	}))
	defer ts.Close()

	s := NewSearcher(NewLiteProvider(ts.URL, time.Second, ""), 2, nil)
	results := s.Search(context.Background(), "python")

	if gotMethod != http.MethodPost || gotQuery != "python" {
		t.Errorf("request: method %q query %q", gotMethod, gotQuery)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results (limit), got %d: %+v", len(results), results)
	}
	if results[0].Title != "Welcome to Python.org" || results[0].Source != "https://www.python.org/" {
		t.Errorf("first result: %+v", results[0])
	}
	if results[0].Content != "The official home of the Python Programming Language." {
		t.Errorf("snippet whitespace should collapse: %q", results[0].Content)
	}
	if results[1].Content != "Python 3 Documentation" {
		t.Errorf("empty snippet should fall back to title: %q", results[1].Content)
	}
}

func TestLiteProvider_NoLinks(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>No results.</body></html>`)) //nolint:errcheck
	}))
	defer ts.Close()

	s := NewSearcher(NewLiteProvider(ts.URL, time.Second, ""), 5, nil)
	results := s.Search(context.Background(), "nothing")
	if len(results) != 1 || results[0].Source != SourceNoResults {
		t.Errorf("expected no-results placeholder, got %+v", results)
	}
}

func TestLiteProvider_RateLimited(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	s := NewSearcher(NewLiteProvider(ts.URL, time.Second, ""), 5, nil)
	results := s.Search(context.Background(), "busy")
	if len(results) != 1 || results[0].Source != SourceError {
		t.Errorf("expected error placeholder, got %+v", results)
	}
}
