package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClient_SearchThroughProxyBase(t *testing.T) {
	var gotPath, gotQuery string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /8000/search", func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body) //nolint:errcheck
		gotQuery = body["query"]
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"title":"t","content":"c","source":"s"}]}`)) //nolint:errcheck
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	c, err := New(PageContext{PageURL: ts.URL + "/8000/", ProxyBasePath: "/8000/"}, ts.Client())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if c.Endpoint() != ts.URL+"/8000/search" {
		t.Errorf("endpoint: got %q", c.Endpoint())
	}

	results, err := c.Search(context.Background(), "python")
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if gotPath != "/8000/search" || gotQuery != "python" {
		t.Errorf("request: path %q query %q", gotPath, gotQuery)
	}
	if len(results) != 1 || results[0].Title != "t" || results[0].Source != "s" {
		t.Errorf("results: %+v", results)
	}
}

func TestClient_ErrorResponses(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
		wantMsg    string
	}{
		{
			name: "json error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error":"No query provided"}`)) //nolint:errcheck
			},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "No query provided",
		},
		{
			name: "plain 405",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/plain")
				w.WriteHeader(http.StatusMethodNotAllowed)
				w.Write([]byte("405 Method Not Allowed")) //nolint:errcheck
			},
			wantStatus: http.StatusMethodNotAllowed,
			wantMsg:    "405 Method Not Allowed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			c, err := New(PageContext{PageURL: ts.URL + "/"}, nil)
			if err != nil {
				t.Fatalf("New error: %v", err)
			}
			_, err = c.Search(context.Background(), "q")

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.StatusCode != tt.wantStatus || apiErr.Message != tt.wantMsg {
				t.Errorf("got %d %q", apiErr.StatusCode, apiErr.Message)
			}
		})
	}
}

func TestClient_NotJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html></html>")) //nolint:errcheck
	}))
	defer ts.Close()

	c, err := New(PageContext{PageURL: ts.URL}, nil)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	_, err = c.Search(context.Background(), "q")
	if err == nil || !strings.Contains(err.Error(), "not JSON") {
		t.Errorf("expected not-JSON error, got %v", err)
	}
}

func TestAPIError_Message(t *testing.T) {
	err := &APIError{StatusCode: http.StatusNotFound}
	if err.Error() != "HTTP 404: Not Found" {
		t.Errorf("got %q", err.Error())
	}
}
