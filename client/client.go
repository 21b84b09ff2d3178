package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/initializ/websearch/search"
)

// APIError is returned when the front end answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Client posts queries to a websearch front end.
type Client struct {
	http     *http.Client
	endpoint string
}

// New resolves the search endpoint for pc and returns a Client for it. A nil
// httpClient uses http.DefaultClient.
func New(pc PageContext, httpClient *http.Client) (*Client, error) {
	endpoint, err := ResolveSearchURL(pc)
	if err != nil {
		return nil, err
	}
	endpoint, err = absolute(endpoint, pc.PageURL)
	if err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{http: httpClient, endpoint: endpoint}, nil
}

// Endpoint returns the absolute URL queries are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

type searchResponse struct {
	Results []search.Result `json:"results"`
	Error   string          `json:"error"`
}

// Search posts query to the front end and returns its result list.
func (c *Client) Search(ctx context.Context, query string) ([]search.Result, error) {
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("marshalling search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", c.endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading search response: %w", err)
	}

	isJSON := strings.Contains(resp.Header.Get("Content-Type"), "application/json")
	var out searchResponse
	if isJSON {
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("parsing search response: %w", err)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := out.Error
		if msg == "" && !isJSON {
			msg = strings.TrimSpace(string(data))
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	if !isJSON {
		return nil, fmt.Errorf("response from %s is not JSON", c.endpoint)
	}
	if out.Error != "" {
		return nil, fmt.Errorf("search failed: %s", out.Error)
	}
	return out.Results, nil
}
