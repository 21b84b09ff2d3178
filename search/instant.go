package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// instantProvider implements Provider using the DuckDuckGo instant answer API.
type instantProvider struct {
	client    *http.Client
	endpoint  string // defaults to "https://api.duckduckgo.com/"
	userAgent string
}

// NewInstantProvider creates a provider for the instant-answer API at endpoint.
func NewInstantProvider(endpoint string, timeout time.Duration, userAgent string) Provider {
	return &instantProvider{
		client:    &http.Client{Timeout: timeout},
		endpoint:  endpoint,
		userAgent: userAgent,
	}
}

func (p *instantProvider) Name() string { return "instant" }

// instantTopic covers both plain topics and category groups.
type instantTopic struct {
	Text     string            `json:"Text"`
	FirstURL string            `json:"FirstURL"`
	Name     string            `json:"Name"`
	Topics   []json.RawMessage `json:"Topics"`
}

type instantResponse struct {
	Abstract      string            `json:"Abstract"`
	AbstractText  string            `json:"AbstractText"`
	AbstractURL   string            `json:"AbstractURL"`
	Heading       string            `json:"Heading"`
	RelatedTopics []json.RawMessage `json:"RelatedTopics"`
}

func (p *instantProvider) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating instant-answer request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling instant-answer API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading instant-answer response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("instant-answer API returned status %d", resp.StatusCode)
	}

	var data instantResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("parsing instant-answer response: %w", err)
	}
	return normalizeInstant(data, limit), nil
}

// normalizeInstant emits the abstract first, then related topics from the
// first limit entries. Category groups occupy a slot but yield nothing.
func normalizeInstant(data instantResponse, limit int) []Result {
	var results []Result

	if data.Abstract != "" {
		title := data.AbstractText
		if title == "" {
			title = "Summary"
		}
		results = append(results, Result{
			Title:   title,
			Content: data.Abstract,
			Source:  data.AbstractURL,
		})
	}

	topics := data.RelatedTopics
	if limit < 0 {
		limit = 0
	}
	if len(topics) > limit {
		topics = topics[:limit]
	}
	for _, raw := range topics {
		var topic instantTopic
		if err := json.Unmarshal(raw, &topic); err != nil {
			continue
		}
		if topic.Text == "" {
			continue
		}
		results = append(results, Result{
			Title:   truncateTitle(topic.Text),
			Content: topic.Text,
			Source:  topic.FirstURL,
		})
	}
	return results
}
