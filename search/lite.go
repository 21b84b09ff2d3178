package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const defaultLiteUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// liteProvider implements Provider by scraping the DuckDuckGo lite HTML page.
type liteProvider struct {
	client    *http.Client
	endpoint  string // defaults to "https://lite.duckduckgo.com/lite/"
	userAgent string
}

// NewLiteProvider creates a provider for the lite HTML page at endpoint.
func NewLiteProvider(endpoint string, timeout time.Duration, userAgent string) Provider {
	if userAgent == "" {
		userAgent = defaultLiteUserAgent
	}
	return &liteProvider{
		client:    &http.Client{Timeout: timeout},
		endpoint:  endpoint,
		userAgent: userAgent,
	}
}

func (p *liteProvider) Name() string { return "lite" }

func (p *liteProvider) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	form := url.Values{}
	form.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating lite search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling lite search: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("lite search returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing lite search page: %w", err)
	}
	return parseLite(doc, limit), nil
}

// parseLite pairs each result link with the snippet cell that follows it.
func parseLite(doc *goquery.Document, limit int) []Result {
	snippets := doc.Find("td.result-snippet").Map(func(_ int, s *goquery.Selection) string {
		return strings.Join(strings.Fields(s.Text()), " ")
	})

	var results []Result
	doc.Find("a.result-link").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if len(results) >= limit {
			return false
		}
		href, _ := s.Attr("href")
		title := strings.Join(strings.Fields(s.Text()), " ")
		if href == "" || title == "" {
			return true
		}

		content := title
		if i < len(snippets) && snippets[i] != "" {
			content = snippets[i]
		}
		results = append(results, Result{
			Title:   truncateTitle(title),
			Content: content,
			Source:  href,
		})
		return true
	})
	return results
}
