// Package search queries a public instant-answer API and normalizes its
// answers into a uniform result list.
package search

import (
	"context"
	"strings"
)

// Result is a single normalized search result.
type Result struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Source  string `json:"source"`
}

// Sentinel sources mark placeholder results that carry no upstream data.
const (
	SourceError     = "Error"
	SourceNoResults = "General knowledge"
)

// NoResultsPrefix starts the content of the no-results placeholder.
const NoResultsPrefix = "I searched for"

// maxTitleRunes bounds titles derived from related-topic text.
const maxTitleRunes = 100

// Provider abstracts a search backend.
type Provider interface {
	Name() string
	// Search returns up to limit related entries for query. It may return an
	// empty slice when the backend has nothing for the query.
	Search(ctx context.Context, query string, limit int) ([]Result, error)
}

// IsPlaceholder reports whether r is one of the error or no-results placeholders.
func (r Result) IsPlaceholder() bool {
	return r.Source == SourceError || r.Source == SourceNoResults
}

// IsNoResults reports whether r is the no-results placeholder.
func (r Result) IsNoResults() bool {
	return strings.HasPrefix(r.Content, NoResultsPrefix)
}

// truncateTitle shortens text to maxTitleRunes characters with an ellipsis.
func truncateTitle(text string) string {
	runes := []rune(text)
	if len(runes) <= maxTitleRunes {
		return text
	}
	return string(runes[:maxTitleRunes]) + "..."
}
