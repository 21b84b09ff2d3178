// Package agent answers questions from web search results and keeps the
// conversation log.
package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/initializ/websearch/logging"
	"github.com/initializ/websearch/search"
)

// summaryResults is how many leading results feed a summary.
const summaryResults = 3

// Searcher returns a non-empty result list for a query.
type Searcher interface {
	Search(ctx context.Context, query string) []search.Result
}

// Agent runs searches and turns them into conversational answers.
type Agent struct {
	searcher Searcher
	history  *History
	logger   logging.Logger
}

// New creates an Agent with an empty history.
func New(searcher Searcher, logger logging.Logger) *Agent {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Agent{searcher: searcher, history: &History{}, logger: logger}
}

// Search returns the normalized results for query.
func (a *Agent) Search(ctx context.Context, query string) []search.Result {
	return a.searcher.Search(ctx, query)
}

// History returns the agent's conversation log.
func (a *Agent) History() *History {
	return a.history
}

// Process searches for question, records the exchange, and returns the answer.
func (a *Agent) Process(ctx context.Context, question string) string {
	results := a.searcher.Search(ctx, question)
	a.history.Append(RoleUser, question)

	var response string
	if len(results) > 0 && !results[0].IsNoResults() {
		response = Summarize(question, results)
	} else {
		response = fmt.Sprintf("I searched for information about '%s' but could not find specific current results. "+
			"This could be due to the search API limitations or the specific nature of your question.", question)
	}

	a.history.Append(RoleAssistant, response)
	a.logger.Debug("question processed", map[string]any{
		"results": len(results),
		"turns":   a.history.Len(),
	})
	return response
}

// Summarize renders the leading results as a numbered answer to question.
// Positions are kept even when a placeholder result is skipped.
func Summarize(question string, results []search.Result) string {
	parts := []string{fmt.Sprintf("Based on my web search for '%s', here's what I found:\n", question)}

	if len(results) > summaryResults {
		results = results[:summaryResults]
	}
	for i, r := range results {
		if r.Content == "" || r.IsNoResults() {
			continue
		}
		parts = append(parts, fmt.Sprintf("%d. %s", i+1, r.Content))
		if r.Source != "" {
			parts = append(parts, fmt.Sprintf("   (Source: %s)", r.Source))
		}
		parts = append(parts, "")
	}

	if len(parts) == 1 {
		parts = append(parts, "Unfortunately, I could not find detailed information about this topic from the web search.")
	}
	return strings.Join(parts, "\n")
}

// IsExit reports whether a chat input ends the session.
func IsExit(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "quit", "exit", "bye":
		return true
	}
	return false
}
