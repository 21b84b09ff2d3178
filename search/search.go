package search

import (
	"context"
	"fmt"

	"github.com/initializ/websearch/config"
	"github.com/initializ/websearch/logging"
)

// Searcher wraps a Provider and guarantees a renderable, non-empty result list.
type Searcher struct {
	provider Provider
	limit    int
	logger   logging.Logger
}

// NewSearcher creates a Searcher. A non-positive limit falls back to the
// default of 5.
func NewSearcher(provider Provider, limit int, logger logging.Logger) *Searcher {
	if limit <= 0 {
		limit = config.DefaultLimit
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Searcher{provider: provider, limit: limit, logger: logger}
}

// NewProvider builds the provider selected by cfg.
func NewProvider(cfg config.SearchConfig) (Provider, error) {
	switch cfg.Provider {
	case config.ProviderInstant, "":
		return NewInstantProvider(cfg.Endpoint, cfg.Timeout, cfg.UserAgent), nil
	case config.ProviderLite:
		return NewLiteProvider(cfg.Endpoint, cfg.Timeout, cfg.UserAgent), nil
	default:
		return nil, fmt.Errorf("unknown search provider %q: must be instant or lite", cfg.Provider)
	}
}

// Limit returns the default number of related entries per search.
func (s *Searcher) Limit() int { return s.limit }

// Search runs query with the default limit.
func (s *Searcher) Search(ctx context.Context, query string) []Result {
	return s.SearchN(ctx, query, s.limit)
}

// SearchN runs query, taking at most limit related entries. It never fails:
// provider errors become a single error placeholder and an empty answer
// becomes a single no-results placeholder.
func (s *Searcher) SearchN(ctx context.Context, query string, limit int) []Result {
	results, err := s.provider.Search(ctx, query, limit)
	if err != nil {
		s.logger.Warn("search failed", map[string]any{
			"provider": s.provider.Name(),
			"query":    query,
			"error":    err.Error(),
		})
		return []Result{ErrorResult(query, err)}
	}
	if len(results) == 0 {
		s.logger.Debug("search returned nothing", map[string]any{"provider": s.provider.Name(), "query": query})
		return []Result{NoResultsResult(query)}
	}
	s.logger.Debug("search completed", map[string]any{
		"provider": s.provider.Name(),
		"query":    query,
		"results":  len(results),
	})
	return results
}

// ErrorResult is the placeholder returned when the provider fails.
func ErrorResult(query string, err error) Result {
	return Result{
		Title:   "Search Error",
		Content: fmt.Sprintf("I encountered an error while searching: %v. Let me provide what I know about \"%s\".", err, query),
		Source:  SourceError,
	}
}

// NoResultsResult is the placeholder returned when nothing was found.
func NoResultsResult(query string) Result {
	return Result{
		Title:   "Search Result",
		Content: fmt.Sprintf("%s \"%s\" but could not find specific results. Let me provide what I know about this topic.", NoResultsPrefix, query),
		Source:  SourceNoResults,
	}
}
