// Package retrieve exposes validated similarity search over the index.
package retrieve

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gmadiyar00/tapssp-project/internal/index"
	"github.com/gmadiyar00/tapssp-project/internal/metrics"
)

// Service handles search requests.
type Service struct {
	idx         Searcher
	defaultTopK int
	maxTopK     int
	logger      *zap.Logger
}

// New creates a search service. defaultTopK is applied by transports when
// a request leaves top_k unset; maxTopK caps what a single request may ask
// for.
func New(idx Searcher, defaultTopK, maxTopK int, logger *zap.Logger) *Service {
	if defaultTopK <= 0 {
		defaultTopK = 3
	}
	if maxTopK <= 0 {
		maxTopK = 100
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{idx: idx, defaultTopK: defaultTopK, maxTopK: maxTopK, logger: logger}
}

// DefaultTopK returns the configured default result count.
func (s *Service) DefaultTopK() int { return s.defaultTopK }

// Search returns at most topK passages most relevant to the query,
// best first. topK above the configured maximum is clamped; zero returns
// an empty result, negative is an error.
func (s *Service) Search(ctx context.Context, query string, topK int) ([]index.Match, error) {
	if topK > s.maxTopK {
		topK = s.maxTopK
	}

	start := time.Now()
	matches, err := s.idx.Search(query, topK)
	if err != nil {
		metrics.SearchTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("search: %w", err)
	}

	metrics.SearchTotal.WithLabelValues("success").Inc()
	metrics.SearchDuration.Observe(time.Since(start).Seconds())

	s.logger.Debug("search executed",
		zap.Int("top_k", topK),
		zap.Int("matches", len(matches)),
		zap.Duration("took", time.Since(start)),
	)
	return matches, nil
}

// Contents returns just the passage texts of matches, most relevant first.
func Contents(matches []index.Match) []string {
	contents := make([]string, len(matches))
	for i, m := range matches {
		contents[i] = m.Content
	}
	return contents
}

// Get returns a stored passage by id.
func (s *Service) Get(ctx context.Context, id string) (index.Match, error) {
	match, err := s.idx.Get(id)
	if err != nil {
		return index.Match{}, fmt.Errorf("get document: %w", err)
	}
	return match, nil
}

// Stats returns a corpus size snapshot.
func (s *Service) Stats(ctx context.Context) index.Stats {
	return s.idx.Stats()
}
