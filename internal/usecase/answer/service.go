// Package answer implements the ask flow: retrieve the most relevant
// passages, then hand them to the external generation collaborator as
// grounding context.
package answer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/gmadiyar00/tapssp-project/internal/domain"
	"github.com/gmadiyar00/tapssp-project/internal/index"
)

// Answer is a generated response together with the passages it was
// grounded on.
type Answer struct {
	Text     string
	Contexts []index.Match
}

// Service orchestrates retrieval and generation.
type Service struct {
	retriever Retriever
	generator domain.Generator
	topK      int
	logger    *zap.Logger
}

// New creates an answer service. generator may be nil, in which case Ask
// returns domain.ErrGeneratorUnavailable.
func New(retriever Retriever, generator domain.Generator, topK int, logger *zap.Logger) *Service {
	if topK <= 0 {
		topK = 3
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{retriever: retriever, generator: generator, topK: topK, logger: logger}
}

// Ask retrieves the topK most relevant passages for the query and asks the
// generator for an answer grounded on them.
func (s *Service) Ask(ctx context.Context, query string) (Answer, error) {
	if s.generator == nil {
		return Answer{}, domain.ErrGeneratorUnavailable
	}

	matches, err := s.retriever.Search(ctx, query, s.topK)
	if err != nil {
		return Answer{}, fmt.Errorf("retrieve context: %w", err)
	}

	contexts := make([]string, len(matches))
	for i, m := range matches {
		contexts[i] = m.Content
	}

	text, err := s.generator.Generate(ctx, query, contexts)
	if err != nil {
		return Answer{}, fmt.Errorf("generate answer: %w", err)
	}

	s.logger.Debug("answer generated",
		zap.Int("contexts", len(contexts)),
		zap.Int("answer_bytes", len(text)),
	)
	return Answer{Text: text, Contexts: matches}, nil
}
