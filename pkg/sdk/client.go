package tapssp

import (
	"context"
	"fmt"

	"github.com/gmadiyar00/tapssp-project/internal/domain"
	"github.com/gmadiyar00/tapssp-project/internal/index"
	"github.com/gmadiyar00/tapssp-project/internal/tokenize"
	openaiGen "github.com/gmadiyar00/tapssp-project/internal/transport/openai"
	answeruc "github.com/gmadiyar00/tapssp-project/internal/usecase/answer"
	ingestuc "github.com/gmadiyar00/tapssp-project/internal/usecase/ingest"
	retrieveuc "github.com/gmadiyar00/tapssp-project/internal/usecase/retrieve"
)

// Generator produces an answer for a query grounded on retrieved
// passages. Implement it to plug a custom generation backend into Ask.
type Generator interface {
	Generate(ctx context.Context, query string, contexts []string) (string, error)
}

// Match is a retrieved passage with its similarity score in [0, 1].
type Match struct {
	ID      string
	Content string
	Score   float64
}

// Stats is a snapshot of the corpus size.
type Stats struct {
	Documents      int
	VocabularySize int
}

// Answer is a generated response with the passages it was grounded on.
type Answer struct {
	Text     string
	Contexts []Match
}

// BatchResult is the outcome of one item in AddBatch.
type BatchResult struct {
	ID  string
	Err error
}

// Client is the embedded tapssp entry point.
type Client struct {
	ingestSvc   *ingestuc.Service
	retrieveSvc *retrieveuc.Service
	answerSvc   *answeruc.Service
}

// New creates a Client with an empty in-memory index.
func New(opts ...Option) *Client {
	cfg := &clientConfig{generation: domain.DefaultGenerationConfig()}
	for _, o := range opts {
		o.apply(cfg)
	}

	idx := index.New(tokenize.New(cfg.stopwords))

	generator := cfg.generator
	if generator == nil && cfg.openaiModel != "" {
		generator = openaiGen.NewGenerator(&openaiGen.Config{
			APIKey:     cfg.openaiAPIKey,
			BaseURL:    cfg.openaiBaseURL,
			Model:      cfg.openaiModel,
			Generation: cfg.generation,
			Logger:     cfg.logger,
		})
	}

	ingestSvc := ingestuc.New(idx, cfg.chunkChars, cfg.logger)
	retrieveSvc := retrieveuc.New(idx, cfg.topK, cfg.maxTopK, cfg.logger)
	answerSvc := answeruc.New(retrieveSvc, generator, cfg.topK, cfg.logger)

	return &Client{
		ingestSvc:   ingestSvc,
		retrieveSvc: retrieveSvc,
		answerSvc:   answerSvc,
	}
}

// Add ingests a passage and returns its generated id.
func (c *Client) Add(ctx context.Context, content string) (string, error) {
	return c.ingestSvc.Add(ctx, content)
}

// AddBatch ingests passages one by one; a failing item never aborts the
// rest of the batch.
func (c *Client) AddBatch(ctx context.Context, contents []string) []BatchResult {
	results := c.ingestSvc.AddBatch(ctx, contents)
	out := make([]BatchResult, len(results))
	for i, r := range results {
		out[i] = BatchResult{ID: r.ID, Err: r.Err}
	}
	return out
}

// LoadDir recursively ingests every .txt file under dir, chunked at
// sentence boundaries. Returns the number of passages added.
func (c *Client) LoadDir(ctx context.Context, dir string) (int, []error) {
	return c.ingestSvc.LoadDir(ctx, dir)
}

// Search returns at most topK passages most relevant to the query, best
// first. topK zero returns an empty result; negative is an error.
func (c *Client) Search(ctx context.Context, query string, topK int) ([]Match, error) {
	matches, err := c.retrieveSvc.Search(ctx, query, topK)
	if err != nil {
		return nil, err
	}
	return toMatches(matches), nil
}

// Get returns a stored passage by id.
func (c *Client) Get(ctx context.Context, id string) (Match, error) {
	m, err := c.retrieveSvc.Get(ctx, id)
	if err != nil {
		return Match{}, err
	}
	return Match{ID: m.ID, Content: m.Content, Score: m.Score}, nil
}

// Ask retrieves the most relevant passages and asks the configured
// generator for an answer grounded on them. Without a generator it
// returns ErrGeneratorUnavailable.
func (c *Client) Ask(ctx context.Context, query string) (Answer, error) {
	ans, err := c.answerSvc.Ask(ctx, query)
	if err != nil {
		return Answer{}, err
	}
	return Answer{Text: ans.Text, Contexts: toMatches(ans.Contexts)}, nil
}

// Stats returns a corpus size snapshot.
func (c *Client) Stats(ctx context.Context) Stats {
	st := c.retrieveSvc.Stats(ctx)
	return Stats{Documents: st.Documents, VocabularySize: st.VocabularySize}
}

func toMatches(matches []index.Match) []Match {
	out := make([]Match, len(matches))
	for i, m := range matches {
		out[i] = Match{ID: m.ID, Content: m.Content, Score: m.Score}
	}
	return out
}

// generatorAdapter wraps the public Generator to satisfy domain.Generator.
type generatorAdapter struct {
	inner Generator
}

func (a *generatorAdapter) Generate(ctx context.Context, query string, contexts []string) (string, error) {
	text, err := a.inner.Generate(ctx, query, contexts)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	return text, nil
}
