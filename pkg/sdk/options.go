package tapssp

import (
	"go.uber.org/zap"

	"github.com/gmadiyar00/tapssp-project/internal/domain"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	stopwords  []string
	topK       int
	maxTopK    int
	chunkChars int

	generator domain.Generator

	openaiAPIKey  string
	openaiBaseURL string
	openaiModel   string
	generation    domain.GenerationConfig

	logger *zap.Logger
}

// WithStopwords overrides the built-in English stopword list. An empty
// (non-nil) slice disables stopword filtering entirely.
func WithStopwords(words []string) Option {
	return optionFunc(func(c *clientConfig) {
		c.stopwords = words
	})
}

// WithTopK sets the default number of passages Ask retrieves as context.
// Default: 3.
func WithTopK(k int) Option {
	return optionFunc(func(c *clientConfig) {
		c.topK = k
	})
}

// WithMaxTopK caps the top_k a single Search call may ask for.
// Default: 100.
func WithMaxTopK(k int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxTopK = k
	})
}

// WithChunkChars bounds chunk size in characters for LoadDir.
// Default 0 ingests whole files.
func WithChunkChars(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.chunkChars = n
	})
}

// WithGenerator sets a custom generation provider for Ask.
func WithGenerator(g Generator) Option {
	return optionFunc(func(c *clientConfig) {
		if g != nil {
			c.generator = &generatorAdapter{inner: g}
		}
	})
}

// WithOpenAI configures generation against an OpenAI-compatible chat API.
// baseURL may be empty for the default OpenAI endpoint.
func WithOpenAI(apiKey, baseURL, model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.openaiAPIKey = apiKey
		c.openaiBaseURL = baseURL
		c.openaiModel = model
	})
}

// WithGenerationParams tunes sampling for the generation provider.
func WithGenerationParams(maxTokens int, temperature, topP, repeatPenalty float32) Option {
	return optionFunc(func(c *clientConfig) {
		c.generation = domain.GenerationConfig{
			MaxTokens:     maxTokens,
			Temperature:   temperature,
			TopP:          topP,
			RepeatPenalty: repeatPenalty,
		}
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}
