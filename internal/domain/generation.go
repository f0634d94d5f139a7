package domain

import "context"

// Generator is the external text-generation collaborator. It receives the
// user query together with retrieved context passages and returns the
// generated answer.
type Generator interface {
	Generate(ctx context.Context, query string, contexts []string) (string, error)
}

// HealthChecker verifies generation provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// GenerationConfig carries the sampling parameters handed to the generator.
type GenerationConfig struct {
	MaxTokens     int
	Temperature   float32
	TopP          float32
	RepeatPenalty float32
}

// DefaultGenerationConfig returns the sampling defaults used when the
// configuration leaves them unset.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		MaxTokens:     1000,
		Temperature:   0.7,
		TopP:          0.9,
		RepeatPenalty: 1.1,
	}
}
