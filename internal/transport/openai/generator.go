// Package openai implements the generation collaborator against any
// OpenAI-compatible chat completion API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/gmadiyar00/tapssp-project/internal/domain"
	"github.com/gmadiyar00/tapssp-project/internal/metrics"
)

// Generator is a generation provider using the OpenAI-compatible chat API.
type Generator struct {
	client *openai.Client
	model  string
	gen    domain.GenerationConfig
	logger *zap.Logger
}

// Config holds the generation provider settings.
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	Generation domain.GenerationConfig
	Logger     *zap.Logger
}

// NewGenerator creates an OpenAI-compatible generation provider.
func NewGenerator(cfg *Config) *Generator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		gen:    cfg.Generation,
		logger: logger,
	}
}

// Generate implements domain.Generator. The retrieved passages become a
// context block ahead of the question, mirroring an instruct prompt.
func (g *Generator) Generate(ctx context.Context, query string, contexts []string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", domain.ErrEmptyQuery
	}

	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "Answer the question using only the provided context. If the context does not contain the answer, say so.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(query, contexts),
			},
		},
		MaxTokens:   g.gen.MaxTokens,
		Temperature: g.gen.Temperature,
		TopP:        g.gen.TopP,
		// The API has no direct repeat_penalty knob; frequency penalty
		// is its closest equivalent (penalty = repeat_penalty - 1).
		FrequencyPenalty: g.gen.RepeatPenalty - 1,
	}

	start := time.Now()
	resp, err := g.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		metrics.GenerationRequestsTotal.WithLabelValues(g.model, "error").Inc()
		return "", parseAPIError(err)
	}
	if len(resp.Choices) == 0 {
		metrics.GenerationRequestsTotal.WithLabelValues(g.model, "error").Inc()
		return "", fmt.Errorf("empty completion response: %w", domain.ErrGenerationProviderError)
	}

	metrics.GenerationRequestsTotal.WithLabelValues(g.model, "success").Inc()
	metrics.GenerationRequestDuration.WithLabelValues(g.model).Observe(duration.Seconds())

	g.logger.Debug("completion received",
		zap.String("model", g.model),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
		zap.Duration("took", duration),
	)
	return resp.Choices[0].Message.Content, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (g *Generator) HealthCheck(ctx context.Context) error {
	if _, err := g.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// buildPrompt assembles the context block and question.
func buildPrompt(query string, contexts []string) string {
	if len(contexts) == 0 {
		return "Question: " + query
	}
	var b strings.Builder
	b.WriteString("Use the following context to answer the question:\n\n")
	b.WriteString(strings.Join(contexts, "\n\n"))
	b.WriteString("\n\nQuestion: ")
	b.WriteString(query)
	return b.String()
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrGenerationProviderError.
func parseAPIError(err error) error {
	wrap := domain.ErrGenerationProviderError

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("generation API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("generation API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("generation request failed: %w", wrap)
}
