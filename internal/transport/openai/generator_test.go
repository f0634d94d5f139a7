package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/gmadiyar00/tapssp-project/internal/domain"
	"github.com/gmadiyar00/tapssp-project/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterRetrievalMetrics()
	os.Exit(m.Run())
}

// chatCompletionResponse mirrors the OpenAI-compatible chat API response.
type chatCompletionResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

func completionResponse(content string) chatCompletionResponse {
	var resp chatCompletionResponse
	resp.ID = "chatcmpl-1"
	resp.Object = "chat.completion"
	resp.Model = "test-model"
	resp.Choices = append(resp.Choices, struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	}{})
	resp.Choices[0].Message.Role = "assistant"
	resp.Choices[0].Message.Content = content
	resp.Choices[0].FinishReason = "stop"
	resp.Usage.TotalTokens = 20
	return resp
}

func newGenerator(baseURL string) *Generator {
	return NewGenerator(&Config{
		APIKey:     "test-key",
		BaseURL:    baseURL,
		Model:      "test-model",
		Generation: domain.DefaultGenerationConfig(),
		Logger:     zap.NewNop(),
	})
}

func TestGenerate(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionResponse("cats are felines"))
	}))
	defer server.Close()

	gen := newGenerator(server.URL)
	got, err := gen.Generate(context.Background(), "what is a cat", []string{"cats are felines", "cats purr"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "cats are felines" {
		t.Errorf("answer = %q", got)
	}

	messages, ok := gotBody["messages"].([]any)
	if !ok || len(messages) != 2 {
		t.Fatalf("messages = %v", gotBody["messages"])
	}
	user := messages[1].(map[string]any)["content"].(string)
	if !strings.Contains(user, "cats purr") || !strings.Contains(user, "Question: what is a cat") {
		t.Errorf("user prompt missing context or question: %q", user)
	}
}

func TestGenerate_EmptyQuery(t *testing.T) {
	gen := newGenerator("http://localhost:1")
	_, err := gen.Generate(context.Background(), "   ", nil)
	if !errors.Is(err, domain.ErrEmptyQuery) {
		t.Errorf("err = %v, want ErrEmptyQuery", err)
	}
}

func TestGenerate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "backend down"}}`))
	}))
	defer server.Close()

	gen := newGenerator(server.URL)
	_, err := gen.Generate(context.Background(), "query", nil)
	if !errors.Is(err, domain.ErrGenerationProviderError) {
		t.Errorf("err = %v, want ErrGenerationProviderError", err)
	}
}

func TestBuildPrompt_NoContext(t *testing.T) {
	got := buildPrompt("why", nil)
	if got != "Question: why" {
		t.Errorf("prompt = %q", got)
	}
}
