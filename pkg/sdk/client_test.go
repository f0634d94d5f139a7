package tapssp

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type mockGenerator struct {
	answer   string
	err      error
	gotQuery string
	gotCtxs  []string
}

func (m *mockGenerator) Generate(_ context.Context, query string, contexts []string) (string, error) {
	m.gotQuery = query
	m.gotCtxs = contexts
	return m.answer, m.err
}

func TestClient_AddAndSearch(t *testing.T) {
	ctx := context.Background()
	client := New()

	ids := make(map[string]string)
	for _, content := range []string{
		"the cat sat on the mat",
		"dogs chase cats around the yard",
		"quantum computing uses qubits",
	} {
		id, err := client.Add(ctx, content)
		if err != nil {
			t.Fatalf("Add(%q): %v", content, err)
		}
		ids[content] = id
	}

	matches, err := client.Search(ctx, "cat sat mat", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("matches = %d, want 2", len(matches))
	}
	if matches[0].ID != ids["the cat sat on the mat"] {
		t.Errorf("top match = %q, want the cat/mat passage", matches[0].Content)
	}
	if matches[0].Score < matches[1].Score {
		t.Error("scores must be non-increasing")
	}
}

func TestClient_ExactMatchScoresOne(t *testing.T) {
	ctx := context.Background()
	client := New()

	if _, err := client.Add(ctx, "wolves hunt in packs"); err != nil {
		t.Fatal(err)
	}

	matches, err := client.Search(ctx, "wolves hunt in packs", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(matches))
	}
	if math.Abs(matches[0].Score-1.0) > 1e-9 {
		t.Errorf("score = %v, want 1.0", matches[0].Score)
	}
}

func TestClient_DistinctIDsForIdenticalContent(t *testing.T) {
	ctx := context.Background()
	client := New()

	id1, err := client.Add(ctx, "same passage")
	if err != nil {
		t.Fatal(err)
	}
	id2, err := client.Add(ctx, "same passage")
	if err != nil {
		t.Fatal(err)
	}
	if id1 == id2 {
		t.Errorf("identical content must still get distinct ids, got %s twice", id1)
	}
	if st := client.Stats(ctx); st.Documents != 2 {
		t.Errorf("documents = %d, want 2", st.Documents)
	}
}

func TestClient_SearchEmptyIndex(t *testing.T) {
	matches, err := New().Search(context.Background(), "anything", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("matches = %d, want 0", len(matches))
	}
}

func TestClient_SearchValidation(t *testing.T) {
	ctx := context.Background()
	client := New()

	if _, err := client.Search(ctx, "   ", 3); !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("blank query: err = %v, want ErrEmptyQuery", err)
	}
	if _, err := client.Search(ctx, "cat", -1); !errors.Is(err, ErrInvalidTopK) {
		t.Errorf("negative topK: err = %v, want ErrInvalidTopK", err)
	}
	if _, err := client.Add(ctx, "  "); !errors.Is(err, ErrEmptyDocument) {
		t.Errorf("blank content: err = %v, want ErrEmptyDocument", err)
	}
	if _, err := client.Get(ctx, "missing"); !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("missing id: err = %v, want ErrDocumentNotFound", err)
	}
}

func TestClient_AddBatch_PartialFailure(t *testing.T) {
	ctx := context.Background()
	client := New()

	results := client.AddBatch(ctx, []string{"cats purr", "   ", "dogs bark"})
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Error("valid items must succeed")
	}
	if !errors.Is(results[1].Err, ErrEmptyDocument) {
		t.Errorf("blank item: err = %v, want ErrEmptyDocument", results[1].Err)
	}
	if st := client.Stats(ctx); st.Documents != 2 {
		t.Errorf("documents = %d, want 2", st.Documents)
	}
}

func TestClient_Ask(t *testing.T) {
	ctx := context.Background()
	gen := &mockGenerator{answer: "on the mat"}
	client := New(WithGenerator(gen), WithTopK(2))

	for _, content := range []string{
		"the cat sat on the mat",
		"dogs chase cats",
		"qubits are strange",
	} {
		if _, err := client.Add(ctx, content); err != nil {
			t.Fatal(err)
		}
	}

	ans, err := client.Ask(ctx, "where did the cat sit")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if ans.Text != "on the mat" {
		t.Errorf("answer = %q", ans.Text)
	}
	if len(ans.Contexts) != 2 {
		t.Errorf("contexts = %d, want 2", len(ans.Contexts))
	}
	if gen.gotQuery != "where did the cat sit" {
		t.Errorf("generator got query %q", gen.gotQuery)
	}
	if len(gen.gotCtxs) != 2 || !strings.Contains(gen.gotCtxs[0], "mat") {
		t.Errorf("generator contexts = %v", gen.gotCtxs)
	}
}

func TestClient_Ask_NoGenerator(t *testing.T) {
	_, err := New().Ask(context.Background(), "anything")
	if !errors.Is(err, ErrGeneratorUnavailable) {
		t.Errorf("err = %v, want ErrGeneratorUnavailable", err)
	}
}

func TestClient_Ask_GeneratorError(t *testing.T) {
	gen := &mockGenerator{err: ErrGenerationProviderError}
	client := New(WithGenerator(gen))

	_, err := client.Ask(context.Background(), "anything")
	if !errors.Is(err, ErrGenerationProviderError) {
		t.Errorf("err = %v, want ErrGenerationProviderError", err)
	}
}

func TestClient_CustomStopwords(t *testing.T) {
	ctx := context.Background()

	// "cat" filtered out: a query of only stopwords scores everything 0
	// and the lone stored passage still comes back.
	client := New(WithStopwords([]string{"cat"}))
	if _, err := client.Add(ctx, "dogs bark loudly"); err != nil {
		t.Fatal(err)
	}

	matches, err := client.Search(ctx, "cat", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(matches))
	}
	if matches[0].Score != 0 {
		t.Errorf("score = %v, want 0", matches[0].Score)
	}
}

func TestClient_LoadDir(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	files := map[string]string{
		"a.txt":  "Cats purr. Dogs bark.",
		"b.txt":  "Qubits are strange.",
		"c.json": "ignored",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	client := New(WithChunkChars(12))
	added, errs := client.LoadDir(ctx, dir)
	if len(errs) != 0 {
		t.Fatalf("errors: %v", errs)
	}
	// a.txt splits into two sentence chunks, b.txt is one chunk.
	if added != 3 {
		t.Errorf("added = %d, want 3", added)
	}

	matches, err := client.Search(ctx, "qubits", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 || !strings.Contains(matches[0].Content, "Qubits") {
		t.Errorf("matches = %v", matches)
	}
}
