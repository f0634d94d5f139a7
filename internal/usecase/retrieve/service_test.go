package retrieve

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/gmadiyar00/tapssp-project/internal/domain"
	"github.com/gmadiyar00/tapssp-project/internal/index"
)

// mockSearcher implements Searcher for tests.
type mockSearcher struct {
	searchFn func(query string, topK int) ([]index.Match, error)
	getFn    func(id string) (index.Match, error)
}

func (m *mockSearcher) Search(query string, topK int) ([]index.Match, error) {
	if m.searchFn != nil {
		return m.searchFn(query, topK)
	}
	return nil, nil
}

func (m *mockSearcher) Get(id string) (index.Match, error) {
	if m.getFn != nil {
		return m.getFn(id)
	}
	return index.Match{}, domain.ErrDocumentNotFound
}

func (m *mockSearcher) Stats() index.Stats { return index.Stats{} }

func TestSearch_ClampsTopK(t *testing.T) {
	var gotTopK int
	idx := &mockSearcher{searchFn: func(_ string, topK int) ([]index.Match, error) {
		gotTopK = topK
		return nil, nil
	}}
	svc := New(idx, 3, 10, nil)

	if _, err := svc.Search(context.Background(), "q", 500); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotTopK != 10 {
		t.Errorf("topK = %d, want clamped to 10", gotTopK)
	}
}

func TestSearch_PropagatesEmptyQuery(t *testing.T) {
	idx := &mockSearcher{searchFn: func(string, int) ([]index.Match, error) {
		return nil, domain.ErrEmptyQuery
	}}
	svc := New(idx, 3, 10, nil)

	_, err := svc.Search(context.Background(), "  ", 3)
	if !errors.Is(err, domain.ErrEmptyQuery) {
		t.Errorf("err = %v, want ErrEmptyQuery", err)
	}
}

func TestContents(t *testing.T) {
	matches := []index.Match{
		{ID: "a", Content: "first", Score: 0.9},
		{ID: "b", Content: "second", Score: 0.1},
	}
	got := Contents(matches)
	want := []string{"first", "second"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Contents() = %v, want %v", got, want)
	}
}

func TestDefaultTopK(t *testing.T) {
	svc := New(&mockSearcher{}, 5, 10, nil)
	if svc.DefaultTopK() != 5 {
		t.Errorf("DefaultTopK() = %d, want 5", svc.DefaultTopK())
	}
	svc = New(&mockSearcher{}, 0, 0, nil)
	if svc.DefaultTopK() != 3 {
		t.Errorf("DefaultTopK() = %d, want fallback 3", svc.DefaultTopK())
	}
}
