// Package index implements the in-memory TF-IDF retrieval core: the
// vocabulary, postings and IDF state plus the append-only document store.
package index

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/gmadiyar00/tapssp-project/internal/domain"
	"github.com/gmadiyar00/tapssp-project/internal/domain/document"
	"github.com/gmadiyar00/tapssp-project/internal/tokenize"
	"github.com/gmadiyar00/tapssp-project/internal/vectorize"
)

// Match is a single search hit.
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

// termCounts caches a document's tokenization outcome so embedding
// recomputation never re-tokenizes the corpus.
type termCounts struct {
	counts map[string]int
	total  int
}

// Index owns the triple (vocabulary, IDF table, document store). Add takes
// the write lock and mutates all three atomically; Search takes the read
// lock, so readers never observe a half-updated vector space.
//
// Every Add recomputes the embeddings of all stored documents against the
// new vocabulary and IDF table. That keeps every vector in one consistent
// space of equal dimensionality, at O(documents x vocabulary) cost per
// ingestion, which is acceptable for the small corpora this index targets.
type Index struct {
	mu  sync.RWMutex
	tok *tokenize.Tokenizer

	docs     map[string]*document.Document
	order    []string // insertion order of ids
	cached   map[string]termCounts
	vocab    []string // canonical axis order: sorted terms
	vocabSet map[string]struct{}
	postings map[string]map[string]struct{} // term -> ids of documents containing it
	idf      map[string]float64
}

// New creates an empty index using the given tokenizer.
func New(tok *tokenize.Tokenizer) *Index {
	return &Index{
		tok:      tok,
		docs:     make(map[string]*document.Document),
		cached:   make(map[string]termCounts),
		vocabSet: make(map[string]struct{}),
		postings: make(map[string]map[string]struct{}),
		idf:      make(map[string]float64),
	}
}

// Add ingests a passage and returns its generated id. Identifiers are
// UUIDv4, never derived from content: identical passages get distinct
// entries. Blank content is rejected with domain.ErrEmptyDocument; content
// that tokenizes to nothing (all stopwords) is stored with a zero vector.
func (ix *Index) Add(content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", domain.ErrEmptyDocument
	}

	id := uuid.NewString()
	doc, err := document.New(id, content)
	if err != nil {
		return "", err
	}

	tokens := ix.tok.Tokenize(content)
	counts, total := vectorize.TermCounts(tokens)

	ix.mu.Lock()
	defer ix.mu.Unlock()

	grew := false
	for term := range counts {
		if _, ok := ix.vocabSet[term]; !ok {
			ix.vocabSet[term] = struct{}{}
			ix.vocab = append(ix.vocab, term)
			grew = true
		}
		ids, ok := ix.postings[term]
		if !ok {
			ids = make(map[string]struct{})
			ix.postings[term] = ids
		}
		ids[id] = struct{}{}
	}
	if grew {
		sort.Strings(ix.vocab)
	}

	ix.docs[id] = &doc
	ix.order = append(ix.order, id)
	ix.cached[id] = termCounts{counts: counts, total: total}

	ix.recompute()

	return id, nil
}

// recompute rebuilds the IDF table from the postings index and refreshes
// every stored embedding. Callers must hold the write lock.
func (ix *Index) recompute() {
	n := len(ix.docs)
	ix.idf = make(map[string]float64, len(ix.vocab))
	for _, term := range ix.vocab {
		ix.idf[term] = vectorize.IDF(n, len(ix.postings[term]))
	}
	for id, doc := range ix.docs {
		tc := ix.cached[id]
		doc.SetEmbedding(vectorize.Weights(tc.counts, tc.total, ix.vocab, ix.idf))
	}
}

// Search scores every stored document against the query and returns at
// most topK matches ordered by cosine similarity descending, ties broken
// by ascending document id. A blank query yields domain.ErrEmptyQuery and
// a negative topK domain.ErrInvalidTopK; an empty store or topK of zero
// yields an empty result.
func (ix *Index) Search(query string, topK int) ([]Match, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrEmptyQuery
	}
	if topK < 0 {
		return nil, domain.ErrInvalidTopK
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	tokens := ix.tok.Tokenize(query)
	counts, total := vectorize.TermCounts(tokens)
	queryVec := vectorize.Weights(counts, total, ix.vocab, ix.idf)

	matches := make([]Match, 0, len(ix.docs))
	for _, id := range ix.order {
		doc := ix.docs[id]
		matches = append(matches, Match{
			ID:      id,
			Content: doc.Content(),
			Score:   vectorize.Cosine(doc.Embedding(), queryVec),
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].ID < matches[j].ID
	})

	if topK < len(matches) {
		matches = matches[:topK]
	}
	return matches, nil
}

// Get returns a stored passage by id.
func (ix *Index) Get(id string) (Match, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	doc, ok := ix.docs[id]
	if !ok {
		return Match{}, domain.ErrDocumentNotFound
	}
	return Match{ID: id, Content: doc.Content()}, nil
}

// Count returns the number of stored documents.
func (ix *Index) Count() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.docs)
}

// Stats returns a corpus size snapshot.
func (ix *Index) Stats() Stats {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return Stats{Documents: len(ix.docs), VocabularySize: len(ix.vocab)}
}

// IDF returns the current inverse document frequency of a term, or 0 if
// the term has never been seen.
func (ix *Index) IDF(term string) float64 {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.idf[term]
}
