package document

import (
	"fmt"
	"strings"
)

// Document is an ingested passage paired with its TF-IDF embedding
// (immutable id and content; the embedding is replaced by the index
// whenever the vocabulary grows).
type Document struct {
	id        string
	content   string
	embedding []float64
}

// New validates and creates a Document. The id is generated by the caller
// and must be unique but is otherwise opaque; content must not be blank.
func New(id, content string) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("document ID is required")
	}
	if strings.TrimSpace(content) == "" {
		return Document{}, fmt.Errorf("content is required")
	}
	return Document{id: id, content: content}, nil
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// Content returns the raw passage text.
func (d *Document) Content() string { return d.content }

// Embedding returns the TF-IDF weight vector.
func (d *Document) Embedding() []float64 { return d.embedding }

// SetEmbedding replaces the embedding in place.
func (d *Document) SetEmbedding(v []float64) { d.embedding = v }
