package domain

import "errors"

var (
	// ErrEmptyQuery signals a query that is blank after trimming.
	ErrEmptyQuery = errors.New("empty query")
	// ErrEmptyDocument signals document content that is blank after trimming.
	ErrEmptyDocument = errors.New("empty document")
	// ErrInvalidTopK signals a negative top-k value.
	ErrInvalidTopK = errors.New("top_k must be non-negative")
	// ErrDocumentNotFound signals a missing document.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrGenerationProviderError signals a generation provider failure.
	ErrGenerationProviderError = errors.New("generation provider error")
	// ErrGeneratorUnavailable signals that no generation provider is configured.
	ErrGeneratorUnavailable = errors.New("generator not configured")
)
