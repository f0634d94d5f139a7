package tapssp

import "github.com/gmadiyar00/tapssp-project/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrEmptyQuery              = domain.ErrEmptyQuery
	ErrEmptyDocument           = domain.ErrEmptyDocument
	ErrInvalidTopK             = domain.ErrInvalidTopK
	ErrDocumentNotFound        = domain.ErrDocumentNotFound
	ErrGenerationProviderError = domain.ErrGenerationProviderError
	ErrGeneratorUnavailable    = domain.ErrGeneratorUnavailable
)
