package ingest

import "github.com/gmadiyar00/tapssp-project/internal/index"

// Indexer is the consumer interface for the retrieval index.
type Indexer interface {
	Add(content string) (string, error)
	Stats() index.Stats
}

// Result is the outcome of one item in a batch ingestion.
type Result struct {
	ID  string
	Err error
}
