package retrieve

import "github.com/gmadiyar00/tapssp-project/internal/index"

// Searcher is the consumer interface for the retrieval index.
type Searcher interface {
	Search(query string, topK int) ([]index.Match, error)
	Get(id string) (index.Match, error)
	Stats() index.Stats
}
