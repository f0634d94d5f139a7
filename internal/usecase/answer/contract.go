package answer

import (
	"context"

	"github.com/gmadiyar00/tapssp-project/internal/index"
)

// Retriever supplies the grounding passages for a query.
type Retriever interface {
	Search(ctx context.Context, query string, topK int) ([]index.Match, error)
}
