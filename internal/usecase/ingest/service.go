// Package ingest feeds passages into the retrieval index: single adds,
// soft-failing batches, and startup corpus loads from disk.
package ingest

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gmadiyar00/tapssp-project/internal/loader"
	"github.com/gmadiyar00/tapssp-project/internal/metrics"
)

// Service handles passage ingestion.
type Service struct {
	idx        Indexer
	chunkChars int
	logger     *zap.Logger
}

// New creates an ingestion service. chunkChars bounds chunk size for
// directory loads; 0 ingests whole files.
func New(idx Indexer, chunkChars int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{idx: idx, chunkChars: chunkChars, logger: logger}
}

// Add ingests a single passage and returns its id.
func (s *Service) Add(ctx context.Context, content string) (string, error) {
	start := time.Now()

	id, err := s.idx.Add(content)
	if err != nil {
		metrics.IngestTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("add passage: %w", err)
	}

	metrics.IngestTotal.WithLabelValues("success").Inc()
	metrics.IngestDuration.Observe(time.Since(start).Seconds())
	s.observeSize()

	s.logger.Debug("passage ingested",
		zap.String("id", id),
		zap.Int("content_bytes", len(content)),
		zap.Duration("took", time.Since(start)),
	)
	return id, nil
}

// AddBatch ingests passages one by one. A failing passage is reported in
// its Result and never prevents the rest of the batch from being ingested.
func (s *Service) AddBatch(ctx context.Context, contents []string) []Result {
	results := make([]Result, len(contents))
	for i, content := range contents {
		id, err := s.Add(ctx, content)
		results[i] = Result{ID: id, Err: err}
		if err != nil {
			s.logger.Warn("batch item failed", zap.Int("item", i), zap.Error(err))
		}
	}
	return results
}

// LoadDir recursively ingests every .txt file under dir, chunked at
// sentence boundaries. Returns the number of passages added; per-file read
// errors are logged and returned without aborting the load.
func (s *Service) LoadDir(ctx context.Context, dir string) (int, []error) {
	files, errs := loader.LoadTextFiles(dir)
	for _, err := range errs {
		s.logger.Warn("corpus file skipped", zap.Error(err))
	}

	added := 0
	for _, f := range files {
		for _, chunk := range loader.SplitChunks(f.Content, s.chunkChars) {
			if _, err := s.Add(ctx, chunk); err != nil {
				errs = append(errs, fmt.Errorf("ingest %s: %w", f.Path, err))
				continue
			}
			added++
		}
	}

	s.logger.Info("corpus loaded",
		zap.String("dir", dir),
		zap.Int("files", len(files)),
		zap.Int("passages", added),
		zap.Int("errors", len(errs)),
	)
	return added, errs
}

func (s *Service) observeSize() {
	stats := s.idx.Stats()
	metrics.DocumentsTotal.Set(float64(stats.Documents))
	metrics.VocabularySize.Set(float64(stats.VocabularySize))
}
