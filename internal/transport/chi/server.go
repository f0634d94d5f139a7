// Package chi exposes the retrieval services over an HTTP JSON API.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/gmadiyar00/tapssp-project/internal/domain"
	"github.com/gmadiyar00/tapssp-project/internal/index"
	"github.com/gmadiyar00/tapssp-project/internal/usecase/answer"
	"github.com/gmadiyar00/tapssp-project/internal/usecase/health"
	"github.com/gmadiyar00/tapssp-project/internal/usecase/ingest"
	"github.com/gmadiyar00/tapssp-project/internal/usecase/retrieve"
)

// Error codes returned in JSON error responses.
const (
	codeBadRequest        = "bad_request"
	codeEmptyQuery        = "empty_query"
	codeEmptyDocument     = "empty_document"
	codeInvalidTopK       = "invalid_top_k"
	codeDocumentNotFound  = "document_not_found"
	codeGeneratorError    = "generation_provider_error"
	codeGeneratorDisabled = "generation_not_configured"
	codeUnauthorized      = "unauthorized"
	codeInternalError     = "internal_error"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Server wires the use-case services to HTTP handlers.
type Server struct {
	ingest   *ingest.Service
	retrieve *retrieve.Service
	answer   *answer.Service
	health   *health.Service
	logger   *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	ingestSvc *ingest.Service,
	retrieveSvc *retrieve.Service,
	answerSvc *answer.Service,
	healthSvc *health.Service,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		ingest:   ingestSvc,
		retrieve: retrieveSvc,
		answer:   answerSvc,
		health:   healthSvc,
		logger:   logger,
	}
}

// Register attaches all routes to the router.
func (s *Server) Register(r chi.Router) {
	r.Post("/documents", s.addDocument)
	r.Post("/documents/batch", s.addDocumentBatch)
	r.Get("/documents/{id}", s.getDocument)
	r.Post("/search", s.search)
	r.Post("/ask", s.ask)
	r.Get("/stats", s.stats)
	r.Get("/health", s.healthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

type addDocumentRequest struct {
	Content string `json:"content"`
}

type addDocumentResponse struct {
	ID string `json:"id"`
}

// addDocument handles POST /documents.
func (s *Server) addDocument(w http.ResponseWriter, r *http.Request) {
	var req addDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	id, err := s.ingest.Add(r.Context(), req.Content)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, addDocumentResponse{ID: id})
}

type addBatchRequest struct {
	Contents []string `json:"contents"`
}

type batchItemResult struct {
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

type addBatchResponse struct {
	Results []batchItemResult `json:"results"`
	Added   int               `json:"added"`
}

// addDocumentBatch handles POST /documents/batch. A failing item is
// reported in place; the rest of the batch still ingests.
func (s *Server) addDocumentBatch(w http.ResponseWriter, r *http.Request) {
	var req addBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Contents) == 0 {
		writeError(w, http.StatusBadRequest, codeBadRequest, "contents is required")
		return
	}

	results := s.ingest.AddBatch(r.Context(), req.Contents)
	resp := addBatchResponse{Results: make([]batchItemResult, len(results))}
	for i, res := range results {
		if res.Err != nil {
			resp.Results[i] = batchItemResult{Error: res.Err.Error()}
			continue
		}
		resp.Results[i] = batchItemResult{ID: res.ID}
		resp.Added++
	}
	writeJSON(w, http.StatusOK, resp)
}

type documentResponse struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// getDocument handles GET /documents/{id}.
func (s *Server) getDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	match, err := s.retrieve.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, documentResponse{ID: match.ID, Content: match.Content})
}

type searchRequest struct {
	Query string `json:"query"`
	TopK  *int   `json:"top_k"`
}

type searchResult struct {
	ID      string  `json:"id"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

// search handles POST /search. An omitted top_k falls back to the
// configured default; an explicit zero returns an empty result.
func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	topK := s.retrieve.DefaultTopK()
	if req.TopK != nil {
		topK = *req.TopK
	}

	matches, err := s.retrieve.Search(r.Context(), req.Query, topK)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, searchResponse{Results: toSearchResults(matches)})
}

type askRequest struct {
	Query string `json:"query"`
}

type askResponse struct {
	Answer   string         `json:"answer"`
	Contexts []searchResult `json:"contexts"`
}

// ask handles POST /ask.
func (s *Server) ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	ans, err := s.answer.Ask(r.Context(), req.Query)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, askResponse{
		Answer:   ans.Text,
		Contexts: toSearchResults(ans.Contexts),
	})
}

type statsResponse struct {
	Documents      int `json:"documents"`
	VocabularySize int `json:"vocabulary_size"`
}

// stats handles GET /stats.
func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	st := s.retrieve.Stats(r.Context())
	writeJSON(w, http.StatusOK, statsResponse{
		Documents:      st.Documents,
		VocabularySize: st.VocabularySize,
	})
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// healthCheck handles GET /health.
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())
	checks := make(map[string]string, len(report.Checks))
	for name, res := range report.Checks {
		checks[name] = string(res)
	}

	status := http.StatusOK
	if report.Status != health.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, healthResponse{Status: string(report.Status), Checks: checks})
}

func toSearchResults(matches []index.Match) []searchResult {
	results := make([]searchResult, len(matches))
	for i, m := range matches {
		results[i] = searchResult{ID: m.ID, Content: m.Content, Score: m.Score}
	}
	return results
}

// handleDomainError maps sentinel errors to HTTP status codes.
func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyQuery):
		writeError(w, http.StatusBadRequest, codeEmptyQuery, "query is required")
	case errors.Is(err, domain.ErrEmptyDocument):
		writeError(w, http.StatusBadRequest, codeEmptyDocument, "content is required")
	case errors.Is(err, domain.ErrInvalidTopK):
		writeError(w, http.StatusBadRequest, codeInvalidTopK, "top_k must be non-negative")
	case errors.Is(err, domain.ErrDocumentNotFound):
		writeError(w, http.StatusNotFound, codeDocumentNotFound, "document not found")
	case errors.Is(err, domain.ErrGeneratorUnavailable):
		writeError(w, http.StatusNotImplemented, codeGeneratorDisabled, "no generation provider configured")
	case errors.Is(err, domain.ErrGenerationProviderError):
		writeError(w, http.StatusBadGateway, codeGeneratorError, err.Error())
	default:
		s.logger.Error("unhandled error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
