package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/gmadiyar00/tapssp-project/internal/config"
	"github.com/gmadiyar00/tapssp-project/internal/domain"
	"github.com/gmadiyar00/tapssp-project/internal/index"
	logpkg "github.com/gmadiyar00/tapssp-project/internal/logger"
	"github.com/gmadiyar00/tapssp-project/internal/metrics"
	"github.com/gmadiyar00/tapssp-project/internal/tokenize"
	chiTransport "github.com/gmadiyar00/tapssp-project/internal/transport/chi"
	openaiGen "github.com/gmadiyar00/tapssp-project/internal/transport/openai"
	answeruc "github.com/gmadiyar00/tapssp-project/internal/usecase/answer"
	healthuc "github.com/gmadiyar00/tapssp-project/internal/usecase/health"
	ingestuc "github.com/gmadiyar00/tapssp-project/internal/usecase/ingest"
	retrieveuc "github.com/gmadiyar00/tapssp-project/internal/usecase/retrieve"
	"github.com/gmadiyar00/tapssp-project/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting tapssp API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Int("default_top_k", cfg.Retrieval.TopK),
	)

	// Register retrieval metrics explicitly (no init())
	metrics.RegisterRetrievalMetrics()

	// Retrieval core — composition root
	tok := tokenize.New(cfg.Retrieval.Stopwords)
	idx := index.New(tok)

	ingestSvc := ingestuc.New(idx, cfg.Corpus.ChunkChars, logger)
	retrieveSvc := retrieveuc.New(idx, cfg.Retrieval.TopK, cfg.Retrieval.MaxTopK, logger)

	// Generation provider is optional; without a model the /ask endpoint
	// reports generation as not configured.
	var generator domain.Generator
	var genChecker healthuc.GenerationChecker
	if cfg.Generation.Model != "" {
		g := openaiGen.NewGenerator(&openaiGen.Config{
			APIKey:  cfg.Generation.APIKey,
			BaseURL: cfg.Generation.BaseURL,
			Model:   cfg.Generation.Model,
			Generation: domain.GenerationConfig{
				MaxTokens:     cfg.Generation.MaxTokens,
				Temperature:   cfg.Generation.Temperature,
				TopP:          cfg.Generation.TopP,
				RepeatPenalty: cfg.Generation.RepeatPenalty,
			},
			Logger: logger,
		})
		generator = g
		genChecker = g
		logger.Info("Generation provider configured",
			zap.String("model", cfg.Generation.Model),
			zap.String("base_url", cfg.Generation.BaseURL),
		)
	}

	answerSvc := answeruc.New(retrieveSvc, generator, cfg.Retrieval.TopK, logger)
	healthSvc := healthuc.New(genChecker)

	// Startup corpus load
	if cfg.Corpus.DocsDir != "" {
		added, errs := ingestSvc.LoadDir(context.Background(), cfg.Corpus.DocsDir)
		if len(errs) > 0 {
			logger.Warn("corpus loaded with errors",
				zap.Int("passages", added),
				zap.Int("errors", len(errs)),
			)
		}
	}

	// Create chi server
	server := chiTransport.NewServer(ingestSvc, retrieveSvc, answerSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
