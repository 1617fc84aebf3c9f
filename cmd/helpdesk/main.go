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
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Ritam-Vaskar/helpdesk-odoo/internal/config"
	dbRedis "github.com/Ritam-Vaskar/helpdesk-odoo/internal/db/redis"
	logpkg "github.com/Ritam-Vaskar/helpdesk-odoo/internal/logger"
	"github.com/Ritam-Vaskar/helpdesk-odoo/internal/metrics"
	complaintrepo "github.com/Ritam-Vaskar/helpdesk-odoo/internal/repository/complaint"
	chiTransport "github.com/Ritam-Vaskar/helpdesk-odoo/internal/transport/chi"
	openaiTransport "github.com/Ritam-Vaskar/helpdesk-odoo/internal/transport/openai"
	assistantuc "github.com/Ritam-Vaskar/helpdesk-odoo/internal/usecase/assistant"
	complaintuc "github.com/Ritam-Vaskar/helpdesk-odoo/internal/usecase/complaint"
	healthuc "github.com/Ritam-Vaskar/helpdesk-odoo/internal/usecase/health"
	rankinguc "github.com/Ritam-Vaskar/helpdesk-odoo/internal/usecase/ranking"
	searchuc "github.com/Ritam-Vaskar/helpdesk-odoo/internal/usecase/search"
	"github.com/Ritam-Vaskar/helpdesk-odoo/internal/version"
)

const defaultEmbeddingDim = 1536

func main() {
	// .env is optional; real deployments set variables in the environment.
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting helpdesk API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.Register()
	metrics.RegisterHTTP()

	requestTimeout := time.Duration(cfg.LLM.RequestTimeoutSec) * time.Second

	// The chat model is resolved once at startup from the candidate list;
	// startup fails if none is available.
	generator, err := openaiTransport.NewGenerator(ctx, openaiTransport.GeneratorConfig{
		APIKey:          cfg.LLM.APIKey,
		BaseURL:         cfg.LLM.BaseURL,
		ModelCandidates: cfg.LLM.ChatModels,
		Timeout:         requestTimeout,
		MaxRetries:      cfg.LLM.MaxRetries,
		Logger:          logger,
	})
	if err != nil {
		logger.Fatal("Failed to create generation client", zap.Error(err))
	}

	embedder := openaiTransport.NewEmbedder(openaiTransport.EmbedderConfig{
		APIKey:     cfg.LLM.APIKey,
		BaseURL:    cfg.LLM.BaseURL,
		Model:      cfg.LLM.EmbeddingModel,
		Dimensions: cfg.LLM.EmbeddingDimensions,
		Timeout:    requestTimeout,
		MaxRetries: cfg.LLM.MaxRetries,
		Logger:     logger,
	})
	logger.Info("LLM clients created",
		zap.String("chat_model", generator.Model()),
		zap.String("embedding_model", cfg.LLM.EmbeddingModel),
	)

	vectorDim := cfg.LLM.EmbeddingDimensions
	if vectorDim == 0 {
		vectorDim = defaultEmbeddingDim
	}

	repo := complaintrepo.New(store, vectorDim).WithHNSW(complaintrepo.HNSWConfig{
		M:           cfg.Search.HNSWM,
		EFConstruct: cfg.Search.HNSWEFConstruct,
	})
	if err := repo.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure vector index", zap.Error(err))
	}

	complaintSvc := complaintuc.New(repo, embedder)
	searchSvc := searchuc.New(complaintSvc, cfg.Search.SimilarityThreshold, cfg.Search.EnhancedThreshold)
	rankingSvc := rankinguc.New(generator, cfg.Ranking.MaxConcurrent, logger)
	assistantSvc := assistantuc.New(generator)
	healthSvc := healthuc.New(store, generator)

	server := chiTransport.NewServer(
		assistantSvc, complaintSvc, searchSvc, rankingSvc, healthSvc,
		cfg.Search.MaxResults, logger,
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Routes(r)

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
						"error": "internal error",
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
