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

	"github.com/relief-cloud/persondex/internal/config"
	dbRedis "github.com/relief-cloud/persondex/internal/db/redis"
	"github.com/relief-cloud/persondex/internal/indexer"
	logpkg "github.com/relief-cloud/persondex/internal/logger"
	"github.com/relief-cloud/persondex/internal/metrics"
	personrepo "github.com/relief-cloud/persondex/internal/repository/person"
	reporepo "github.com/relief-cloud/persondex/internal/repository/repo"
	subrepo "github.com/relief-cloud/persondex/internal/repository/subscription"
	chiTransport "github.com/relief-cloud/persondex/internal/transport/chi"
	sendgridTransport "github.com/relief-cloud/persondex/internal/transport/sendgrid"
	healthuc "github.com/relief-cloud/persondex/internal/usecase/health"
	importeruc "github.com/relief-cloud/persondex/internal/usecase/importer"
	personuc "github.com/relief-cloud/persondex/internal/usecase/person"
	repouc "github.com/relief-cloud/persondex/internal/usecase/repo"
	searchuc "github.com/relief-cloud/persondex/internal/usecase/search"
	subscribeuc "github.com/relief-cloud/persondex/internal/usecase/subscribe"
	"github.com/relief-cloud/persondex/internal/version"
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

	logger.Info("Starting persondex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:      cfg.Database.Addrs,
		Username:   cfg.Database.Username,
		Password:   cfg.Database.Password,
		DB:         cfg.Database.DB,
		MaxFilters: cfg.Database.MaxFilters,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	// Mailer is optional: no API key disables notifications.
	var mailer *sendgridTransport.Mailer
	if cfg.Notify.SendGridAPIKey != "" {
		mailer = sendgridTransport.New(
			cfg.Notify.SendGridAPIKey, cfg.Notify.SenderName, cfg.Notify.SenderAddr,
		)
		logger.Info("Notification mailer enabled", zap.String("sender", cfg.Notify.SenderAddr))
	}

	// Pass nil interface (not typed nil pointer!) if the mailer is not configured.
	// Go gotcha: (*Mailer)(nil) wrapped in an interface != nil.
	var noteMailer subscribeuc.Mailer
	var mailChecker healthuc.MailChecker
	if mailer != nil {
		noteMailer = mailer
		mailChecker = mailer
	}

	// Create repositories (domain-native, no adapters)
	repoRepo := reporepo.New(store)
	personRepo := personrepo.New(store)
	subRepo := subrepo.New(store)

	idx := indexer.New(logger)

	// Create use case services
	repoSvc := repouc.New(repoRepo)
	subSvc := subscribeuc.New(subRepo, repoRepo, personRepo, noteMailer, logger)
	personSvc := personuc.New(personRepo, repoRepo, idx, subRepo, subSvc)
	searchSvc := searchuc.New(personRepo, repoRepo, logger).
		WithBatchCap(cfg.Search.BatchCap)
	importSvc := importeruc.New(personSvc).WithMaxRows(cfg.Import.MaxRows)
	healthSvc := healthuc.New(store, mailChecker)

	// Create chi server
	server := chiTransport.NewServer(
		repoSvc, personSvc, searchSvc, subSvc, importSvc, healthSvc, logger,
	).WithMaxResults(cfg.Search.MaxResults)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
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
