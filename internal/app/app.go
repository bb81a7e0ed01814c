// Package app provides application initialization and lifecycle management.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/garyellow/syllabus-assistant-go/internal/analytics"
	"github.com/garyellow/syllabus-assistant-go/internal/assistant"
	"github.com/garyellow/syllabus-assistant-go/internal/buildinfo"
	"github.com/garyellow/syllabus-assistant-go/internal/config"
	"github.com/garyellow/syllabus-assistant-go/internal/document"
	"github.com/garyellow/syllabus-assistant-go/internal/genai"
	"github.com/garyellow/syllabus-assistant-go/internal/logger"
	"github.com/garyellow/syllabus-assistant-go/internal/metrics"
	"github.com/garyellow/syllabus-assistant-go/internal/r2client"
	"github.com/garyellow/syllabus-assistant-go/internal/rag"
	"github.com/garyellow/syllabus-assistant-go/internal/ratelimit"
	"github.com/garyellow/syllabus-assistant-go/internal/sentry"
	"github.com/garyellow/syllabus-assistant-go/internal/storage"
)

// Answerer answers one question. Implemented by *assistant.Service.
type Answerer interface {
	Answer(ctx context.Context, query string) (*assistant.Answer, error)
}

// Application manages the application lifecycle and dependencies.
type Application struct {
	cfg       *config.Config
	logger    *logger.Logger
	metrics   *metrics.Metrics
	registry  *prometheus.Registry
	db        *storage.DB // nil when the interaction log is disabled
	documents *document.Store
	completer genai.Completer // nil when no credential is configured
	reporter  *analytics.Reporter
	answerer  Answerer
	limiter   *ratelimit.PerKey // nil when rate limiting is disabled
	server    *http.Server
	wg        sync.WaitGroup
}

// Initialize creates and initializes a new application with all dependencies.
func Initialize(ctx context.Context, cfg *config.Config) (*Application, error) {
	log := logger.Setup(logger.Options{
		Level:               cfg.LogLevel,
		BetterstackToken:    cfg.BetterStackToken,
		BetterstackEndpoint: cfg.BetterStackEndpoint,
	})
	log = log.WithField("service", "syllabus-assistant")
	if host, err := os.Hostname(); err == nil && host != "" {
		log = log.WithField("instance_id", host)
	}

	// Package-level slog.*Context() calls go through the ContextHandler too.
	slog.SetDefault(log.Logger)

	log.WithField("version", buildinfo.Release()).Info("Initializing application...")
	if log.RemoteEnabled() {
		log.WithField("endpoint", cfg.BetterStackEndpoint).Info("Better Stack logging enabled")
	}

	if err := sentry.Initialize(sentry.Config{
		DSN:         cfg.SentryDSN,
		Token:       cfg.SentryToken,
		Host:        cfg.SentryHost,
		Environment: cfg.SentryEnvironment,
		Release:     sentryRelease(cfg),
		SampleRate:  cfg.SentrySampleRate,
	}); err != nil {
		log.WithError(err).Warn("Sentry initialization failed, error tracking disabled")
	} else if cfg.SentryEnabled() {
		log.WithField("environment", cfg.SentryEnvironment).Info("Sentry error tracking enabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewBuildInfoCollector(),
	)
	m := metrics.New(registry)

	var r2 *r2client.Client
	if cfg.R2Enabled() {
		client, err := r2client.New(ctx, r2client.Config{
			Endpoint:    cfg.R2Endpoint(),
			AccessKeyID: cfg.R2AccessKeyID,
			SecretKey:   cfg.R2SecretAccessKey,
			BucketName:  cfg.R2BucketName,
		})
		if err != nil {
			return nil, fmt.Errorf("r2: %w", err)
		}
		r2 = client
		log.WithField("bucket", cfg.R2BucketName).Info("R2 storage enabled")
	}

	var source document.Source = document.NewFileSource(cfg.SyllabusPath)
	if cfg.SyllabusR2Key != "" && r2 != nil {
		source = document.NewR2Source(r2, cfg.SyllabusR2Key)
	}
	documents := document.NewStore(source, cfg.DocumentRecheck, log, m)

	var db *storage.DB
	var sinks []analytics.Sink
	if r2 != nil {
		sinks = append(sinks, analytics.NewR2Sink(r2, cfg.R2AnalyticsPrefix))
	}
	if cfg.InteractionsDBPath != "" {
		var err error
		db, err = storage.New(ctx, cfg.InteractionsDBPath, storage.Options{
			BusyTimeout:     config.DatabaseBusyTimeout,
			ConnMaxLifetime: config.DatabaseConnMaxLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("database: %w", err)
		}
		sinks = append(sinks, analytics.NewSQLiteSink(db))
		log.WithField("path", cfg.InteractionsDBPath).Info("Interaction log enabled")
	}
	reporter := analytics.NewReporter(analytics.Multi(sinks...), log, m)

	provider := genai.Provider(cfg.LLMProvider)
	completer, err := genai.NewCompleter(ctx, genai.Config{
		Provider: provider,
		APIKey:   cfg.CompletionAPIKey(),
		BaseURL:  completionBaseURL(cfg),
		Model:    cfg.Model,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("completion: %w", err)
	}
	if completer == nil {
		log.WithField("env", cfg.CompletionAPIKeyEnv()).
			Warn("No completion credential, generative answers will fail")
	} else {
		log.WithField("provider", provider.String()).WithField("model", cfg.Model).Info("Completion enabled")
	}

	service := assistant.NewService(assistant.Options{
		Documents:     documents,
		Completer:     completer,
		Provider:      provider,
		CredentialEnv: cfg.CompletionAPIKeyEnv(),
		Ranker:        rag.NewSectionRanker(cfg.MaxContextChars, log),
		Composer:      assistant.NewComposer(cfg.CoursePageURL, cfg.AltAssistantURL, cfg.AltAssistantName),
		Reporter:      reporter,
		Metrics:       m,
		Logger:        log,
	})

	app := &Application{
		cfg:       cfg,
		logger:    log,
		metrics:   m,
		registry:  registry,
		db:        db,
		documents: documents,
		completer: completer,
		reporter:  reporter,
		answerer:  service,
	}
	if cfg.RateLimit > 0 {
		app.limiter = ratelimit.NewPerKey(ratelimit.Config{PerMinute: cfg.RateLimit})
		log.WithField("per_minute", cfg.RateLimit).Info("Per-client rate limit enabled")
	}

	gin.SetMode(gin.ReleaseMode)
	app.server = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.router(),
		ReadHeaderTimeout: config.HTTPRead,
		ReadTimeout:       config.HTTPRead,
		WriteTimeout:      config.HTTPWrite,
		IdleTimeout:       config.HTTPIdle,
	}

	log.Info("Initialization complete")
	return app, nil
}

func sentryRelease(cfg *config.Config) string {
	if cfg.SentryRelease != "" {
		return cfg.SentryRelease
	}
	return buildinfo.Release()
}

func completionBaseURL(cfg *config.Config) string {
	if cfg.LLMProvider == config.ProviderOpenAI {
		return cfg.OpenAIBaseURL
	}
	return ""
}

// router builds the gin engine with all routes and middleware.
func (a *Application) router() *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	if sentry.IsEnabled() {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	r.Use(requestIDMiddleware())
	r.Use(securityHeadersMiddleware())
	r.Use(loggingMiddleware(a.logger))

	r.GET("/livez", a.livenessCheck)
	r.HEAD("/livez", a.livenessCheck)
	r.GET("/readyz", a.readinessCheck)
	r.HEAD("/readyz", a.readinessCheck)
	r.GET("/metrics",
		basicAuthMiddleware("metrics", a.cfg.MetricsUsername, a.cfg.MetricsPassword),
		metricsHandler(a.registry))

	ask := r.Group("/api/ask", corsMiddleware())
	ask.OPTIONS("", preflight)
	ask.POST("", rateLimitMiddleware(a.limiter, a.metrics), a.handleAsk)
	r.NoMethod(corsMiddleware(), methodNotAllowed)

	return r
}

func (a *Application) livenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

func (a *Application) features() map[string]bool {
	return map[string]bool{
		"generative":      a.completer != nil,
		"analytics":       a.reporter != nil && a.reporter.Enabled(),
		"interaction_log": a.db != nil,
		"r2_document":     a.cfg.SyllabusR2Key != "" && a.cfg.R2Enabled(),
		"error_tracking":  sentry.IsEnabled(),
	}
}

func (a *Application) readinessCheck(c *gin.Context) {
	ctx := c.Request.Context()

	if a.db != nil {
		if err := a.db.Ping(ctx); err != nil {
			a.logger.WithError(err).Warn("Readiness check failed: database unavailable")
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"reason": "database unavailable",
			})
			return
		}
	}

	snap := a.documents.Snapshot(ctx)
	c.JSON(http.StatusOK, gin.H{
		"status":  "ready",
		"version": buildinfo.Release(),
		"document": gin.H{
			"version":  snap.Version,
			"sections": len(snap.Sections),
			"empty":    snap.Empty(),
		},
		"features": a.features(),
	})
}

// Run starts the HTTP server and blocks until SIGINT/SIGTERM, then shuts
// down gracefully.
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.wg.Go(func() {
		a.primeDocument(ctx)
	})

	errCh := make(chan error, 1)
	go func() {
		a.logger.WithField("port", a.cfg.Port).Info("Starting HTTP server")
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-quit:
		a.logger.WithField("signal", sig.String()).Info("Received shutdown signal")
	case err := <-errCh:
		a.logger.WithError(err).Error("HTTP server error")
		runErr = err
	}

	cancel()
	a.wg.Wait()

	if err := a.shutdown(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// primeDocument loads the syllabus once so the first request does not pay for it.
func (a *Application) primeDocument(ctx context.Context) {
	snap := a.documents.Snapshot(ctx)
	a.logger.WithField("sections", len(snap.Sections)).
		WithField("empty", snap.Empty()).
		Debug("Syllabus primed")
}

// shutdown stops accepting requests, waits for in-flight ones, then
// closes resources.
func (a *Application) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	a.logger.Info("Stopping HTTP server...")
	var shutdownErr error
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.WithError(err).Error("HTTP server shutdown error")
		shutdownErr = err
	}

	a.logger.Info("Closing resources...")
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if a.completer != nil {
		if err := a.completer.Close(); err != nil {
			a.logger.WithError(err).WithField("component", "completer").Error("Component close error")
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.WithError(err).WithField("component", "database").Error("Component close error")
	}

	if sentry.IsEnabled() {
		sentry.Flush(config.SentryFlush)
	}

	a.logger.Info("Shutdown complete")
	if err := a.logger.Shutdown(shutdownCtx); err != nil {
		slog.Warn("Logger shutdown timed out", "error", err)
	}
	return shutdownErr
}
