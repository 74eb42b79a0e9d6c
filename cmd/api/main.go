package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobly/internal/app"
	"jobly/internal/config"
	"jobly/internal/database"
	apphttp "jobly/internal/http"
	"jobly/internal/http/handlers"
	"jobly/internal/http/metrics"
	httpmw "jobly/internal/http/middleware"
	"jobly/internal/http/response"
	"jobly/internal/observability"
	"jobly/internal/repository/postgres"
	"jobly/internal/security"
)

func main() {
	if err := run(); err != nil {
		slog.Error("api stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := observability.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
		ReadyTimeout:    cfg.DBReadyTimeout,
	}, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("postgres close failed", slog.String("error", err.Error()))
		}
	}()

	var writeLimiter httpmw.Limiter = httpmw.NewRateLimiter()
	redisClient, err := database.NewRedis(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error("redis unavailable, using in-memory rate limiter", slog.String("error", err.Error()))
	}
	if redisClient != nil {
		writeLimiter = httpmw.NewRedisLimiter(redisClient, "jobly")
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error("redis close failed", slog.String("error", err.Error()))
			}
		}()
	}

	companyRepo := postgres.NewCompanyRepository(db)
	jobRepo := postgres.NewJobRepository(db)

	companyService := app.NewCompanyService(companyRepo, jobRepo, logger)
	jobService := app.NewJobService(jobRepo, logger)

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)
	collector := metrics.NewCollector()
	response.SetErrorCollector(collector)

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		CompanyHandler: handlers.NewCompanyHandler(companyService, jobService),
		JobHandler:     handlers.NewJobHandler(jobService),
		MetricsHandler: handlers.NewMetricsHandler(collector),
		AuthMiddleware: httpmw.NewAuthMiddleware(jwtProvider),
		Metrics:        collector,
		Logger:         logger,
		WriteLimiter:   writeLimiter,
		WriteLimit:     cfg.WriteRateLimitPerMin,
		TrustProxy:     cfg.TrustProxyHeaders,
		RequestTimeout: cfg.RequestTimeout,
	})
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("api listening", slog.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("api shutting down")
	return server.Shutdown(shutdownCtx)
}
