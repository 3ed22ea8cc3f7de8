package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/clinic-readiness-api/api/swagger"
	"github.com/noah-isme/clinic-readiness-api/internal/engine"
	"github.com/noah-isme/clinic-readiness-api/internal/handler"
	internalmiddleware "github.com/noah-isme/clinic-readiness-api/internal/middleware"
	"github.com/noah-isme/clinic-readiness-api/internal/repository"
	"github.com/noah-isme/clinic-readiness-api/internal/service"
	"github.com/noah-isme/clinic-readiness-api/pkg/cache"
	"github.com/noah-isme/clinic-readiness-api/pkg/config"
	"github.com/noah-isme/clinic-readiness-api/pkg/database"
	"github.com/noah-isme/clinic-readiness-api/pkg/jobs"
	"github.com/noah-isme/clinic-readiness-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/clinic-readiness-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/clinic-readiness-api/pkg/middleware/requestid"
	"github.com/noah-isme/clinic-readiness-api/pkg/validation"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	checks := map[string]handler.ReadinessCheck{}

	var repo service.ChildRepository
	switch cfg.Store.Driver {
	case config.StorePostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer db.Close()
		repo = repository.NewChildRepository(db)
		checks["postgres"] = pingDB(db)
	default:
		repo = repository.NewMemoryChildRepository()
	}
	logr.Info("record store ready", zap.String("driver", cfg.Store.Driver))

	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Readiness.CacheEnabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, readiness cache disabled", zap.Error(err))
		} else {
			defer client.Close()
			cacheRepo = repository.NewCacheRepository(client, logr)
			checks["redis"] = pingRedis(client)
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Readiness.CacheTTL, logr, cacheRepo != nil)

	eng := engine.New(nil)
	validate := validation.New()
	store := service.NewRecordStore(repo, cacheSvc, logr)

	readinessSvc := service.NewReadinessService(store, eng, cacheSvc, logr, service.ReadinessServiceConfig{
		ChildTTL:     cfg.Readiness.CacheTTL,
		DashboardTTL: cfg.Readiness.DashboardCacheTTL,
	})
	if cacheSvc.Enabled() && cfg.Readiness.WarmWorkers > 0 {
		warmer := service.NewDashboardWarmer(readinessSvc, jobs.QueueConfig{
			Workers:    cfg.Readiness.WarmWorkers,
			MaxRetries: 2,
			Logger:     logr,
		})
		warmer.Start(ctx)
		defer warmer.Stop()
		store.OnInvalidate(warmer.Schedule)
	}

	handlers := handler.Handlers{
		Children:    handler.NewChildHandler(service.NewChildService(store, validate, logr)),
		Assessments: handler.NewAssessmentHandler(service.NewAssessmentService(store, eng, metricsSvc, validate, logr)),
		Goals:       handler.NewGoalHandler(service.NewGoalService(store, eng, metricsSvc, validate, logr)),
		Behavior: handler.NewBehaviorHandler(
			service.NewBehaviorService(store, eng, metricsSvc, validate, logr),
			service.NewReinforcerService(store, eng, validate, logr),
		),
		Readiness: handler.NewReadinessHandler(readinessSvc),
	}
	metricsHandler := handler.NewMetricsHandler(metricsSvc, checks)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if cfg.Metrics.Enabled {
		r.Use(internalmiddleware.Metrics(metricsSvc))
		r.GET("/metrics", metricsHandler.Prometheus)
	}

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)

	if cfg.Docs.Enabled && cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r.Group(cfg.APIPrefix), handlers)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func pingDB(db *sqlx.DB) handler.ReadinessCheck {
	return func(ctx context.Context) error {
		return db.PingContext(ctx)
	}
}

func pingRedis(client *redis.Client) handler.ReadinessCheck {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}
