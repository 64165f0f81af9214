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

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/studyflowapp/studyflow-scheduling/internal/config"
	"github.com/studyflowapp/studyflow-scheduling/internal/handler"
	"github.com/studyflowapp/studyflow-scheduling/internal/health"
	"github.com/studyflowapp/studyflow-scheduling/internal/infra/aiclient"
	"github.com/studyflowapp/studyflow-scheduling/internal/infra/calendarsync"
	"github.com/studyflowapp/studyflow-scheduling/internal/infra/repository"
	"github.com/studyflowapp/studyflow-scheduling/internal/infra/runrecorder"
	"github.com/studyflowapp/studyflow-scheduling/internal/observability"
	"github.com/studyflowapp/studyflow-scheduling/internal/observability/logging"
	"github.com/studyflowapp/studyflow-scheduling/internal/observability/metrics"
	"github.com/studyflowapp/studyflow-scheduling/internal/observability/middleware"
	"github.com/studyflowapp/studyflow-scheduling/internal/service/extractor"
	"github.com/studyflowapp/studyflow-scheduling/internal/service/heuristic"
	"github.com/studyflowapp/studyflow-scheduling/internal/service/planner"
	"github.com/studyflowapp/studyflow-scheduling/internal/service/slotfinder"
)

// Version is set via ldflags at build time
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	obs, err := initObservability(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	scheduleMetrics, err := metrics.NewScheduleMetrics()
	if err != nil {
		slog.Error("failed to initialize schedule metrics", slog.String("error", err.Error()))
		return 1
	}

	resultRecorderCfg := runrecorder.LoadConfig()
	resultRecorder, err := runrecorder.NewRecorder(ctx, resultRecorderCfg)
	if err != nil {
		slog.Error("failed to initialize schedule result recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := resultRecorder.Close(); err != nil {
			slog.Warn("failed to close schedule result recorder", slog.String("error", err.Error()))
		}
	}()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}()

	slog.Info("redis connected",
		slog.String("addr", cfg.Redis.Addr),
	)

	scheduleRepo := repository.NewScheduleRepository(redisClient)

	finder := slotfinder.NewFinder(cfg.Scheduler.WorkdayStartHour, cfg.Scheduler.WorkdayEndHour)
	suggester := slotfinder.NewSuggester(
		cfg.Scheduler.WorkdayStartHour,
		cfg.Scheduler.WorkdayEndHour,
		cfg.Scheduler.SuggestHorizonDays,
	)
	scheduler := heuristic.NewScheduler(finder, cfg.Scheduler.WorkdayEndHour, scheduleMetrics)

	var optimizerClient aiclient.Generator
	if cfg.Optimizer.Enabled() {
		optimizerClient = aiclient.NewClient(
			cfg.Optimizer.BaseURL,
			cfg.Optimizer.APIKey,
			cfg.Optimizer.Model,
			time.Duration(cfg.Optimizer.TimeoutSeconds)*time.Second,
		)
		slog.Info("optimizer escalation enabled",
			slog.String("model", cfg.Optimizer.Model),
			slog.Float64("confidence_threshold", cfg.Optimizer.ConfidenceThreshold),
		)
	} else {
		slog.Info("optimizer escalation disabled, plans stay heuristic-only")
	}

	planService := planner.NewService(
		scheduler,
		optimizerClient,
		cfg.Optimizer.Model,
		cfg.Optimizer.ConfidenceThreshold,
		resultRecorder,
		scheduleMetrics,
	)

	var syncer calendarsync.Syncer
	if cfg.Sync.Enabled() {
		syncer = calendarsync.NewClient(
			cfg.Sync.CalendarSyncURL,
			time.Duration(cfg.Sync.TimeoutSeconds)*time.Second,
		)
		slog.Info("calendar sync enabled", slog.String("url", cfg.Sync.CalendarSyncURL))
	}

	var extractorGenerator aiclient.Generator
	if cfg.Extractor.Enabled() {
		extractorGenerator = aiclient.NewClient(
			cfg.Extractor.BaseURL,
			cfg.Extractor.APIKey,
			cfg.Extractor.Model,
			time.Duration(cfg.Extractor.TimeoutSeconds)*time.Second,
		)
	}
	extractService := extractor.NewService(extractorGenerator)

	scheduleHandler := handler.NewScheduleHandler(planService, scheduleRepo, syncer)
	suggestHandler := handler.NewSuggestHandler(suggester)
	extractHandler := handler.NewExtractHandler(extractService, cfg.Extractor.MaxUploadBytes)

	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready", "/metrics"},
		Module:      logging.Module("scheduling"),
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	healthChecker := health.NewChecker(redisClient, cfg.Optimizer.Enabled(), Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	v1 := r.Group("/api/v1")
	{
		v1.POST("/schedule", scheduleHandler.HandleSchedule)
		v1.POST("/schedule/preview", scheduleHandler.HandleSchedulePreview)
		v1.GET("/schedule/:week", scheduleHandler.HandleGetWeek)
		v1.GET("/schedule/:week/ics", scheduleHandler.HandleExportICS)
		v1.POST("/tasks/suggest", suggestHandler.HandleSuggest)
		v1.POST("/documents/extract", extractHandler.HandleExtract)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.Int("workday_start_hour", cfg.Scheduler.WorkdayStartHour),
			slog.Int("workday_end_hour", cfg.Scheduler.WorkdayEndHour),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}

func initObservability(ctx context.Context, cfg *config.Config) (*observability.Resources, error) {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "scheduling"
	}

	env := logging.EnvDev
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     serviceName,
			Version:  Version,
			Revision: "",
		},
		Environment:   env,
		LogLevel:      cfg.LogLevel,
		SamplingRate:  1.0,
		DefaultModule: logging.Module("scheduling"),
	})
}
