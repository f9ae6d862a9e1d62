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

	_ "github.com/ZanzyTHEbar/epi-index/docs"
	"github.com/ZanzyTHEbar/epi-index/internal/api"
	"github.com/ZanzyTHEbar/epi-index/internal/config"
	apperrors "github.com/ZanzyTHEbar/epi-index/internal/errors"
	"github.com/ZanzyTHEbar/epi-index/internal/indices"
	"github.com/ZanzyTHEbar/epi-index/internal/monitoring"
	"github.com/ZanzyTHEbar/epi-index/internal/ratelimit"
)

// @title        Epidemiological Index API
// @version      1.0.0
// @description  Computes vector-borne and rodent-borne surveillance indices and flags high-risk values.
// @BasePath     /api/v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := monitoring.NewLoggerWithWriter(os.Stdout, monitoring.ParseLevel(cfg.LogLevel))
	slog.SetDefault(logger.Logger)

	if err := run(cfg, logger); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *monitoring.Logger) error {
	gin.SetMode(cfg.GinMode)

	engine, err := indices.NewEngine(cfg.Thresholds)
	if err != nil {
		return apperrors.NewConfigurationError("invalid risk thresholds", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, err := ratelimit.NewRedisClient(ctx, ratelimit.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		// keep serving with in-memory limits
		slog.Warn("Redis unavailable, falling back to in-memory rate limiting", "error", err)
	}
	defer apperrors.SafeClose(redisClient, "redis")

	metrics := monitoring.NewMetrics()
	limiterConfig := ratelimit.DefaultConfig()
	limiterConfig.IPLimitPerMin = cfg.RateLimitPerMin
	limiterConfig.BurstMultiplier = cfg.RateLimitBurstMultiplier
	limiter := ratelimit.NewRateLimiter(redisClient, limiterConfig, metrics)
	defer limiter.Close()

	router := api.NewRouter(api.Dependencies{
		Engine:         engine,
		Metrics:        metrics,
		Logger:         logger,
		Limiter:        limiter,
		AllowedOrigins: cfg.AllowedOrigins,
		EnableHSTS:     cfg.EnableHSTS,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.SystemLogger("server_start", "listening on :"+cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.SystemLogger("server_shutdown", "draining connections")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
