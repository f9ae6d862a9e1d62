package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"golang.org/x/time/rate"

	"github.com/ZanzyTHEbar/epi-index/internal/monitoring"
	"github.com/ZanzyTHEbar/epi-index/internal/resilience"
)

// Config holds rate limiter configuration
type Config struct {
	IPLimitPerMin   int // requests per minute per client IP
	BurstMultiplier int // in-memory burst capacity relative to the limit
	CleanupInterval time.Duration
}

// DefaultConfig returns default rate limiting configuration. Survey forms
// recompute on every keystroke, so the per-minute budget is generous
func DefaultConfig() Config {
	return Config{
		IPLimitPerMin:   120,
		BurstMultiplier: 2,
		CleanupInterval: time.Hour,
	}
}

// Result represents the result of a rate limit check
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

// RateLimiter provides distributed rate limiting with Redis and in-memory fallback
type RateLimiter struct {
	redisLimiter *redis_rate.Limiter
	redisClient  *RedisClient
	breaker      *resilience.Breaker
	config       Config
	metrics      *monitoring.Metrics

	fallbackLimiters map[string]*rate.Limiter
	fallbackMutex    sync.Mutex

	done      chan struct{}
	closeOnce sync.Once
}

// NewRateLimiter creates a new rate limiter with Redis and in-memory fallback
func NewRateLimiter(redisClient *RedisClient, config Config, metrics *monitoring.Metrics) *RateLimiter {
	if config.BurstMultiplier < 1 {
		config.BurstMultiplier = 1
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = time.Hour
	}

	rl := &RateLimiter{
		redisClient:      redisClient,
		breaker:          resilience.NewBreaker(resilience.DefaultBreakerConfig()),
		config:           config,
		metrics:          metrics,
		fallbackLimiters: make(map[string]*rate.Limiter),
		done:             make(chan struct{}),
	}

	if redisClient.IsEnabled() {
		rl.redisLimiter = redis_rate.NewLimiter(redisClient.GetClient())
		slog.Info("Redis rate limiter initialized")
	} else {
		slog.Warn("Redis unavailable, using in-memory rate limiting only")
	}

	go rl.cleanupFallbackLimiters()

	return rl
}

// Close stops the background cleanup
func (rl *RateLimiter) Close() {
	rl.closeOnce.Do(func() { close(rl.done) })
}

func ipKey(ip string) string {
	return fmt.Sprintf("ratelimit:ip:%s", ip)
}

// AllowIP checks if an IP address may make another request this minute
func (rl *RateLimiter) AllowIP(ctx context.Context, ip string) (*Result, error) {
	return rl.allow(ctx, ipKey(ip), rl.config.IPLimitPerMin, time.Minute)
}

// InvalidateIP resets the budget of a single IP
func (rl *RateLimiter) InvalidateIP(ctx context.Context, ip string) error {
	key := ipKey(ip)

	rl.fallbackMutex.Lock()
	delete(rl.fallbackLimiters, key)
	rl.fallbackMutex.Unlock()

	if rl.redisClient.IsEnabled() && rl.redisLimiter != nil {
		if err := rl.redisLimiter.Reset(ctx, key); err != nil {
			return fmt.Errorf("failed to reset redis rate limit: %w", err)
		}
	}
	return nil
}

func (rl *RateLimiter) allow(ctx context.Context, key string, limit int, period time.Duration) (*Result, error) {
	if rl.redisClient.IsEnabled() && rl.redisLimiter != nil {
		var result *Result
		err := rl.breaker.Call(func() (err error) {
			result, err = rl.allowRedis(ctx, key, limit, period)
			return err
		})
		if err == nil {
			return result, nil
		}
		// an open breaker skips Redis without counting another error
		if !errors.Is(err, resilience.ErrOpen) {
			slog.Warn("Redis rate limit check failed, using fallback", "key", key, "error", err)
			if rl.metrics != nil {
				rl.metrics.IncrementRateLimitRedisError()
			}
		}
	}

	if rl.metrics != nil {
		rl.metrics.IncrementRateLimitFallback()
	}
	return rl.allowFallback(key, limit, period), nil
}

func (rl *RateLimiter) allowRedis(ctx context.Context, key string, limit int, period time.Duration) (*Result, error) {
	res, err := rl.redisLimiter.Allow(ctx, key, redis_rate.Limit{
		Rate:   limit,
		Burst:  limit,
		Period: period,
	})
	if err != nil {
		return nil, fmt.Errorf("redis rate limit check failed: %w", err)
	}

	return &Result{
		Allowed:    res.Allowed > 0,
		Limit:      res.Limit.Rate,
		Remaining:  res.Remaining,
		ResetAt:    time.Now().Add(res.ResetAfter),
		RetryAfter: res.RetryAfter,
	}, nil
}

func (rl *RateLimiter) allowFallback(key string, limit int, period time.Duration) *Result {
	rl.fallbackMutex.Lock()
	limiter, exists := rl.fallbackLimiters[key]
	if !exists {
		burst := limit * rl.config.BurstMultiplier
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(float64(limit)/period.Seconds()), burst)
		rl.fallbackLimiters[key] = limiter
	}
	rl.fallbackMutex.Unlock()

	now := time.Now()
	allowed := limiter.AllowN(now, 1)

	remaining := int(limiter.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}

	result := &Result{
		Allowed:   allowed,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   now.Add(period),
	}
	if !allowed && limit > 0 {
		// time until one token is back
		result.RetryAfter = period / time.Duration(limit)
	}
	return result
}

func (rl *RateLimiter) cleanupFallbackLimiters() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.fallbackMutex.Lock()
			if len(rl.fallbackLimiters) > 1000 {
				slog.Info("Cleaning up fallback rate limiters", "count", len(rl.fallbackLimiters))
				rl.fallbackLimiters = make(map[string]*rate.Limiter)
			}
			rl.fallbackMutex.Unlock()
		}
	}
}

// ServicesHealth pings Redis and reports it with the breaker state. A successful
// ping closes the breaker so requests go back to Redis without waiting out the
// recovery timeout. healthy is false only when Redis is configured but unreachable
func (rl *RateLimiter) ServicesHealth(ctx context.Context) (services map[string]interface{}, healthy bool) {
	redisStatus := map[string]interface{}{"enabled": rl.redisClient.IsEnabled()}
	healthy = true

	if !rl.redisClient.IsEnabled() {
		redisStatus["status"] = "disabled"
	} else if err := rl.redisClient.HealthCheck(ctx); err != nil {
		redisStatus["status"] = "unhealthy"
		redisStatus["error"] = err.Error()
		healthy = false
	} else {
		redisStatus["status"] = "healthy"
		rl.breaker.Reset()
	}

	return map[string]interface{}{
		"redis":         redisStatus,
		"redis_breaker": rl.breaker.Stats(),
	}, healthy
}

// GetStats returns rate limiter statistics
func (rl *RateLimiter) GetStats() map[string]interface{} {
	rl.fallbackMutex.Lock()
	fallbackCount := len(rl.fallbackLimiters)
	rl.fallbackMutex.Unlock()

	stats := map[string]interface{}{
		"redis_enabled":     rl.redisClient.IsEnabled(),
		"fallback_limiters": fallbackCount,
		"ip_limit_per_min":  rl.config.IPLimitPerMin,
		"redis_breaker":     rl.breaker.Stats(),
	}

	if rl.redisClient.IsEnabled() {
		stats["redis_pool"] = rl.redisClient.GetPoolStats()
	}

	return stats
}
