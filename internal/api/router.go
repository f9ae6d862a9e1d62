package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	apperrors "github.com/ZanzyTHEbar/epi-index/internal/errors"
	"github.com/ZanzyTHEbar/epi-index/internal/indices"
	"github.com/ZanzyTHEbar/epi-index/internal/monitoring"
	"github.com/ZanzyTHEbar/epi-index/internal/ratelimit"
	"github.com/ZanzyTHEbar/epi-index/internal/security"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// Dependencies are the collaborators the router wires together
type Dependencies struct {
	Engine         *indices.Engine
	Metrics        *monitoring.Metrics
	Logger         *monitoring.Logger
	Limiter        *ratelimit.RateLimiter
	AllowedOrigins []string
	EnableHSTS     bool
}

// NewRouter builds the gin engine with middleware and all routes
func NewRouter(d Dependencies) *gin.Engine {
	r := gin.New()

	r.Use(security.RequestIDMiddleware())
	r.Use(monitoring.MonitoringMiddleware(d.Metrics, d.Logger))
	r.Use(apperrors.RecoveryHandler())
	r.Use(monitoring.SecurityMonitoringMiddleware(d.Logger))
	r.Use(apperrors.ErrorHandler())
	r.Use(security.SecurityHeadersMiddleware(security.HeadersConfig{EnableHSTS: d.EnableHSTS}))
	r.Use(security.CORSMiddleware(d.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   Version,
		})
	})

	r.GET("/health/services", func(c *gin.Context) {
		response := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		}
		if d.Limiter != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			services, healthy := d.Limiter.ServicesHealth(ctx)
			response["services"] = services
			if !healthy {
				// the in-memory limiter keeps serving
				response["status"] = "degraded"
			}
		}
		c.JSON(http.StatusOK, response)
	})

	r.GET("/metrics", func(c *gin.Context) {
		stats := d.Metrics.GetStats()
		if d.Limiter != nil {
			stats["rate_limiter"] = d.Limiter.GetStats()
		}
		c.JSON(http.StatusOK, stats)
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	h := NewHandler(d.Engine, d.Metrics, d.Logger)

	v1 := r.Group("/api/v1")
	if d.Limiter != nil {
		v1.Use(d.Limiter.IPRateLimitMiddleware())
	}
	v1.POST("/indices/vector", h.VectorBorne)
	v1.POST("/indices/rodent", h.RodentBorne)
	v1.POST("/forms/vector", h.VectorBorneForm)
	v1.POST("/forms/rodent", h.RodentBorneForm)
	v1.POST("/risk", h.Risk)
	v1.GET("/thresholds", h.Thresholds)

	return r
}
