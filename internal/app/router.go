package app

import (
	"net/http"
	"time"

	"go-empledger/internal/config"
	"go-empledger/internal/middleware"
	"go-empledger/internal/shared/response"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// NewRouter returns a gin engine with the cross-cutting middleware, the
// health probe and the Prometheus endpoint installed.
func NewRouter(cfg *config.Config, logger *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	switch {
	case len(cfg.CORSAllowedOrigins) > 0:
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	case cfg.IsProduction():
		// no allowlist in production means no cross-origin access
		corsConfig.AllowOriginFunc = func(string) bool { return false }
	default:
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowHeaders(middleware.HeaderRequestID, middleware.HeaderIdempotencyKey)
	corsConfig.AddExposeHeaders(middleware.HeaderRequestID, "Content-Length")
	corsConfig.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsConfig))

	r.Use(
		middleware.ContextLogger(logger),
		middleware.Metrics(),
		middleware.RequestTimeout(cfg.RequestTimeout),
		middleware.RateLimitByIP(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
	)

	r.GET("/healthz", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"}, nil)
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
