// Package router assembles the gin engine of the API server.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	markethandler "github.com/felipet/finance-api/internal/feature/market/transport/handler"
)

// Option configures the engine before any route is registered.
type Option func(r *gin.Engine)

// WithCORS allows cross-origin requests from any origin.
func WithCORS() Option {
	return func(r *gin.Engine) {
		r.Use(cors.Default())
	}
}

// WithRequestLogger logs one entry per request.
func WithRequestLogger(logger logrus.FieldLogger) Option {
	return func(r *gin.Engine) {
		r.Use(requestLogger(logger))
	}
}

// NewRouter returns an engine serving /healthz and the market routes. All routes
// are public and read-only.
func NewRouter(market *markethandler.MarketHandler, health gin.HandlerFunc, opts ...Option) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	for _, opt := range opts {
		opt(r)
	}

	// Liveness probe
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.OPTIONS("/healthz", health)

	market.Register(r)
	return r
}

func requestLogger(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logger.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		})
		if c.Writer.Status() >= 500 {
			entry.Error("request failed")
			return
		}
		entry.Info("request")
	}
}
