// Package httpapi wires the HTTP transport (Gin) to the bot's services and
// middleware. It centralizes tracing, correlation IDs, logging, panic
// recovery, metrics, and rate limiting around the two routes the chat
// platform calls.
//
// Middleware order:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Rate limiter (per client IP)
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-holiday-bot/internal/config"
	"github.com/tbourn/go-holiday-bot/internal/http/handlers"
	"github.com/tbourn/go-holiday-bot/internal/http/middleware"
	"github.com/tbourn/go-holiday-bot/internal/services"
)

// RegisterRoutes attaches all middleware and endpoints to the given Gin
// engine. db may be nil when no store is configured; the bot then answers
// every command with a configuration-error reply instead of refusing calls.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(limitBody(int64(cfg.MaxHeaderBytes)))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst)
	r.Use(rl.Handler())

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Services
	loc := displayLocation(cfg.Timezone)
	responder := services.NewResponder(services.NewLeaveService(db, loc))

	// Routes
	h := handlers.New(responder, cfg.WebhookToken, cfg.StoreTimeout)
	r.GET("/", h.Health)
	r.POST("/", h.Webhook)
}

// displayLocation resolves the configured zone, falling back to UTC rather
// than refusing to start: a wrong week anchor beats a dead bot.
func displayLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Warn().Str("tz", name).Err(err).Msg("unknown time zone, using UTC")
		return time.UTC
	}
	return loc
}

// limitBody caps request body size; webhook payloads are small and anything
// larger is abuse.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request != nil && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
