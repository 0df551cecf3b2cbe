// Package httpapi exposes the document exporter over HTTP.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/apogeu/crmdocs/internal/metrics"
	"github.com/apogeu/crmdocs/service"
)

// RequestIDHeader carries the correlation id of a request.
const RequestIDHeader = "X-Request-Id"

// Options configures the router.
type Options struct {
	Logger         *zap.Logger
	Metrics        *metrics.Metrics
	AllowedOrigins []string
	// Now defaults to time.Now; it dates model editor previews.
	Now func() time.Time
}

// NewRouter builds the gin engine serving exp.
func NewRouter(exp *service.Exporter, opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	h := &handlers{exp: exp, logger: opts.Logger, now: opts.Now}

	r := gin.New()
	r.Use(requestID())
	r.Use(corsMiddleware(opts.AllowedOrigins))
	r.Use(accessLog(opts.Logger))
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	quotes := r.Group("/quotes")
	quotes.GET("/:id/pdf", h.quotePDF)
	quotes.GET("/:id/preview", h.quotePreview)
	quotes.POST("/pdf", h.inlineQuotePDF)
	quotes.POST("/preview", h.inlineQuotePreview)
	quotes.POST("/models/preview", h.modelPreview)
	quotes.POST("/content", h.generateContent)
	quotes.POST("/parameters/validate", h.validateParameters)

	presentations := r.Group("/presentations")
	presentations.GET("/:kind/:id/pdf", h.presentationPDF)
	presentations.GET("/:kind/:id/preview", h.presentationPreview)

	r.POST("/words", h.spell)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	return r
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AddAllowHeaders("Authorization", RequestIDHeader)
	cfg.AddExposeHeaders("Content-Disposition", FallbackHeader, RequestIDHeader)
	return cors.New(cfg)
}

func accessLog(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString("request_id")),
		)
	}
}
