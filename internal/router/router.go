package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/medbook/booking-api/internal/middleware"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Router struct {
	engine  *gin.Engine
	metrics *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
}

func initRouterMetrics(prefix string) *routerMetrics {
	return &routerMetrics{
		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    prefix + "_request_duration_seconds",
			Help:    "Request latency by method and path",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		requestTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_requests_total",
			Help: "Requests by method, path and status",
		}, []string{"method", "path", "status"}),
	}
}

// NewRouter assembles the engine: open health and metrics endpoints,
// and the authenticated, rate-limited /api/v1 surface.
func NewRouter(
	auth *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimiter,
	healthH Handler,
	apiHandlers ...Handler,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	r := &Router{
		engine:  engine,
		metrics: initRouterMetrics("booking_api"),
	}

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger())
	engine.Use(r.instrument())
	engine.Use(middleware.ErrorHandler())

	root := engine.Group("")
	healthH.RegisterRoutes(root)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api/v1")
	api.Use(rateLimiter.Handle())
	api.Use(auth.Authenticate())
	for _, h := range apiHandlers {
		h.RegisterRoutes(api)
	}

	return r
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		timer := prometheus.NewTimer(r.metrics.requestDuration.WithLabelValues(
			c.Request.Method, c.FullPath(),
		))
		c.Next()
		timer.ObserveDuration()

		r.metrics.requestTotal.WithLabelValues(
			c.Request.Method, c.FullPath(), statusLabel(c.Writer.Status()),
		).Inc()
	}
}

func statusLabel(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
