package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_requests_latency_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// Accounts
	Registrations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_registrations_total",
			Help: "Registration attempts by result.",
		},
		[]string{"result"}, // ok|invalid|error
	)
	Logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_logins_total",
			Help: "Login attempts by result.",
		},
		[]string{"result"}, // ok|rejected|error
	)

	// Content
	PostsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "blog_posts_created_total",
			Help: "Posts created.",
		},
	)
	CommentsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "blog_comments_created_total",
			Help: "Comments created.",
		},
	)

	initOnce sync.Once
)

// Handler serves the /metrics endpoint.
var Handler = promhttp.Handler

// Init registers the collectors with the default registry. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestLatency)
		prometheus.MustRegister(Registrations)
		prometheus.MustRegister(Logins)
		prometheus.MustRegister(PostsCreated)
		prometheus.MustRegister(CommentsCreated)
	})
}

// Middleware observes request latency labelled by the matched route pattern.
func Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		status := c.Response().Status
		if err != nil {
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			} else if !c.Response().Committed {
				status = 500
			}
		}
		route := c.Path()
		if route == "" {
			route = c.Request().URL.Path
		}
		RequestLatency.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
		return err
	}
}
