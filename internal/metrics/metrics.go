package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collectors holds all Prometheus collectors for the backend.
var Collectors = struct {
	SessionsCreated  prometheus.Counter
	SessionsDeleted  prometheus.Counter
	VotesTotal       *prometheus.CounterVec
	MembersJoined    prometheus.Counter
	AdhocItemsAdded  prometheus.Counter
	WSConnections    prometheus.Gauge
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
}{}

// Init registers all collectors. Call once at startup.
func Init() {
	Collectors.SessionsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "neyapsak_sessions_created_total",
		Help: "Total voting sessions created.",
	})

	Collectors.SessionsDeleted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "neyapsak_sessions_deleted_total",
		Help: "Total sessions torn down by their last member leaving.",
	})

	Collectors.VotesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "neyapsak_votes_total",
			Help: "Total votes cast, by swipe direction.",
		},
		[]string{"direction"},
	)

	Collectors.MembersJoined = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "neyapsak_members_joined_total",
		Help: "Total session joins.",
	})

	Collectors.AdhocItemsAdded = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "neyapsak_adhoc_items_added_total",
		Help: "Total ad-hoc items injected into sessions.",
	})

	Collectors.WSConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "neyapsak_ws_connections",
		Help: "WebSocket observers currently connected.",
	})

	Collectors.RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "neyapsak_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by route and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method", "status"},
	)

	Collectors.RequestsInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "neyapsak_requests_in_flight",
		Help: "Number of HTTP requests currently being served.",
	})

	prometheus.MustRegister(
		Collectors.SessionsCreated,
		Collectors.SessionsDeleted,
		Collectors.VotesTotal,
		Collectors.MembersJoined,
		Collectors.AdhocItemsAdded,
		Collectors.WSConnections,
		Collectors.RequestDuration,
		Collectors.RequestsInFlight,
	)
}

// Middleware records request duration and in-flight count.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.FullPath() == "/metrics" {
			c.Next()
			return
		}

		Collectors.RequestsInFlight.Inc()
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		// FullPath is the route template (":id" placeholders), so
		// cardinality stays bounded.
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		Collectors.RequestDuration.WithLabelValues(route, c.Request.Method, status).Observe(duration)
		Collectors.RequestsInFlight.Dec()
	}
}

// Handler serves the Prometheus /metrics endpoint.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
