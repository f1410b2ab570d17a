package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// Login counters
	LoginCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobboard_login_total",
			Help: "Total number of login attempts",
		},
	)

	// Registration counters
	RegisterCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobboard_register_total",
			Help: "Total number of user registrations",
		},
	)

	// Onboarding transition counter
	OnboardingTransitionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_onboarding_transitions_total",
			Help: "Total number of onboarding stage transitions",
		},
		[]string{"stage"},
	)

	// Lifecycle operation counter
	LifecycleOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_lifecycle_operations_total",
			Help: "Total number of soft-delete lifecycle operations",
		},
		[]string{"entity", "operation"}, // operation is "trash", "restore", "purge"
	)

	// Board operation counter
	BoardOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_board_operations_total",
			Help: "Total number of board operations",
		},
		[]string{"operation"},
	)

	// Application operation counter
	ApplicationOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_application_operations_total",
			Help: "Total number of application operations",
		},
		[]string{"operation"},
	)

	// Upload counter by outcome
	UploadCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_uploads_total",
			Help: "Total number of file uploads by outcome",
		},
		[]string{"outcome"}, // "stored", "rejected", "failed"
	)

	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)

	// Error counters
	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"}, // "invalid_token", "user_not_found", "wrong_owner" etc.
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobboard_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// Database operation duration
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobboard_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "query", "insert", "update", "delete"
	)
)

// Gauge metrics
var (
	// Active tokens
	ActiveTokensGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "jobboard_active_tokens",
			Help: "Number of currently active authentication tokens",
		},
	)

	// Users still onboarding
	OnboardingUsersGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "jobboard_onboarding_users",
			Help: "Number of users currently in the onboarding flow",
		},
	)

	// System info
	InfoGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "jobboard_info",
			Help: "Information about the job board service",
		},
		[]string{"version"},
	)
)

func init() {
	// Register counters
	prometheus.MustRegister(LoginCounter)
	prometheus.MustRegister(RegisterCounter)
	prometheus.MustRegister(OnboardingTransitionCounter)
	prometheus.MustRegister(LifecycleOperationCounter)
	prometheus.MustRegister(BoardOperationCounter)
	prometheus.MustRegister(ApplicationOperationCounter)
	prometheus.MustRegister(UploadCounter)
	prometheus.MustRegister(HTTPRequestCounter)
	prometheus.MustRegister(AuthErrorCounter)

	// Register histograms
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(DBOperationDuration)

	// Register gauges
	prometheus.MustRegister(ActiveTokensGauge)
	prometheus.MustRegister(OnboardingUsersGauge)
	prometheus.MustRegister(InfoGauge)

	// Set initial service info
	InfoGauge.With(prometheus.Labels{"version": "1.0.0"}).Set(1)
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// RecordAuthError increments the auth error counter for the given type
func RecordAuthError(errorType string) {
	AuthErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// RecordLifecycleOperation increments the lifecycle counter for an entity
func RecordLifecycleOperation(entity, operation string) {
	LifecycleOperationCounter.With(prometheus.Labels{"entity": entity, "operation": operation}).Inc()
}

// RecordOnboardingTransition increments the transition counter for a stage
func RecordOnboardingTransition(stage string) {
	OnboardingTransitionCounter.With(prometheus.Labels{"stage": stage}).Inc()
}

// TrackDBOperation measures database operation durations
func TrackDBOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DBOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}

// IncreaseActiveTokens increments the active tokens gauge
func IncreaseActiveTokens() {
	ActiveTokensGauge.Inc()
}

// DecreaseActiveTokens decrements the active tokens gauge
func DecreaseActiveTokens() {
	ActiveTokensGauge.Dec()
}

// MetricsMiddleware returns an Echo middleware that records HTTP request metrics
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			method := c.Request().Method
			endpoint := c.Path()
			statusStr := strconv.Itoa(status)

			HTTPRequestCounter.WithLabelValues(endpoint, method, statusStr).Inc()

			duration := time.Since(start).Seconds()
			RequestDuration.WithLabelValues(endpoint, method, statusStr).Observe(duration)

			return err
		}
	}
}
