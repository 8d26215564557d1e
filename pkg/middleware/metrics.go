package middleware

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/arbor/pkg/arbor"
)

// MetricsConfig configures the Prometheus observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "arbor").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for processing duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus observer.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "arbor",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics is an arbor.Observer that exports a model's lifecycle as
// Prometheus metrics. Its collectors are safe to scrape from any goroutine.
type Metrics struct {
	processedTotal  *prometheus.CounterVec
	processDuration *prometheus.HistogramVec
	renderErrors    *prometheus.CounterVec
	lifecycleTotal  *prometheus.CounterVec
	liveScopes      prometheus.Gauge
	queueDepth      prometheus.Gauge
	idleTotal       prometheus.Counter
}

// Prometheus creates an observer collecting metrics for every model it is
// attached to. The collectors are registered on creation, so create one per
// registry.
//
// Metrics collected:
//   - arbor_scopes_processed_total: scopes processed by component and status
//   - arbor_process_duration_seconds: render and reconcile duration by component
//   - arbor_render_errors_total: failures by component and phase
//   - arbor_scope_events_total: created, updated, destroyed and stale scopes
//   - arbor_live_scopes: scopes currently alive
//   - arbor_queue_depth: queued updates after the last processed scope
//   - arbor_idle_total: times the update queue became empty
//
// Example:
//
//	metrics := middleware.Prometheus(middleware.WithNamespace("myapp"))
//	model := arbor.New(arbor.WithObserver(metrics))
//
//	http.Handle("/metrics", promhttp.Handler())
func Prometheus(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		processedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "scopes_processed_total",
			Help:        "Total number of scopes rendered and reconciled",
			ConstLabels: config.ConstLabels,
		}, []string{"component", "status"}),

		processDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "process_duration_seconds",
			Help:        "Scope render and reconcile duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"component"}),

		renderErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_errors_total",
			Help:        "Total number of failed scope updates",
			ConstLabels: config.ConstLabels,
		}, []string{"component", "phase"}),

		lifecycleTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "scope_events_total",
			Help:        "Total scope lifecycle events by kind",
			ConstLabels: config.ConstLabels,
		}, []string{"event"}),

		liveScopes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_scopes",
			Help:        "Number of scopes currently alive",
			ConstLabels: config.ConstLabels,
		}),

		queueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "queue_depth",
			Help:        "Number of queued scope updates",
			ConstLabels: config.ConstLabels,
		}),

		idleTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "idle_total",
			Help:        "Number of times the update queue became empty",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Observe implements arbor.Observer.
func (mt *Metrics) Observe(ev arbor.Event) {
	switch ev.Kind {
	case arbor.EventCreated:
		mt.lifecycleTotal.WithLabelValues("created").Inc()
		mt.liveScopes.Inc()
	case arbor.EventUpdated:
		mt.lifecycleTotal.WithLabelValues("updated").Inc()
	case arbor.EventDestroyed:
		mt.lifecycleTotal.WithLabelValues("destroyed").Inc()
		mt.liveScopes.Dec()
	case arbor.EventStale:
		mt.lifecycleTotal.WithLabelValues("stale").Inc()
	case arbor.EventProcessed:
		component := componentName(ev.Scope)
		mt.processDuration.WithLabelValues(component).Observe(ev.Duration.Seconds())
		status := "success"
		if ev.Err != nil {
			status = "error"
			mt.renderErrors.WithLabelValues(component, errorPhase(ev.Err)).Inc()
		}
		mt.processedTotal.WithLabelValues(component, status).Inc()
		mt.queueDepth.Set(float64(ev.Model.Pending()))
	case arbor.EventIdle:
		mt.idleTotal.Inc()
		mt.queueDepth.Set(0)
	}
}

func componentName(s *arbor.Scope) string {
	if s == nil {
		return ""
	}
	return s.Element().Component().Name()
}

// errorPhase returns a low-cardinality label for err.
func errorPhase(err error) string {
	var re *arbor.RenderError
	if errors.As(err, &re) {
		return re.Phase
	}
	return "middleware"
}
