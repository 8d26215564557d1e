// Package middleware provides observability for arbor models.
//
// This package includes:
//   - OpenTelemetry tracing middleware
//   - a Prometheus metrics observer
//   - structured logging middleware
//
// # OpenTelemetry Middleware
//
// The OpenTelemetry middleware opens one span per processed scope, tagged
// with the scope ID, component name, depth and key.
//
//	model := arbor.New(
//	    arbor.WithMiddleware(
//	        middleware.OpenTelemetry(),
//	    ),
//	)
//
// Configure with options:
//
//	middleware.OpenTelemetry(
//	    middleware.WithTracerName("my-ui"),
//	    middleware.WithScopeFilter(func(s *arbor.Scope) bool {
//	        return s.Depth() < 3
//	    }),
//	)
//
// # Prometheus Metrics
//
// Prometheus returns an observer rather than a middleware, since it also
// counts events that happen outside processing (scope creation and
// destruction, stale queue entries):
//
//	metrics := middleware.Prometheus()
//	model := arbor.New(arbor.WithObserver(metrics))
//
// Then expose the metrics:
//
//	http.Handle("/metrics", promhttp.Handler())
package middleware
