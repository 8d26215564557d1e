package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/vango-dev/arbor/pkg/arbor"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for arbor models.
const defaultTracerName = "arbor"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "arbor").
	TracerName string

	// Tracer overrides the tracer resolved from the global provider.
	Tracer trace.Tracer

	// Parent is the context spans are started from (default:
	// context.Background()).
	Parent context.Context

	// Filter determines which scopes to trace.
	// Return true to trace the scope, false to skip.
	// If nil, all scopes are traced.
	Filter func(s *arbor.Scope) bool

	// AttributeExtractor extracts custom attributes from the scope.
	// Called for each traced scope.
	AttributeExtractor func(s *arbor.Scope) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracer sets the tracer, bypassing the global provider.
func WithTracer(tracer trace.Tracer) OTelOption {
	return func(c *OTelConfig) {
		c.Tracer = tracer
	}
}

// WithParentContext sets the context spans are started from.
func WithParentContext(ctx context.Context) OTelOption {
	return func(c *OTelConfig) {
		c.Parent = ctx
	}
}

// WithScopeFilter sets a filter function for scopes.
func WithScopeFilter(filter func(s *arbor.Scope) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(s *arbor.Scope) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName: defaultTracerName,
		Parent:     context.Background(),
	}
}

// OpenTelemetry creates middleware that traces the processing of every
// scope.
//
// Each span carries the scope ID, component, depth and key, and after
// processing the render count and number of children. Failures are recorded
// on the span and set its status.
//
// Example:
//
//	model := arbor.New(
//	    arbor.WithMiddleware(
//	        middleware.OpenTelemetry(middleware.WithTracerName("my-ui")),
//	    ),
//	)
//
// The tracer uses the global OpenTelemetry tracer provider unless WithTracer
// is given. Configure the provider in main() before rendering.
func OpenTelemetry(opts ...OTelOption) arbor.Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}
	tracer := config.Tracer
	if tracer == nil {
		tracer = otel.Tracer(config.TracerName)
	}
	parent := config.Parent
	if parent == nil {
		parent = context.Background()
	}

	return arbor.MiddlewareFunc(func(s *arbor.Scope, next func() error) error {
		if config.Filter != nil && !config.Filter(s) {
			return next()
		}

		el := s.Element()
		attrs := []attribute.KeyValue{
			attribute.Int64("arbor.scope_id", int64(s.ID())),
			attribute.String("arbor.component", el.Component().Name()),
			attribute.Int("arbor.depth", s.Depth()),
		}
		if key, ok := el.Key(); ok {
			attrs = append(attrs, attribute.String("arbor.key", key))
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(s)...)
		}

		_, span := tracer.Start(
			parent,
			formatSpanName(s),
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrs...),
			trace.WithTimestamp(time.Now()),
		)
		defer span.End()

		err := next()

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.SetAttributes(
			attribute.Int("arbor.renders", s.Renders()),
			attribute.Int("arbor.children", len(s.Children())),
		)

		return err
	})
}

func formatSpanName(s *arbor.Scope) string {
	return fmt.Sprintf("arbor.render %s", s.Element().Component().Name())
}
