package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/waypost-dev/waypost/pkg/router"
)

// Default tracer name for Waypost lookups.
const defaultTracerName = "waypost"

// OTelConfig configures the OpenTelemetry wrapper.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "waypost").
	TracerName string

	// IncludePattern includes the matched pattern in spans.
	// Enabled by default.
	IncludePattern bool

	// AttributeExtractor extracts custom attributes for each lookup.
	AttributeExtractor func(path string) []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry wrapper.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithIncludePattern enables/disables the matched-pattern attribute.
func WithIncludePattern(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludePattern = include
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(path string) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// defaultOTelConfig returns the default OpenTelemetry configuration.
func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName:     defaultTracerName,
		IncludePattern: true,
	}
}

// TracedResolver decorates a Resolver with OpenTelemetry spans. It
// implements router.Resolver; callers that carry a context should use
// MatchContext/FindBoundaryContext so spans nest under the request span.
//
// The tracer comes from the global tracer provider. Configure it in
// main() before building the resolver:
//
//	tp := sdktrace.NewTracerProvider(
//	    sdktrace.WithBatcher(exporter),
//	)
//	otel.SetTracerProvider(tp)
type TracedResolver struct {
	next   router.Resolver
	config OTelConfig
}

// Trace wraps a resolver so every lookup is recorded as a span.
func Trace(next router.Resolver, opts ...OTelOption) *TracedResolver {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)

	return &TracedResolver{next: next, config: config}
}

// Match implements router.Resolver using a background context.
func (r *TracedResolver) Match(path string) (*router.MatchResult, bool) {
	return r.MatchContext(context.Background(), path)
}

// MatchContext resolves a path under a span parented to ctx.
func (r *TracedResolver) MatchContext(ctx context.Context, path string) (*router.MatchResult, bool) {
	_, span := r.config.tracer.Start(ctx, "waypost.match",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(r.attrs(path)...),
	)
	defer span.End()

	result, ok := r.next.Match(path)
	if !ok {
		// Not an error condition, but worth distinguishing on the span.
		span.SetAttributes(attribute.Bool("waypost.matched", false))
		span.SetStatus(codes.Ok, "")
		return nil, false
	}

	span.SetAttributes(attribute.Bool("waypost.matched", true))
	if r.config.IncludePattern {
		span.SetAttributes(
			attribute.String("waypost.pattern", result.Entry.Pattern.String()),
			attribute.String("waypost.kind", result.Entry.Kind.String()),
		)
	}
	span.SetStatus(codes.Ok, "")
	return result, true
}

// FindBoundary implements router.Resolver using a background context.
func (r *TracedResolver) FindBoundary(path string) (*router.ErrorBoundaryEntry, bool) {
	return r.FindBoundaryContext(context.Background(), path)
}

// FindBoundaryContext resolves a boundary under a span parented to ctx.
func (r *TracedResolver) FindBoundaryContext(ctx context.Context, path string) (*router.ErrorBoundaryEntry, bool) {
	_, span := r.config.tracer.Start(ctx, "waypost.boundary",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(r.attrs(path)...),
	)
	defer span.End()

	boundary, ok := r.next.FindBoundary(path)
	span.SetAttributes(attribute.Bool("waypost.matched", ok))
	if ok && r.config.IncludePattern {
		span.SetAttributes(attribute.String("waypost.pattern", boundary.Path))
	}
	span.SetStatus(codes.Ok, "")
	return boundary, ok
}

// attrs builds the base span attributes for a lookup.
func (r *TracedResolver) attrs(path string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("waypost.path", path),
	}
	if r.config.AttributeExtractor != nil {
		attrs = append(attrs, r.config.AttributeExtractor(path)...)
	}
	return attrs
}
