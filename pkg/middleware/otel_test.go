package middleware

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// newRecordingTracer installs a span-recording tracer provider for the
// duration of the test and restores the previous one afterwards.
func newRecordingTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	return recorder
}

// spanAttr returns the value of an attribute on a recorded span.
func spanAttr(span sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracePassesMatchThrough(t *testing.T) {
	resolver := Trace(newTestResolver(t))

	result, ok := resolver.Match("/projects/7")
	if !ok {
		t.Fatal("expected match")
	}
	if result.Entry.Module != "show" {
		t.Errorf("module = %q, want %q", result.Entry.Module, "show")
	}
	if got, _ := result.Params.Get("id"); got != "7" {
		t.Errorf("params[id] = %q, want %q", got, "7")
	}

	if _, ok := resolver.Match("/missing"); ok {
		t.Error("expected no match")
	}
}

func TestTracePassesBoundaryThrough(t *testing.T) {
	resolver := Trace(newTestResolver(t))

	boundary, ok := resolver.FindBoundary("/projects/7")
	if !ok {
		t.Fatal("expected boundary")
	}
	if boundary.Module != "projects-error" {
		t.Errorf("module = %q, want %q", boundary.Module, "projects-error")
	}

	if _, ok := resolver.FindBoundary("/elsewhere"); ok {
		t.Error("expected no boundary")
	}
}

func TestTraceRecordsMatchAttributes(t *testing.T) {
	recorder := newRecordingTracer(t)
	resolver := Trace(newTestResolver(t))

	if _, ok := resolver.Match("/projects/7"); !ok {
		t.Fatal("expected match")
	}
	if _, ok := resolver.Match("/missing"); ok {
		t.Fatal("expected no match")
	}

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("recorded %d spans, want 2", len(spans))
	}

	hit := spans[0]
	if hit.Name() != "waypost.match" {
		t.Errorf("span name = %q, want %q", hit.Name(), "waypost.match")
	}
	if v, ok := spanAttr(hit, "waypost.path"); !ok || v.AsString() != "/projects/7" {
		t.Errorf("waypost.path = %v, want %q", v, "/projects/7")
	}
	if v, ok := spanAttr(hit, "waypost.matched"); !ok || !v.AsBool() {
		t.Error("waypost.matched should be true on a hit")
	}
	if v, ok := spanAttr(hit, "waypost.pattern"); !ok || v.AsString() != "/projects/:id" {
		t.Errorf("waypost.pattern = %v, want %q", v, "/projects/:id")
	}
	if v, ok := spanAttr(hit, "waypost.kind"); !ok || v.AsString() != "page" {
		t.Errorf("waypost.kind = %v, want %q", v, "page")
	}

	miss := spans[1]
	if v, ok := spanAttr(miss, "waypost.matched"); !ok || v.AsBool() {
		t.Error("waypost.matched should be false on a miss")
	}
	if _, ok := spanAttr(miss, "waypost.pattern"); ok {
		t.Error("waypost.pattern should be absent on a miss")
	}
}

func TestTraceRecordsBoundaryAttributes(t *testing.T) {
	recorder := newRecordingTracer(t)
	resolver := Trace(newTestResolver(t))

	if _, ok := resolver.FindBoundary("/projects/7"); !ok {
		t.Fatal("expected boundary")
	}

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("recorded %d spans, want 1", len(spans))
	}

	span := spans[0]
	if span.Name() != "waypost.boundary" {
		t.Errorf("span name = %q, want %q", span.Name(), "waypost.boundary")
	}
	if v, ok := spanAttr(span, "waypost.matched"); !ok || !v.AsBool() {
		t.Error("waypost.matched should be true when a boundary is found")
	}
	if v, ok := spanAttr(span, "waypost.pattern"); !ok || v.AsString() != "/projects" {
		t.Errorf("waypost.pattern = %v, want %q", v, "/projects")
	}
}

func TestTraceIncludePatternDisabled(t *testing.T) {
	recorder := newRecordingTracer(t)
	resolver := Trace(newTestResolver(t), WithIncludePattern(false))

	if _, ok := resolver.Match("/projects/7"); !ok {
		t.Fatal("expected match")
	}

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("recorded %d spans, want 1", len(spans))
	}
	if _, ok := spanAttr(spans[0], "waypost.pattern"); ok {
		t.Error("waypost.pattern should be absent with IncludePattern disabled")
	}
}

func TestTraceContextVariants(t *testing.T) {
	resolver := Trace(newTestResolver(t),
		WithTracerName("test"),
		WithIncludePattern(false),
		WithAttributeExtractor(func(path string) []attribute.KeyValue {
			return []attribute.KeyValue{attribute.String("test.attr", path)}
		}),
	)

	if _, ok := resolver.MatchContext(context.Background(), "/projects/7"); !ok {
		t.Error("MatchContext: expected match")
	}
	if _, ok := resolver.FindBoundaryContext(context.Background(), "/projects/7"); !ok {
		t.Error("FindBoundaryContext: expected boundary")
	}
}

func TestTraceComposesWithPrometheus(t *testing.T) {
	resetGlobalMetricsForTest()

	resolver := Prometheus(Trace(newTestResolver(t)))

	result, ok := resolver.Match("/projects/9")
	if !ok {
		t.Fatal("expected match through composed wrappers")
	}
	if got, _ := result.Params.Get("id"); got != "9" {
		t.Errorf("params[id] = %q, want %q", got, "9")
	}
}
