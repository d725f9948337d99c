package tracing

import (
	"context"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInitTracerWithoutExporter(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	tp, tracer, err := InitTracer(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer tp.Shutdown(context.Background())

	_, span := tracer.Start(context.Background(), "test-span")
	if !span.SpanContext().IsValid() {
		t.Fatal("expected a recording span with a valid context")
	}
	span.End()
}

func TestShutdownFlushesAfterAppContextCancelled(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))

	ctx, cancel := context.WithCancel(context.Background())
	_, span := tp.Tracer("test").Start(ctx, "pending-span")
	span.End()
	cancel()

	if err := Shutdown(tp); err != nil {
		t.Fatalf("unexpected shutdown error: %v", err)
	}
	spans := exporter.GetSpans()
	if len(spans) != 1 || spans[0].Name != "pending-span" {
		t.Fatalf("expected the batched span to be flushed, got %d spans", len(spans))
	}
}

func TestShutdownNilProvider(t *testing.T) {
	if err := Shutdown(nil); err != nil {
		t.Fatalf("nil provider must be a no-op, got %v", err)
	}
}
