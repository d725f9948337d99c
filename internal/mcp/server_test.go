package mcp

import (
	"context"
	"testing"
	"time"

	"setu-signal-bot/internal/analysis"
	"setu-signal-bot/internal/service"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func tracedSession(t *testing.T) (*sdkmcp.ClientSession, *tracetest.SpanRecorder, context.Context) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	svc := service.NewAnalysisService(nil, analysis.NewSynthesizer(nil, nil), nil, nil)
	srv := NewServer(tp.Tracer("mcp-test"), svc, ServerConfig{RequestTimeout: time.Second})

	session, shutdown, err := connectInMemory(ctx, srv)
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	t.Cleanup(shutdown)
	t.Cleanup(func() { _ = session.Close() })
	return session, sr, ctx
}

func endedSpan(t *testing.T, sr *tracetest.SpanRecorder, name string) sdktrace.ReadOnlySpan {
	t.Helper()
	for _, span := range sr.Ended() {
		if span.Name() == name {
			return span
		}
	}
	t.Fatalf("no ended span named %q", name)
	return nil
}

func spanAttr(span sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestChartAnalyzeSpanCarriesSource(t *testing.T) {
	session, sr, ctx := tracedSession(t)

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "chart_analyze",
		Arguments: map[string]any{"image_base64": pngBase64(t)},
	})
	if err != nil || res.IsError {
		t.Fatalf("call failed: err=%v result=%+v", err, res)
	}

	span := endedSpan(t, sr, "mcp.tool.chart_analyze")
	if v, ok := spanAttr(span, "analysis.source"); !ok || v.AsString() != service.SourceMCP {
		t.Fatalf("expected analysis.source=%q, got %v (present=%v)", service.SourceMCP, v.Emit(), ok)
	}
	if v, ok := spanAttr(span, "analysis.arguments_bytes"); !ok || v.AsInt64() <= 0 {
		t.Fatalf("expected positive analysis.arguments_bytes, got %v", v.Emit())
	}
	if span.Status().Code == codes.Error {
		t.Fatalf("successful analysis must not mark the span failed: %+v", span.Status())
	}
}

func TestChartAnalyzeSpanMarksToolFailure(t *testing.T) {
	session, sr, ctx := tracedSession(t)

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "chart_analyze",
		Arguments: map[string]any{"image_base64": "bm90IGFuIGltYWdl"},
	})
	if err != nil {
		t.Fatalf("unexpected protocol error: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected tool-level error")
	}

	span := endedSpan(t, sr, "mcp.tool.chart_analyze")
	if span.Status().Code != codes.Error {
		t.Fatalf("expected error status, got %+v", span.Status())
	}
	if v, ok := spanAttr(span, "analysis.failed"); !ok || !v.AsBool() {
		t.Fatal("expected analysis.failed=true")
	}
}

func TestReportRenderSpanHasNoAnalysisSource(t *testing.T) {
	session, sr, ctx := tracedSession(t)

	if _, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name: "report_render",
		Arguments: map[string]any{
			"trend":                  "BULLISH",
			"signal_strength":        80,
			"fake_probability":       10,
			"prediction_confidence":  90,
			"volume_trend":           "STABLE",
			"support_level":          0.9,
			"resistance_level":       1.1,
			"next_minute_prediction": "BREAKOUT",
		},
	}); err != nil {
		t.Fatalf("call failed: %v", err)
	}

	span := endedSpan(t, sr, "mcp.tool.report_render")
	if v, ok := spanAttr(span, "mcp.tool"); !ok || v.AsString() != "report_render" {
		t.Fatalf("expected mcp.tool=report_render, got %v", v.Emit())
	}
	if _, ok := spanAttr(span, "analysis.source"); ok {
		t.Fatal("report_render does not analyze a chart")
	}
}

func TestGuideReadSpanNamesTopic(t *testing.T) {
	session, sr, ctx := tracedSession(t)

	if _, err := session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: tutorialResourceURI}); err != nil {
		t.Fatalf("read failed: %v", err)
	}

	span := endedSpan(t, sr, "mcp.guide.tutorial")
	if v, ok := spanAttr(span, "bot.guide"); !ok || v.AsString() != "tutorial" {
		t.Fatalf("expected bot.guide=tutorial, got %v", v.Emit())
	}
}
