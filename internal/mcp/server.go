package mcp

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"setu-signal-bot/internal/service"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultRequestTimeout = 5 * time.Second

type ServerConfig struct {
	RequestTimeout time.Duration
}

func NewServer(tracer trace.Tracer, pipeline Pipeline, cfg ServerConfig) *sdkmcp.Server {
	requestTimeout := cfg.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	srv := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "setu-signal-bot-mcp",
		Version: "1.0.0",
	}, &sdkmcp.ServerOptions{
		Instructions: "Send chart screenshots to chart_analyze, or render a known record with report_render. The bot guide lives under bot://guide.",
		Logger:       slog.Default(),
	})

	srv.AddReceivingMiddleware(deadlineMiddleware(requestTimeout))
	if tracer != nil {
		srv.AddReceivingMiddleware(spanMiddleware(tracer))
	}

	registerTools(srv, pipeline)
	registerResources(srv)
	return srv
}

func NewHTTPTransportHandler(server *sdkmcp.Server, cfg HTTPHandlerConfig) http.Handler {
	base := sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return server
	}, &sdkmcp.StreamableHTTPOptions{})
	return wrapHTTPHandler(base, cfg)
}

// deadlineMiddleware bounds each request, including chart decoding inside
// chart_analyze.
func deadlineMiddleware(timeout time.Duration) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if timeout <= 0 {
				return next(ctx, method, req)
			}
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			return next(ctx, method, req)
		}
	}
}

// spanMiddleware opens one span per request. Tool calls are tagged with the
// analysis source and payload size, guide reads with the guide topic. A tool
// result flagged IsError marks the span failed even though the protocol call
// succeeded.
func spanMiddleware(tracer trace.Tracer) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			name, attrs := describeRequest(method, req)
			ctx, span := tracer.Start(ctx, name, trace.WithAttributes(attrs...))
			defer span.End()

			result, err := next(ctx, method, req)
			switch {
			case err != nil:
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			case isToolFailure(result):
				span.SetAttributes(attribute.Bool("analysis.failed", true))
				span.SetStatus(codes.Error, "tool reported an error")
			}
			return result, err
		}
	}
}

func describeRequest(method string, req sdkmcp.Request) (string, []attribute.KeyValue) {
	attrs := []attribute.KeyValue{attribute.String("mcp.method", method)}

	switch r := req.(type) {
	case *sdkmcp.CallToolRequest:
		tool := strings.TrimSpace(r.Params.Name)
		if tool == "" {
			return "mcp.tool", attrs
		}
		attrs = append(attrs, attribute.String("mcp.tool", tool))
		if tool == "chart_analyze" {
			attrs = append(attrs,
				attribute.String("analysis.source", service.SourceMCP),
				attribute.Int("analysis.arguments_bytes", len(r.Params.Arguments)),
			)
		}
		return "mcp.tool." + tool, attrs
	case *sdkmcp.ReadResourceRequest:
		uri := strings.TrimSpace(r.Params.URI)
		attrs = append(attrs, attribute.String("mcp.resource.uri", uri))
		if topic, ok := strings.CutPrefix(uri, guideURIPrefix); ok {
			attrs = append(attrs, attribute.String("bot.guide", topic))
			return "mcp.guide." + topic, attrs
		}
		return "mcp.resource", attrs
	}
	return "mcp." + strings.ReplaceAll(method, "/", "."), attrs
}

func isToolFailure(result sdkmcp.Result) bool {
	res, ok := result.(*sdkmcp.CallToolResult)
	return ok && res != nil && res.IsError
}
