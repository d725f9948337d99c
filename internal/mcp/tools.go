package mcp

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"setu-signal-bot/internal/service"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerTools(server *mcp.Server, pipeline Pipeline) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "chart_analyze",
		Description: "Analyze a base64 encoded chart screenshot and return the record with its rendered report",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in chartAnalyzeInput) (*mcp.CallToolResult, analysisOutput, error) {
		if pipeline == nil {
			return nil, analysisOutput{}, fmt.Errorf("analysis service unavailable")
		}
		data, err := decodeImageBase64(in.ImageBase64)
		if err != nil {
			return nil, analysisOutput{}, err
		}
		result, err := pipeline.Analyze(ctx, service.SourceMCP, bytes.NewReader(data))
		if err != nil {
			return nil, analysisOutput{}, err
		}
		return nil, analysisOutput{Analysis: result.Record, Report: result.Report}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "report_render",
		Description: "Render the report for an explicit analysis record",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in reportRenderInput) (*mcp.CallToolResult, reportRenderOutput, error) {
		if pipeline == nil {
			return nil, reportRenderOutput{}, fmt.Errorf("analysis service unavailable")
		}
		rec, err := in.record(time.Now())
		if err != nil {
			return nil, reportRenderOutput{}, err
		}
		return nil, reportRenderOutput{
			Action: string(rec.RecommendedAction()),
			Report: pipeline.Render(ctx, rec),
		}, nil
	})
}
