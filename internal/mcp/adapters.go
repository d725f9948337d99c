package mcp

import (
	"context"
	"io"

	"setu-signal-bot/internal/domain"
)

// Pipeline is the analysis surface the tools call. *service.AnalysisService
// satisfies it.
type Pipeline interface {
	Analyze(ctx context.Context, source string, r io.Reader) (*domain.Analysis, error)
	Render(ctx context.Context, rec domain.AnalysisRecord) string
}
