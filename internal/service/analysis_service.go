package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"setu-signal-bot/internal/analysis"
	"setu-signal-bot/internal/domain"
	"setu-signal-bot/internal/logger"
	"setu-signal-bot/internal/report"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Where a screenshot came from, used as a metrics label.
const (
	SourceTelegram = "telegram"
	SourceHTTP     = "http"
	SourceMCP      = "mcp"
	SourcePreview  = "preview"
)

const (
	errKindDecode   = "decode_error"
	errKindInternal = "internal_error"
)

type Synthesizer interface {
	ProduceFrom(r io.Reader) (domain.AnalysisRecord, error)
}

type MetricsRecorder interface {
	RecordAnalysis(source, action string)
	RecordError(kind string)
	RecordLatency(seconds float64)
}

// AnalysisService runs the decode, synthesize and render pipeline for every
// surface (bot, HTTP, MCP, CLI).
type AnalysisService struct {
	tracer  trace.Tracer
	synth   Synthesizer
	metrics MetricsRecorder
	log     *zap.Logger
}

func NewAnalysisService(tracer trace.Tracer, synth Synthesizer, metrics MetricsRecorder, log *zap.Logger) *AnalysisService {
	if tracer == nil {
		tracer = trace.NewNoopTracerProvider().Tracer("analysis-service")
	}
	return &AnalysisService{
		tracer:  tracer,
		synth:   synth,
		metrics: metrics,
		log:     logger.OrNop(log),
	}
}

// Analyze returns an *analysis.InputDecodeError unchanged when r is not an
// image, so callers can tell bad input from everything else.
func (s *AnalysisService) Analyze(ctx context.Context, source string, r io.Reader) (*domain.Analysis, error) {
	_, span := s.tracer.Start(ctx, "analysis-service.analyze")
	defer span.End()
	span.SetAttributes(attribute.String("source", source))

	if s.synth == nil {
		s.recordError(errKindInternal)
		return nil, fmt.Errorf("analysis service is not fully initialized")
	}

	started := time.Now()
	rec, err := s.synth.ProduceFrom(r)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode failed")
		if errors.Is(err, analysis.ErrInputDecode) {
			s.recordError(errKindDecode)
		} else {
			s.recordError(errKindInternal)
		}
		s.log.Warn("screenshot analysis failed", zap.String("source", source), zap.Error(err))
		return nil, err
	}

	out := &domain.Analysis{Record: rec, Report: report.Render(rec)}
	action := rec.RecommendedAction()

	if s.metrics != nil {
		s.metrics.RecordAnalysis(source, string(action))
		s.metrics.RecordLatency(time.Since(started).Seconds())
	}
	span.SetAttributes(
		attribute.String("trend", string(rec.Trend)),
		attribute.String("action", string(action)),
	)
	s.log.Info("screenshot analyzed",
		zap.String("source", source),
		zap.String("trend", string(rec.Trend)),
		zap.Int("signal_strength", rec.SignalStrength),
		zap.Int("fake_probability", rec.FakeProbability),
		zap.String("action", string(action)),
	)
	return out, nil
}

// Render formats a caller-supplied record without drawing anything.
func (s *AnalysisService) Render(ctx context.Context, rec domain.AnalysisRecord) string {
	_, span := s.tracer.Start(ctx, "analysis-service.render")
	defer span.End()
	return report.Render(rec)
}

func (s *AnalysisService) recordError(kind string) {
	if s.metrics != nil {
		s.metrics.RecordError(kind)
	}
}
