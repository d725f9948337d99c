package mcp

import (
	"encoding/base64"
	"fmt"
	"slices"
	"strings"
	"time"

	"setu-signal-bot/internal/domain"
)

type chartAnalyzeInput struct {
	ImageBase64 string `json:"image_base64" jsonschema:"base64 encoded PNG, JPEG or GIF chart screenshot; a data URI prefix is accepted"`
}

type analysisOutput struct {
	Analysis domain.AnalysisRecord `json:"analysis"`
	Report   string                `json:"report"`
}

type reportRenderInput struct {
	Trend                string  `json:"trend" jsonschema:"BULLISH, BEARISH or NEUTRAL"`
	SignalStrength       int     `json:"signal_strength" jsonschema:"signal strength percent"`
	FakeProbability      int     `json:"fake_probability" jsonschema:"fake signal probability percent"`
	PredictionConfidence int     `json:"prediction_confidence" jsonschema:"prediction confidence percent"`
	VolumeTrend          string  `json:"volume_trend" jsonschema:"INCREASING, DECREASING or STABLE"`
	SupportLevel         float64 `json:"support_level" jsonschema:"support level multiplier"`
	ResistanceLevel      float64 `json:"resistance_level" jsonschema:"resistance level multiplier"`
	NextMinutePrediction string  `json:"next_minute_prediction" jsonschema:"BREAKOUT, CONSOLIDATION or PULLBACK"`
	Timestamp            string  `json:"timestamp,omitempty" jsonschema:"optional RFC3339 analysis time, defaults to now"`
}

type reportRenderOutput struct {
	Action string `json:"action"`
	Report string `json:"report"`
}

// decodeImageBase64 accepts standard or unpadded base64, optionally behind a
// data URI header.
func decodeImageBase64(raw string) ([]byte, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "data:") {
		if i := strings.Index(raw, ","); i >= 0 {
			raw = raw[i+1:]
		}
	}
	if raw == "" {
		return nil, fmt.Errorf("image_base64 is required")
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(raw)
	}
	if err != nil {
		return nil, fmt.Errorf("image_base64 is not valid base64: %w", err)
	}
	return data, nil
}

func (in reportRenderInput) record(now time.Time) (domain.AnalysisRecord, error) {
	trend := domain.Trend(strings.ToUpper(strings.TrimSpace(in.Trend)))
	if !slices.Contains(domain.Trends, trend) {
		return domain.AnalysisRecord{}, fmt.Errorf("unsupported trend: %s", in.Trend)
	}
	volume := domain.VolumeTrend(strings.ToUpper(strings.TrimSpace(in.VolumeTrend)))
	if !slices.Contains(domain.VolumeTrends, volume) {
		return domain.AnalysisRecord{}, fmt.Errorf("unsupported volume_trend: %s", in.VolumeTrend)
	}
	outcome := domain.Outcome(strings.ToUpper(strings.TrimSpace(in.NextMinutePrediction)))
	if !slices.Contains(domain.Outcomes, outcome) {
		return domain.AnalysisRecord{}, fmt.Errorf("unsupported next_minute_prediction: %s", in.NextMinutePrediction)
	}
	for name, pct := range map[string]int{
		"signal_strength":       in.SignalStrength,
		"fake_probability":      in.FakeProbability,
		"prediction_confidence": in.PredictionConfidence,
	} {
		if pct < 0 || pct > 100 {
			return domain.AnalysisRecord{}, fmt.Errorf("%s must be between 0 and 100", name)
		}
	}

	ts := now
	if raw := strings.TrimSpace(in.Timestamp); raw != "" {
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return domain.AnalysisRecord{}, fmt.Errorf("invalid timestamp: %s", raw)
		}
		ts = parsed
	}

	return domain.AnalysisRecord{
		Timestamp:            ts,
		Trend:                trend,
		SignalStrength:       in.SignalStrength,
		FakeProbability:      in.FakeProbability,
		NextMove:             domain.MoveFor(trend),
		PredictionConfidence: in.PredictionConfidence,
		VolumeTrend:          volume,
		SupportLevel:         in.SupportLevel,
		ResistanceLevel:      in.ResistanceLevel,
		NextMinutePrediction: outcome,
	}, nil
}
