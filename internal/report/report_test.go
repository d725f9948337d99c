package report

import (
	"strings"
	"testing"
	"time"

	"setu-signal-bot/internal/domain"
)

func baseRecord() domain.AnalysisRecord {
	return domain.AnalysisRecord{
		Timestamp:            time.Date(2024, 3, 9, 14, 30, 5, 123456000, time.UTC),
		Trend:                domain.TrendBullish,
		SignalStrength:       90,
		FakeProbability:      10,
		NextMove:             domain.MoveLong,
		PredictionConfidence: 88,
		VolumeTrend:          domain.VolumeIncreasing,
		SupportLevel:         0.8512,
		ResistanceLevel:      1.1,
		NextMinutePrediction: domain.OutcomeBreakout,
	}
}

func TestRenderBullishStrongLowFake(t *testing.T) {
	out := Render(baseRecord())

	mustContain(t, out, RecommendLong)
	mustContain(t, out, "Signal confidence is high")
	mustContain(t, out, StatusAuthentic)
	mustNotContain(t, out, "CAUTION - Possible Manipulation")
	mustContain(t, out, "📈 **TREND ANALYSIS**")
	mustContain(t, out, "🔵 **NEXT MINUTE PREDICTION**")
	mustContain(t, out, "Signal Strength: **90%** 💪")
	mustContain(t, out, "Support Level: **0.8512**")
	mustContain(t, out, "Resistance Level: **1.1**")
	mustContain(t, out, "⏰ Analysis Time: 2024-03-09T14:30:05.123456")
	mustContain(t, out, "🤖 Bot: AVON X SETU AI v1.0")
}

func TestRenderBearishStrongHighFake(t *testing.T) {
	rec := baseRecord()
	rec.Trend = domain.TrendBearish
	rec.NextMove = domain.MoveShort
	rec.SignalStrength = 80
	rec.FakeProbability = 40

	out := Render(rec)
	mustContain(t, out, RecommendShort)
	mustContain(t, out, "⚠️ CAUTION - Possible Manipulation")
	mustContain(t, out, DisclaimerCautious)
	mustContain(t, out, "📉 **TREND ANALYSIS**")
	mustContain(t, out, "🔴 **NEXT MINUTE PREDICTION**")
}

func TestRenderNeutralAlwaysWaits(t *testing.T) {
	rec := baseRecord()
	rec.Trend = domain.TrendNeutral
	rec.NextMove = domain.MoveShort
	rec.SignalStrength = 95
	rec.FakeProbability = 15

	out := Render(rec)
	mustContain(t, out, RecommendWait)
	mustNotContain(t, out, RecommendLong)
	mustNotContain(t, out, RecommendShort)
	mustContain(t, out, "📉 **TREND ANALYSIS**")
}

func TestRenderFakeProbabilityBoundaries(t *testing.T) {
	rec := baseRecord()

	rec.FakeProbability = 20
	out := Render(rec)
	mustContain(t, out, DisclaimerConfident)
	mustContain(t, out, StatusAuthentic)

	rec.FakeProbability = 21
	out = Render(rec)
	mustContain(t, out, DisclaimerCautious)
	mustContain(t, out, StatusAuthentic)

	rec.FakeProbability = 30
	mustContain(t, Render(rec), StatusAuthentic)

	rec.FakeProbability = 31
	mustContain(t, Render(rec), StatusCaution)
}

func TestRenderIsIdempotent(t *testing.T) {
	rec := baseRecord()
	if Render(rec) != Render(rec) {
		t.Fatal("rendering the same record twice must give identical text")
	}
}

func TestRenderStrengthThreshold(t *testing.T) {
	rec := baseRecord()
	rec.SignalStrength = 75
	mustContain(t, Render(rec), RecommendWait)

	rec.SignalStrength = 76
	mustContain(t, Render(rec), RecommendLong)
}

func TestFormatTimestampWithoutMicros(t *testing.T) {
	rec := domain.AnalysisRecord{Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}
	if got := FormatTimestamp(rec); got != "2024-01-02T03:04:05" {
		t.Fatalf("unexpected timestamp: %s", got)
	}
}

func TestFormatLevel(t *testing.T) {
	cases := map[float64]string{0.9: "0.9", 0.8512: "0.8512", 1.15: "1.15", 1.0101: "1.0101"}
	for in, want := range cases {
		if got := FormatLevel(in); got != want {
			t.Fatalf("FormatLevel(%v) = %s, want %s", in, got, want)
		}
	}
}

func mustContain(t *testing.T, s, sub string) {
	t.Helper()
	if !strings.Contains(s, sub) {
		t.Fatalf("expected report to contain %q\n%s", sub, s)
	}
}

func mustNotContain(t *testing.T, s, sub string) {
	t.Helper()
	if strings.Contains(s, sub) {
		t.Fatalf("expected report not to contain %q\n%s", sub, s)
	}
}
