package domain

import "testing"

func TestMoveFor(t *testing.T) {
	if MoveFor(TrendBullish) != MoveLong {
		t.Fatalf("expected LONG for bullish trend")
	}
	if MoveFor(TrendBearish) != MoveShort || MoveFor(TrendNeutral) != MoveShort {
		t.Fatalf("expected SHORT for bearish and neutral trends")
	}
}

func TestRecommendedAction(t *testing.T) {
	cases := []struct {
		name     string
		trend    Trend
		strength int
		want     Action
	}{
		{"bullish strong", TrendBullish, 90, ActionLong},
		{"bullish at threshold", TrendBullish, 75, ActionWait},
		{"bearish strong", TrendBearish, 80, ActionShort},
		{"bearish weak", TrendBearish, 60, ActionWait},
		{"neutral strong", TrendNeutral, 98, ActionWait},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := AnalysisRecord{Trend: tc.trend, SignalStrength: tc.strength}
			if got := rec.RecommendedAction(); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestThresholdsAreStrict(t *testing.T) {
	if (AnalysisRecord{FakeProbability: 30}).ManipulationSuspected() {
		t.Fatal("30 must not trigger the manipulation warning")
	}
	if !(AnalysisRecord{FakeProbability: 31}).ManipulationSuspected() {
		t.Fatal("31 must trigger the manipulation warning")
	}
	if (AnalysisRecord{FakeProbability: 20}).NeedsDisclaimer() {
		t.Fatal("20 must not trigger the disclaimer")
	}
	if !(AnalysisRecord{FakeProbability: 21}).NeedsDisclaimer() {
		t.Fatal("21 must trigger the disclaimer")
	}
}
