package domain

import "time"

type Trend string

const (
	TrendBullish Trend = "BULLISH"
	TrendBearish Trend = "BEARISH"
	TrendNeutral Trend = "NEUTRAL"
)

var Trends = []Trend{TrendBullish, TrendBearish, TrendNeutral}

type Move string

const (
	MoveLong  Move = "LONG"
	MoveShort Move = "SHORT"
)

type VolumeTrend string

const (
	VolumeIncreasing VolumeTrend = "INCREASING"
	VolumeDecreasing VolumeTrend = "DECREASING"
	VolumeStable     VolumeTrend = "STABLE"
)

var VolumeTrends = []VolumeTrend{VolumeIncreasing, VolumeDecreasing, VolumeStable}

type Outcome string

const (
	OutcomeBreakout      Outcome = "BREAKOUT"
	OutcomeConsolidation Outcome = "CONSOLIDATION"
	OutcomePullback      Outcome = "PULLBACK"
)

var Outcomes = []Outcome{OutcomeBreakout, OutcomeConsolidation, OutcomePullback}

// Action is the recommendation printed at the bottom of a report.
type Action string

const (
	ActionLong  Action = "LONG"
	ActionShort Action = "SHORT"
	ActionWait  Action = "WAIT"
)

// Ranges for the randomized fields. Integer bounds are inclusive.
const (
	SignalStrengthMin       = 60
	SignalStrengthMax       = 98
	FakeProbabilityMin      = 5
	FakeProbabilityMax      = 35
	PredictionConfidenceMin = 70
	PredictionConfidenceMax = 95

	SupportLevelMin    = 0.85
	SupportLevelMax    = 0.99
	ResistanceLevelMin = 1.01
	ResistanceLevelMax = 1.15
	LevelDecimals      = 4
)

// MaxImagePixels caps width*height of an accepted screenshot. Headers are
// checked before any pixel buffer is allocated.
const MaxImagePixels = 50_000_000

// Report thresholds. All comparisons are strict.
const (
	ManipulationThreshold = 30
	DisclaimerThreshold   = 20
	StrongSignalThreshold = 75
)

// AnalysisRecord is one fabricated chart reading. It is built once per
// screenshot and never mutated.
type AnalysisRecord struct {
	Timestamp            time.Time   `json:"timestamp"`
	Trend                Trend       `json:"trend"`
	SignalStrength       int         `json:"signal_strength"`
	FakeProbability      int         `json:"fake_probability"`
	NextMove             Move        `json:"next_move"`
	PredictionConfidence int         `json:"prediction_confidence"`
	VolumeTrend          VolumeTrend `json:"volume_trend"`
	SupportLevel         float64     `json:"support_level"`
	ResistanceLevel      float64     `json:"resistance_level"`
	NextMinutePrediction Outcome     `json:"next_minute_prediction"`
}

// MoveFor is LONG for a bullish trend and SHORT for everything else.
func MoveFor(t Trend) Move {
	if t == TrendBullish {
		return MoveLong
	}
	return MoveShort
}

func (r AnalysisRecord) ManipulationSuspected() bool {
	return r.FakeProbability > ManipulationThreshold
}

func (r AnalysisRecord) NeedsDisclaimer() bool {
	return r.FakeProbability > DisclaimerThreshold
}

// RecommendedAction never returns LONG or SHORT for a neutral trend.
func (r AnalysisRecord) RecommendedAction() Action {
	switch {
	case r.Trend == TrendBullish && r.SignalStrength > StrongSignalThreshold:
		return ActionLong
	case r.Trend == TrendBearish && r.SignalStrength > StrongSignalThreshold:
		return ActionShort
	default:
		return ActionWait
	}
}

// Analysis pairs a record with the report rendered from it.
type Analysis struct {
	Record AnalysisRecord `json:"analysis"`
	Report string         `json:"report"`
}
