package report

import (
	"fmt"
	"strconv"

	"setu-signal-bot/internal/domain"
)

const (
	BotName    = "AVON X SETU AI"
	BotVersion = "v1.0"
)

const (
	emojiUp   = "📈"
	emojiDown = "📉"
	emojiBlue = "🔵"
	emojiRed  = "🔴"
)

const (
	StatusCaution   = "⚠️ CAUTION - Possible Manipulation"
	StatusAuthentic = "✅ Signal Looks Authentic"

	RecommendLong  = "🔵 LONG - Strong bullish momentum detected!"
	RecommendShort = "🔴 SHORT - Strong bearish pressure detected!"
	RecommendWait  = "⚠️ WAIT - Insufficient signal strength. Hold position."

	DisclaimerCautious  = "💡 *Disclaimer: This is AI analysis only. Do your own research!*"
	DisclaimerConfident = "✅ *Signal confidence is high*"
)

const reportTemplate = `╔════════════════════════════════════════╗
║   AVON X SETU AI BOT - ANALYSIS REPORT   ║
║              TRADING SIGNAL               ║
╚════════════════════════════════════════╝

%s **TREND ANALYSIS**
Trend Direction: **%s**
Signal Strength: **%d%%** 💪

🚨 **MANIPULATION DETECTION**
Fake Signal Probability: **%d%%**
Status: %s

%s **NEXT MINUTE PREDICTION**
Predicted Move: **%s**
Prediction Confidence: **%d%%**
Expected Action: **%s**

📊 **TECHNICAL INDICATORS**
Volume Trend: **%s**
Support Level: **%s**
Resistance Level: **%s**

━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━
⏰ Analysis Time: %s
🤖 Bot: %s %s
━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━

⚡ **RECOMMENDATION**
%s

%s`

// Render formats rec as a Markdown report. It has no side effects, so the same
// record always renders to the same bytes.
func Render(rec domain.AnalysisRecord) string {
	return fmt.Sprintf(reportTemplate,
		TrendEmoji(rec),
		rec.Trend,
		rec.SignalStrength,
		rec.FakeProbability,
		ManipulationStatus(rec),
		MoveEmoji(rec),
		rec.NextMove,
		rec.PredictionConfidence,
		rec.NextMinutePrediction,
		rec.VolumeTrend,
		FormatLevel(rec.SupportLevel),
		FormatLevel(rec.ResistanceLevel),
		FormatTimestamp(rec),
		BotName, BotVersion,
		Recommendation(rec),
		Disclaimer(rec),
	)
}

// TrendEmoji is the up glyph for a bullish trend. Bearish and neutral share
// the down glyph.
func TrendEmoji(rec domain.AnalysisRecord) string {
	if rec.Trend == domain.TrendBullish {
		return emojiUp
	}
	return emojiDown
}

func MoveEmoji(rec domain.AnalysisRecord) string {
	if rec.NextMove == domain.MoveLong {
		return emojiBlue
	}
	return emojiRed
}

func ManipulationStatus(rec domain.AnalysisRecord) string {
	if rec.ManipulationSuspected() {
		return StatusCaution
	}
	return StatusAuthentic
}

func Recommendation(rec domain.AnalysisRecord) string {
	switch rec.RecommendedAction() {
	case domain.ActionLong:
		return RecommendLong
	case domain.ActionShort:
		return RecommendShort
	default:
		return RecommendWait
	}
}

func Disclaimer(rec domain.AnalysisRecord) string {
	if rec.NeedsDisclaimer() {
		return DisclaimerCautious
	}
	return DisclaimerConfident
}

// FormatLevel prints the shortest decimal that round-trips, so 0.9 stays "0.9"
// and 0.8512 stays "0.8512".
func FormatLevel(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatTimestamp prints the wall-clock time without a zone. Microseconds are
// omitted when they are zero.
func FormatTimestamp(rec domain.AnalysisRecord) string {
	ts := rec.Timestamp
	if ts.Nanosecond()/1000 == 0 {
		return ts.Format("2006-01-02T15:04:05")
	}
	return ts.Format("2006-01-02T15:04:05.000000")
}
