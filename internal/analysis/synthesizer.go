package analysis

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"math/rand/v2"
	"time"

	"setu-signal-bot/internal/domain"
)

// RandSource is the subset of a random generator the synthesizer draws from.
type RandSource interface {
	IntN(n int) int
	Float64() float64
}

type globalRand struct{}

func (globalRand) IntN(n int) int   { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

// Synthesizer fabricates an AnalysisRecord for any decodable image. The image
// content is never inspected.
type Synthesizer struct {
	rng RandSource
	now func() time.Time
}

// NewSynthesizer uses the process-wide generator and wall clock when rng or now
// is nil.
func NewSynthesizer(rng RandSource, now func() time.Time) *Synthesizer {
	if rng == nil {
		rng = globalRand{}
	}
	if now == nil {
		now = time.Now
	}
	return &Synthesizer{rng: rng, now: now}
}

// Decode reads a PNG, JPEG or GIF image from r. The header is checked against
// domain.MaxImagePixels before the pixels are decoded.
func Decode(r io.Reader) (image.Image, error) {
	if r == nil {
		return nil, &InputDecodeError{Err: errors.New("no image supplied")}
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &InputDecodeError{Err: fmt.Errorf("read image: %w", err)}
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &InputDecodeError{Err: err}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, &InputDecodeError{Err: fmt.Errorf("image has no pixels (%dx%d)", cfg.Width, cfg.Height)}
	}
	if int64(cfg.Width)*int64(cfg.Height) > domain.MaxImagePixels {
		return nil, &InputDecodeError{Err: fmt.Errorf("image is %dx%d, above the %d pixel limit", cfg.Width, cfg.Height, domain.MaxImagePixels)}
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &InputDecodeError{Err: err}
	}
	return img, nil
}

// ProduceFrom decodes r and then calls Produce. On a decode failure it returns
// an *InputDecodeError and a zero record.
func (s *Synthesizer) ProduceFrom(r io.Reader) (domain.AnalysisRecord, error) {
	img, err := Decode(r)
	if err != nil {
		return domain.AnalysisRecord{}, err
	}
	return s.Produce(img)
}

// Produce draws every field independently of the image content. A nil image
// is an *InputDecodeError.
func (s *Synthesizer) Produce(img image.Image) (domain.AnalysisRecord, error) {
	if img == nil {
		return domain.AnalysisRecord{}, &InputDecodeError{Err: errors.New("nil image")}
	}

	trend := pick(s.rng, domain.Trends)
	return domain.AnalysisRecord{
		Timestamp:            s.now(),
		Trend:                trend,
		SignalStrength:       s.intBetween(domain.SignalStrengthMin, domain.SignalStrengthMax),
		FakeProbability:      s.intBetween(domain.FakeProbabilityMin, domain.FakeProbabilityMax),
		NextMove:             domain.MoveFor(trend),
		PredictionConfidence: s.intBetween(domain.PredictionConfidenceMin, domain.PredictionConfidenceMax),
		VolumeTrend:          pick(s.rng, domain.VolumeTrends),
		SupportLevel:         s.levelBetween(domain.SupportLevelMin, domain.SupportLevelMax),
		ResistanceLevel:      s.levelBetween(domain.ResistanceLevelMin, domain.ResistanceLevelMax),
		NextMinutePrediction: pick(s.rng, domain.Outcomes),
	}, nil
}

// intBetween is inclusive on both ends.
func (s *Synthesizer) intBetween(lo, hi int) int {
	return lo + s.rng.IntN(hi-lo+1)
}

func (s *Synthesizer) levelBetween(lo, hi float64) float64 {
	v := RoundTo(lo+s.rng.Float64()*(hi-lo), domain.LevelDecimals)
	// Clamp for sources that return exactly 1.0.
	return math.Min(math.Max(v, lo), hi)
}

func pick[T any](rng RandSource, options []T) T {
	return options[rng.IntN(len(options))]
}

// RoundTo rounds half away from zero to the given number of fractional digits.
func RoundTo(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}
