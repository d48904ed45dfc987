package viral

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/podclip/podclip/internal/types"
)

// Reason explains an empty selection so callers can tell a too-short
// transcript from one that scored below the acceptance threshold.
type Reason string

const (
	ReasonNone           Reason = ""
	ReasonTooShort       Reason = "transcript_too_short"
	ReasonBelowThreshold Reason = "below_confidence_threshold"
)

// Selection is the outcome of candidate detection over one transcription.
type Selection struct {
	Candidates []types.ClipCandidate
	Reason     Reason
}

// Config tunes candidate selection. The words-per-second constant is a
// rough duration estimate, not a calibrated speech model.
type Config struct {
	WordsPerSecond float64
	MinDurationSec float64
	MaxDurationSec float64
	MinConfidence  float64
}

func DefaultConfig() Config {
	return Config{
		WordsPerSecond: 3,
		MinDurationSec: 15,
		MaxDurationSec: 90,
		MinConfidence:  0.3,
	}
}

// Scorer turns transcriptions into scored clip candidates.
type Scorer struct {
	cfg Config
	log zerolog.Logger
}

func NewScorer(cfg Config, log zerolog.Logger) *Scorer {
	def := DefaultConfig()
	if cfg.WordsPerSecond <= 0 {
		cfg.WordsPerSecond = def.WordsPerSecond
	}
	if cfg.MinDurationSec <= 0 {
		cfg.MinDurationSec = def.MinDurationSec
	}
	if cfg.MaxDurationSec <= 0 {
		cfg.MaxDurationSec = def.MaxDurationSec
	}
	if cfg.MinConfidence <= 0 {
		cfg.MinConfidence = def.MinConfidence
	}
	return &Scorer{cfg: cfg, log: log}
}

// Select emits zero or more clip candidates for a transcription. The
// current policy produces at most one whole-transcript candidate; the slice
// return keeps room for segment-level detection.
//
// A candidate is emitted iff its confidence strictly exceeds MinConfidence.
func (s *Scorer) Select(tr types.Transcription) Selection {
	text := strings.TrimSpace(tr.Text)
	wordCount := len(strings.Fields(text))

	estimated := float64(wordCount) / s.cfg.WordsPerSecond
	if estimated < s.cfg.MinDurationSec {
		s.log.Debug().
			Int("words", wordCount).
			Float64("estimated_sec", estimated).
			Msg("transcript too short for clip detection")
		return Selection{Reason: ReasonTooShort}
	}

	score := Score(text)
	confidence := score.Confidence()
	if confidence <= s.cfg.MinConfidence {
		s.log.Debug().
			Float64("confidence", confidence).
			Msg("no candidate above confidence threshold")
		return Selection{Reason: ReasonBelowThreshold}
	}

	end := estimated
	if end > s.cfg.MaxDurationSec {
		end = s.cfg.MaxDurationSec
	}

	cand := types.ClipCandidate{
		StartSec:           0,
		EndSec:             end,
		Transcript:         text,
		Score:              score,
		SpeakerEnergy:      0.5,
		EmotionalIntensity: score.EmotionalIntensity,
	}
	s.log.Info().
		Float64("confidence", confidence).
		Float64("end_sec", end).
		Msg("clip candidate detected")
	return Selection{Candidates: []types.ClipCandidate{cand}}
}
