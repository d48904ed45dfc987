package types

import "strings"

// Transcription is the text output of the speech-to-text collaborator.
type Transcription struct {
	Text string `json:"text"`
}

// ViralScore holds the four named sub-scores, each normalized to [0,1].
type ViralScore struct {
	PatternMatches     float64 `json:"pattern_matches"`
	EmotionalIntensity float64 `json:"emotional_intensity"`
	LengthScore        float64 `json:"length_score"`
	Readability        float64 `json:"readability"`
}

// Confidence is the arithmetic mean of the four sub-scores.
func (s ViralScore) Confidence() float64 {
	return (s.PatternMatches + s.EmotionalIntensity + s.LengthScore + s.Readability) / 4
}

// ClipCandidate is a scored transcript segment eligible for rendering.
// Transcript always carries the full text; truncation for display happens
// via Excerpt, never at storage time.
type ClipCandidate struct {
	StartSec           float64
	EndSec             float64
	Transcript         string
	Keywords           []string
	Score              ViralScore
	SpeakerEnergy      float64
	EmotionalIntensity float64
}

// Excerpt returns the first n runes of the transcript with an ellipsis
// marker when the text was cut.
func (c ClipCandidate) Excerpt(n int) string {
	r := []rune(strings.TrimSpace(c.Transcript))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n]) + "..."
}

// FootageAsset is one stock-footage clip returned by a search provider.
// ID is provider-qualified ("<provider>_<provider_id>") and globally unique.
type FootageAsset struct {
	ID             string  `json:"id"`
	URL            string  `json:"url"`
	DownloadURL    string  `json:"download_url"`
	Title          string  `json:"title"`
	DurationSec    float64 `json:"duration"`
	Resolution     string  `json:"resolution"`
	Source         string  `json:"source"`
	RelevanceScore float64 `json:"relevance_score"`
}

// RenderSpec is the immutable input of one render attempt, built fresh per
// (candidate, platform) pair.
type RenderSpec struct {
	ClipID     string
	StartSec   float64
	EndSec     float64
	Transcript string
	Footage    []FootageAsset
	Platform   string
}

// PlatformProfile is the static output configuration for one platform.
type PlatformProfile struct {
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	MaxDurationSec float64 `yaml:"max_duration_sec"`
	CaptionStyle   string  `yaml:"caption_style"`
}

// RenderResult records one successful render.
type RenderResult struct {
	ClipNumber      int      `json:"clip_number"`
	Platform        string   `json:"platform"`
	VideoPath       string   `json:"video_path"`
	ConfidenceScore float64  `json:"confidence_score"`
	Transcript      string   `json:"transcript"`
	Keywords        []string `json:"keywords"`
}

// ClipInfo is the per-candidate analysis exported with the run summary.
type ClipInfo struct {
	ID                 string     `json:"id"`
	StartTime          float64    `json:"start_time"`
	EndTime            float64    `json:"end_time"`
	Duration           float64    `json:"duration"`
	Transcript         string     `json:"transcript"`
	ConfidenceScore    float64    `json:"confidence_score"`
	ViralIndicators    ViralScore `json:"viral_indicators"`
	TopicKeywords      []string   `json:"topic_keywords"`
	SpeakerEnergy      float64    `json:"speaker_energy"`
	EmotionalIntensity float64    `json:"emotional_intensity"`
}

// PipelineRun is the aggregate summary of one end-to-end invocation.
// Success is true iff at least one render succeeded.
type PipelineRun struct {
	Success       bool           `json:"success"`
	AudioPath     string         `json:"audio_path"`
	Podcaster     string         `json:"podcaster"`
	Platforms     []string       `json:"target_platforms"`
	ClipsDetected int            `json:"clips_detected"`
	VideosCreated int            `json:"videos_created"`
	OutputFiles   []RenderResult `json:"output_files"`
	Clips         []ClipInfo     `json:"clips,omitempty"`
	DetectReason  string         `json:"detect_reason,omitempty"`
	Error         string         `json:"error,omitempty"`
}
