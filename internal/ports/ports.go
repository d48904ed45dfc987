package ports

import (
	"context"

	"github.com/podclip/podclip/internal/types"
)

type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (types.Transcription, error)
}

type KeywordExtractor interface {
	Extract(ctx context.Context, text string) ([]string, error)
}

type FootageSearch interface {
	Name() string
	Search(ctx context.Context, query string) ([]types.FootageAsset, error)
}

type FootageDownloader interface {
	Fetch(ctx context.Context, url, destPath string) error
}

// EncodeJob describes one encoder invocation. An empty VisualPath requests
// an audio-only render.
type EncodeJob struct {
	VisualPath  string
	AudioPath   string
	StartSec    float64
	DurationSec float64
	CaptionPath string
	Width       int
	Height      int
	OutPath     string
}

type MediaEncoder interface {
	Encode(ctx context.Context, job EncodeJob) error
}
