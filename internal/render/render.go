package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/podclip/podclip/internal/domain/captions"
	"github.com/podclip/podclip/internal/ports"
	"github.com/podclip/podclip/internal/types"
)

// Config tunes rendering. WorkDir receives transient files (downloaded
// footage, caption tracks); OutDir receives finished artifacts.
type Config struct {
	WorkDir         string
	OutDir          string
	MaxFootage      int
	DownloadTimeout time.Duration
	EncodeTimeout   time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxFootage:      3,
		DownloadTimeout: 90 * time.Second,
		EncodeTimeout:   5 * time.Minute,
	}
}

// Renderer turns one RenderSpec into a platform-framed video artifact.
type Renderer struct {
	downloader ports.FootageDownloader
	encoder    ports.MediaEncoder
	cfg        Config
	log        zerolog.Logger
}

func New(downloader ports.FootageDownloader, encoder ports.MediaEncoder, cfg Config, log zerolog.Logger) *Renderer {
	def := DefaultConfig()
	if cfg.MaxFootage <= 0 {
		cfg.MaxFootage = def.MaxFootage
	}
	if cfg.DownloadTimeout <= 0 {
		cfg.DownloadTimeout = def.DownloadTimeout
	}
	if cfg.EncodeTimeout <= 0 {
		cfg.EncodeTimeout = def.EncodeTimeout
	}
	return &Renderer{downloader: downloader, encoder: encoder, cfg: cfg, log: log}
}

// Render downloads footage, builds captions and encodes the clip. Footage
// download failures are skipped; with zero downloads an audio-only render
// is still attempted. The artifact path is deterministic per
// (clip, platform) so repeated renders overwrite.
func (r *Renderer) Render(ctx context.Context, spec types.RenderSpec, audioPath string, profile types.PlatformProfile) (string, error) {
	downloaded := r.downloadFootage(ctx, spec)
	if len(downloaded) == 0 {
		r.log.Warn().Str("clip", spec.ClipID).Msg("no footage downloaded, rendering audio-only clip")
	}

	duration := spec.EndSec - spec.StartSec
	if profile.MaxDurationSec > 0 && duration > profile.MaxDurationSec {
		duration = profile.MaxDurationSec
	}

	captionPath := ""
	if srt := captions.RenderSRT(spec.Transcript, duration); srt != "" {
		captionPath = filepath.Join(r.cfg.WorkDir, spec.ClipID+".srt")
		if err := os.WriteFile(captionPath, []byte(srt), 0o644); err != nil {
			return "", fmt.Errorf("write captions: %w", err)
		}
	}

	visual := ""
	if len(downloaded) > 0 {
		visual = downloaded[0]
	}

	outPath := filepath.Join(r.cfg.OutDir, spec.ClipID+".mp4")
	ectx, cancel := context.WithTimeout(ctx, r.cfg.EncodeTimeout)
	defer cancel()
	err := r.encoder.Encode(ectx, ports.EncodeJob{
		VisualPath:  visual,
		AudioPath:   audioPath,
		StartSec:    spec.StartSec,
		DurationSec: duration,
		CaptionPath: captionPath,
		Width:       profile.Width,
		Height:      profile.Height,
		OutPath:     outPath,
	})
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", spec.ClipID, err)
	}
	return outPath, nil
}

// downloadFootage fetches up to MaxFootage assets concurrently. Results
// land in indexed slots so the returned order matches the asset ranking
// regardless of completion order.
func (r *Renderer) downloadFootage(ctx context.Context, spec types.RenderSpec) []string {
	n := len(spec.Footage)
	if n > r.cfg.MaxFootage {
		n = r.cfg.MaxFootage
	}

	slots := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int, asset types.FootageAsset) {
			defer wg.Done()
			dctx, cancel := context.WithTimeout(ctx, r.cfg.DownloadTimeout)
			defer cancel()
			dest := filepath.Join(r.cfg.WorkDir, fmt.Sprintf("broll_%s_%d.mp4", spec.ClipID, i))
			if err := r.downloader.Fetch(dctx, asset.DownloadURL, dest); err != nil {
				r.log.Warn().Err(err).
					Str("asset", asset.ID).
					Str("clip", spec.ClipID).
					Msg("footage download failed, skipping asset")
				return
			}
			slots[i] = dest
		}(i, spec.Footage[i])
	}
	wg.Wait()

	var out []string
	for _, p := range slots {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
