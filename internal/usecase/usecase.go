package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/podclip/podclip/internal/domain/keywords"
	"github.com/podclip/podclip/internal/domain/viral"
	"github.com/podclip/podclip/internal/ports"
	"github.com/podclip/podclip/internal/types"
)

const reasonTranscriptionFailed = "transcription_failed"

// ClipRenderer renders one (candidate, platform) pair to an artifact path.
type ClipRenderer interface {
	Render(ctx context.Context, spec types.RenderSpec, audioPath string, profile types.PlatformProfile) (string, error)
}

// FootageSelector resolves a keyword set to a ranked footage list.
type FootageSelector interface {
	Select(ctx context.Context, keywords []string) []types.FootageAsset
}

type Deps struct {
	Transcriber ports.Transcriber
	Scorer      *viral.Scorer
	Keywords    *keywords.Extractor
	Footage     FootageSelector
	Renderer    ClipRenderer
}

// Usecase is the pipeline orchestrator: it sequences detection, enrichment
// and rendering across candidates and platforms, isolating failures so one
// bad candidate or render never aborts the run.
type Usecase struct {
	d   Deps
	log zerolog.Logger
}

func New(d Deps, log zerolog.Logger) Usecase {
	return Usecase{d: d, log: log}
}

type Input struct {
	AudioPath string
	Podcaster string
	Platforms []string
	Profiles  map[string]types.PlatformProfile

	// MaxClips bounds how many candidates are processed, highest-first as
	// produced by the scorer. RenderWorkers bounds concurrent encoder use.
	MaxClips      int
	RenderWorkers int
}

// Run executes one pipeline run and always returns a summary, even on
// unexpected failure.
func (u Usecase) Run(ctx context.Context, in Input) (run types.PipelineRun) {
	run = types.PipelineRun{
		AudioPath:   in.AudioPath,
		Podcaster:   in.Podcaster,
		Platforms:   in.Platforms,
		OutputFiles: []types.RenderResult{},
	}
	defer func() {
		if rec := recover(); rec != nil {
			u.log.Error().Interface("panic", rec).Msg("pipeline run failed unexpectedly")
			run.Error = fmt.Sprintf("unexpected pipeline failure: %v", rec)
			run.Success = false
		}
	}()

	tr, err := u.d.Transcriber.Transcribe(ctx, in.AudioPath)
	if err != nil {
		u.log.Error().Err(err).Str("audio", in.AudioPath).Msg("transcription failed")
		run.DetectReason = reasonTranscriptionFailed
		return run
	}

	sel := u.d.Scorer.Select(tr)
	run.DetectReason = string(sel.Reason)
	run.ClipsDetected = len(sel.Candidates)
	if len(sel.Candidates) == 0 {
		u.log.Info().Str("reason", run.DetectReason).Msg("no clip candidates detected")
		return run
	}

	cands := sel.Candidates
	if in.MaxClips > 0 && len(cands) > in.MaxClips {
		cands = cands[:in.MaxClips]
	}

	workers := in.RenderWorkers
	if workers <= 0 {
		workers = 1
	}

	for i := range cands {
		cand := cands[i]
		cand.Keywords = u.d.Keywords.Extract(ctx, cand.Transcript)
		run.Clips = append(run.Clips, clipInfo(i+1, cand))

		assets := u.d.Footage.Select(ctx, cand.Keywords)
		if len(assets) == 0 {
			u.log.Warn().Int("clip", i+1).Msg("no footage found, skipping candidate")
			continue
		}

		// Indexed slots keep summary order deterministic under concurrency:
		// candidate-then-platform, as enumerated.
		slots := make([]*types.RenderResult, len(in.Platforms))
		sem := make(chan struct{}, workers)
		var wg sync.WaitGroup
		for p, platform := range in.Platforms {
			profile, ok := in.Profiles[platform]
			if !ok {
				u.log.Warn().Str("platform", platform).Msg("unknown platform profile, skipping")
				continue
			}
			wg.Add(1)
			go func(p int, platform string, profile types.PlatformProfile) {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()

				spec := types.RenderSpec{
					ClipID:     fmt.Sprintf("clip_%d_%s", i+1, platform),
					StartSec:   cand.StartSec,
					EndSec:     cand.EndSec,
					Transcript: cand.Transcript,
					Footage:    assets,
					Platform:   platform,
				}
				path, err := u.safeRender(ctx, spec, in.AudioPath, profile)
				if err != nil {
					u.log.Warn().Err(err).
						Int("clip", i+1).
						Str("platform", platform).
						Msg("render failed, continuing with remaining work")
					return
				}
				slots[p] = &types.RenderResult{
					ClipNumber:      i + 1,
					Platform:        platform,
					VideoPath:       path,
					ConfidenceScore: cand.Score.Confidence(),
					Transcript:      cand.Excerpt(100),
					Keywords:        cand.Keywords,
				}
			}(p, platform, profile)
		}
		wg.Wait()

		for _, s := range slots {
			if s != nil {
				run.OutputFiles = append(run.OutputFiles, *s)
				run.VideosCreated++
			}
		}
	}

	run.Success = run.VideosCreated > 0
	return run
}

// safeRender confines a panicking renderer to its own (clip, platform)
// attempt; goroutine panics would otherwise kill the whole process.
func (u Usecase) safeRender(ctx context.Context, spec types.RenderSpec, audioPath string, profile types.PlatformProfile) (path string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("render panicked: %v", rec)
		}
	}()
	return u.d.Renderer.Render(ctx, spec, audioPath, profile)
}

func clipInfo(n int, cand types.ClipCandidate) types.ClipInfo {
	return types.ClipInfo{
		ID:                 fmt.Sprintf("clip_%d", n),
		StartTime:          cand.StartSec,
		EndTime:            cand.EndSec,
		Duration:           cand.EndSec - cand.StartSec,
		Transcript:         cand.Excerpt(200),
		ConfidenceScore:    cand.Score.Confidence(),
		ViralIndicators:    cand.Score,
		TopicKeywords:      cand.Keywords,
		SpeakerEnergy:      cand.SpeakerEnergy,
		EmotionalIntensity: cand.EmotionalIntensity,
	}
}
