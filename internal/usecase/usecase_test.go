package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/podclip/podclip/internal/domain/keywords"
	"github.com/podclip/podclip/internal/domain/viral"
	"github.com/podclip/podclip/internal/types"
)

const viralText = "This is absolutely SHOCKING! You won't believe this incredible secret trick " +
	"that will change how you think: here's the method, step by step. " +
	"This is absolutely SHOCKING! You won't believe this incredible secret trick " +
	"that will change how you think: here's the method, step by step. " +
	"This is absolutely SHOCKING! You won't believe this incredible secret trick " +
	"that will change how you think: here's the method, step by step."

type fakeTranscriber struct {
	text string
	err  error
}

func (f fakeTranscriber) Transcribe(_ context.Context, _ string) (types.Transcription, error) {
	if f.err != nil {
		return types.Transcription{}, f.err
	}
	return types.Transcription{Text: f.text}, nil
}

type fakeFootage struct {
	assets    []types.FootageAsset
	panicking bool
}

func (f fakeFootage) Select(_ context.Context, _ []string) []types.FootageAsset {
	if f.panicking {
		panic("footage selector blew up")
	}
	return f.assets
}

type fakeRenderer struct {
	mu        sync.Mutex
	failFor   map[string]bool // platform -> fail
	delayFor  map[string]time.Duration
	panicking bool
	calls     []string
}

func (f *fakeRenderer) Render(_ context.Context, spec types.RenderSpec, _ string, _ types.PlatformProfile) (string, error) {
	if f.panicking {
		panic("renderer blew up")
	}
	if d := f.delayFor[spec.Platform]; d > 0 {
		time.Sleep(d)
	}
	f.mu.Lock()
	f.calls = append(f.calls, spec.ClipID)
	f.mu.Unlock()
	if f.failFor[spec.Platform] {
		return "", errors.New("encode failed")
	}
	return fmt.Sprintf("/out/%s.mp4", spec.ClipID), nil
}

func newTestUsecase(d Deps) Usecase {
	if d.Scorer == nil {
		d.Scorer = viral.NewScorer(viral.Config{}, zerolog.Nop())
	}
	if d.Keywords == nil {
		d.Keywords = keywords.New(nil, zerolog.Nop())
	}
	return New(d, zerolog.Nop())
}

func testProfiles(platforms ...string) map[string]types.PlatformProfile {
	out := make(map[string]types.PlatformProfile, len(platforms))
	for _, p := range platforms {
		out[p] = types.PlatformProfile{Width: 1080, Height: 1920, MaxDurationSec: 90}
	}
	return out
}

func testInput(platforms ...string) Input {
	return Input{
		AudioPath:     "/audio/episode.wav",
		Podcaster:     "test",
		Platforms:     platforms,
		Profiles:      testProfiles(platforms...),
		MaxClips:      3,
		RenderWorkers: 4,
	}
}

func someFootage() []types.FootageAsset {
	return []types.FootageAsset{{ID: "pexels_1", DownloadURL: "https://cdn/1", RelevanceScore: 0.5}}
}

func TestRun_NoCandidates(t *testing.T) {
	uc := newTestUsecase(Deps{
		Transcriber: fakeTranscriber{text: "just a short test clip"},
		Footage:     fakeFootage{},
		Renderer:    &fakeRenderer{},
	})
	run := uc.Run(context.Background(), testInput("tiktok"))

	if run.Success {
		t.Fatalf("expected success=false")
	}
	if run.ClipsDetected != 0 || run.VideosCreated != 0 {
		t.Fatalf("expected empty run, got %+v", run)
	}
	if run.DetectReason != string(viral.ReasonTooShort) {
		t.Fatalf("expected too-short reason, got %q", run.DetectReason)
	}
}

func TestRun_TranscriberFailureIsDistinguished(t *testing.T) {
	uc := newTestUsecase(Deps{
		Transcriber: fakeTranscriber{err: errors.New("model not found")},
		Footage:     fakeFootage{},
		Renderer:    &fakeRenderer{},
	})
	run := uc.Run(context.Background(), testInput("tiktok"))

	if run.Success || run.ClipsDetected != 0 {
		t.Fatalf("expected failed run, got %+v", run)
	}
	if run.DetectReason != reasonTranscriptionFailed {
		t.Fatalf("expected transcription failure reason, got %q", run.DetectReason)
	}
}

func TestRun_PartialPlatformFailure(t *testing.T) {
	renderer := &fakeRenderer{failFor: map[string]bool{"instagram": true}}
	uc := newTestUsecase(Deps{
		Transcriber: fakeTranscriber{text: viralText},
		Footage:     fakeFootage{assets: someFootage()},
		Renderer:    renderer,
	})
	run := uc.Run(context.Background(), testInput("tiktok", "instagram"))

	if !run.Success {
		t.Fatalf("expected partial success to count as success")
	}
	if run.VideosCreated != 1 || len(run.OutputFiles) != 1 {
		t.Fatalf("expected exactly one result, got %+v", run.OutputFiles)
	}
	if run.OutputFiles[0].Platform != "tiktok" {
		t.Fatalf("expected the surviving platform, got %q", run.OutputFiles[0].Platform)
	}
	if len(renderer.calls) != 2 {
		t.Fatalf("expected both platforms attempted, got %v", renderer.calls)
	}
}

func TestRun_SummaryOrderIsDeterministic(t *testing.T) {
	// The last platform finishes first; slots must still keep enumeration order.
	renderer := &fakeRenderer{delayFor: map[string]time.Duration{
		"tiktok":    30 * time.Millisecond,
		"instagram": 15 * time.Millisecond,
	}}
	uc := newTestUsecase(Deps{
		Transcriber: fakeTranscriber{text: viralText},
		Footage:     fakeFootage{assets: someFootage()},
		Renderer:    renderer,
	})
	run := uc.Run(context.Background(), testInput("tiktok", "instagram", "youtube_shorts"))

	want := []string{"tiktok", "instagram", "youtube_shorts"}
	if len(run.OutputFiles) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(run.OutputFiles))
	}
	for i, p := range want {
		if run.OutputFiles[i].Platform != p {
			t.Fatalf("result %d: expected platform %q, got %q", i, p, run.OutputFiles[i].Platform)
		}
	}
}

func TestRun_SkipsCandidateWithoutFootage(t *testing.T) {
	renderer := &fakeRenderer{}
	uc := newTestUsecase(Deps{
		Transcriber: fakeTranscriber{text: viralText},
		Footage:     fakeFootage{}, // nothing found
		Renderer:    renderer,
	})
	run := uc.Run(context.Background(), testInput("tiktok"))

	if run.Success || run.VideosCreated != 0 {
		t.Fatalf("expected no videos, got %+v", run)
	}
	if run.ClipsDetected != 1 {
		t.Fatalf("candidate should still be detected, got %d", run.ClipsDetected)
	}
	if len(renderer.calls) != 0 {
		t.Fatalf("expected no render attempts, got %v", renderer.calls)
	}
	// The skipped candidate still appears in the exported analysis.
	if len(run.Clips) != 1 {
		t.Fatalf("expected clip analysis for the skipped candidate, got %d", len(run.Clips))
	}
}

func TestRun_ResultCarriesCandidateMetadata(t *testing.T) {
	uc := newTestUsecase(Deps{
		Transcriber: fakeTranscriber{text: viralText},
		Footage:     fakeFootage{assets: someFootage()},
		Renderer:    &fakeRenderer{},
	})
	run := uc.Run(context.Background(), testInput("tiktok"))

	if len(run.OutputFiles) != 1 {
		t.Fatalf("expected one result, got %d", len(run.OutputFiles))
	}
	res := run.OutputFiles[0]
	if res.ClipNumber != 1 {
		t.Fatalf("unexpected clip number %d", res.ClipNumber)
	}
	if res.ConfidenceScore <= 0.3 {
		t.Fatalf("expected echoed confidence, got %v", res.ConfidenceScore)
	}
	if len([]rune(res.Transcript)) > 103 {
		t.Fatalf("expected display excerpt of at most 100 chars plus ellipsis, got %d", len([]rune(res.Transcript)))
	}
	if !strings.HasSuffix(res.Transcript, "...") {
		t.Fatalf("expected ellipsis marker on excerpt: %q", res.Transcript)
	}
	if len(res.Keywords) == 0 {
		t.Fatalf("expected keywords on result")
	}
}

func TestRun_RecoversFromPanic(t *testing.T) {
	uc := newTestUsecase(Deps{
		Transcriber: fakeTranscriber{text: viralText},
		Footage:     fakeFootage{panicking: true},
		Renderer:    &fakeRenderer{},
	})
	run := uc.Run(context.Background(), testInput("tiktok"))

	if run.Success {
		t.Fatalf("expected failed run")
	}
	if run.Error == "" {
		t.Fatalf("expected error recorded on the summary")
	}
}

func TestRun_IsolatesPanickingRenderer(t *testing.T) {
	uc := newTestUsecase(Deps{
		Transcriber: fakeTranscriber{text: viralText},
		Footage:     fakeFootage{assets: someFootage()},
		Renderer:    &fakeRenderer{panicking: true},
	})
	run := uc.Run(context.Background(), testInput("tiktok", "instagram"))

	if run.Success || run.VideosCreated != 0 {
		t.Fatalf("expected no videos, got %+v", run)
	}
	// A panicking render attempt is converted to a per-pair failure, not a
	// run-level fault.
	if run.Error != "" {
		t.Fatalf("expected no run-level error, got %q", run.Error)
	}
}
