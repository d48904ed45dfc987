package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/podclip/podclip/internal/config"
	"github.com/podclip/podclip/internal/domain/footage"
	"github.com/podclip/podclip/internal/domain/keywords"
	"github.com/podclip/podclip/internal/domain/viral"
	"github.com/podclip/podclip/internal/ports"
	"github.com/podclip/podclip/internal/ports/adapters/ffmpeg"
	"github.com/podclip/podclip/internal/ports/adapters/httpfetch"
	"github.com/podclip/podclip/internal/ports/adapters/openai"
	"github.com/podclip/podclip/internal/ports/adapters/pexels"
	"github.com/podclip/podclip/internal/ports/adapters/whispercli"
	"github.com/podclip/podclip/internal/render"
	"github.com/podclip/podclip/internal/types"
	"github.com/podclip/podclip/internal/usecase"
)

type Config struct {
	AudioPath string
	Podcaster string
	Platforms []string

	// OutDir receives finished artifacts, ResultsDir the run summaries.
	// WorkDir is the base for transient per-run directories; it is cleaned
	// on every exit path.
	OutDir     string
	ResultsDir string
	WorkDir    string

	// ConfigFile optionally overrides platform profiles and limits.
	ConfigFile string

	FFmpegPath   string
	WhisperBin   string
	WhisperModel string

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	// DisableKeywords turns the keyword-extraction capability off
	// explicitly; candidates then carry the fixed fallback keywords.
	DisableKeywords bool

	PexelsAPIKey  string
	PexelsBaseURL string

	Logger zerolog.Logger
}

// Validate fails fast on configuration errors so an unavailable
// collaborator is a startup error, not a runtime surprise.
func (c Config) Validate() error {
	if c.AudioPath == "" {
		return errors.New("audio path is empty")
	}
	if _, err := os.Stat(c.AudioPath); err != nil {
		return fmt.Errorf("stat audio: %w", err)
	}
	if len(c.Platforms) == 0 {
		return errors.New("at least one target platform is required")
	}
	cfg, err := config.Load(c.ConfigFile)
	if err != nil {
		return err
	}
	for _, p := range c.Platforms {
		if _, ok := cfg.Profile(p); !ok {
			return fmt.Errorf("unknown platform %q", p)
		}
	}
	if c.WhisperBin == "" || c.WhisperModel == "" {
		return errors.New("whisper binary and model paths are required")
	}
	if c.PexelsAPIKey == "" {
		return errors.New("PEXELS_API_KEY is required")
	}
	if !c.DisableKeywords && c.OpenAIAPIKey == "" {
		return errors.New("OPENAI_API_KEY is required (or disable keyword extraction)")
	}
	return nil
}

// Run executes one pipeline run: wires the collaborators, drives the
// orchestrator, persists the summary and cleans up transient files on
// every exit path.
func Run(ctx context.Context, c Config) (run types.PipelineRun, err error) {
	log := c.Logger

	cfg, err := config.Load(c.ConfigFile)
	if err != nil {
		return run, err
	}

	runID := strings.Split(uuid.NewString(), "-")[0]
	baseWork := c.WorkDir
	if baseWork == "" {
		baseWork = filepath.Join("data", "temp")
	}
	workDir := filepath.Join(baseWork, "runs", runID)
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return run, err
	}
	// The orchestrator waits for all in-flight work before returning, so
	// removing the work dir here cannot race a writer.
	defer os.RemoveAll(workDir)

	outDir := c.OutDir
	if outDir == "" {
		outDir = "out"
	}
	resultsDir := c.ResultsDir
	if resultsDir == "" {
		resultsDir = filepath.Join("data", "processed")
	}
	for _, dir := range []string{outDir, resultsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return run, err
		}
	}
	log.Info().Str("run_id", runID).Str("work_dir", workDir).Msg("pipeline run starting")

	var extractor ports.KeywordExtractor
	if !c.DisableKeywords {
		extractor = openai.New(c.OpenAIAPIKey, c.OpenAIModel, c.OpenAIBaseURL)
	}

	deps := usecase.Deps{
		Transcriber: whispercli.New(c.WhisperBin, c.WhisperModel, workDir),
		Scorer: viral.NewScorer(viral.Config{
			WordsPerSecond: cfg.Limits.WordsPerSecond,
			MinDurationSec: cfg.Limits.MinClipSec,
			MaxDurationSec: cfg.Limits.MaxClipSec,
		}, log.With().Str("component", "viral").Logger()),
		Keywords: keywords.New(extractor, log.With().Str("component", "keywords").Logger()),
		Footage: footage.NewSelector(
			[]ports.FootageSearch{pexels.New(c.PexelsAPIKey, c.PexelsBaseURL)},
			footage.Config{
				MaxQueries: cfg.Limits.MaxKeywordQueries,
				MaxResults: cfg.Limits.MaxFootageResults,
			},
			log.With().Str("component", "footage").Logger(),
		),
		Renderer: render.New(
			httpfetch.New(),
			ffmpeg.New(c.FFmpegPath),
			render.Config{
				WorkDir:    workDir,
				OutDir:     outDir,
				MaxFootage: cfg.Limits.MaxFootagePerClip,
			},
			log.With().Str("component", "render").Logger(),
		),
	}

	uc := usecase.New(deps, log.With().Str("component", "pipeline").Logger())
	run = uc.Run(ctx, usecase.Input{
		AudioPath:     c.AudioPath,
		Podcaster:     c.Podcaster,
		Platforms:     c.Platforms,
		Profiles:      cfg.Platforms,
		MaxClips:      cfg.Limits.MaxClips,
		RenderWorkers: cfg.Limits.RenderWorkers,
	})

	summaryPath, err := PersistSummary(resultsDir, c.AudioPath, run)
	if err != nil {
		return run, err
	}
	log.Info().
		Bool("success", run.Success).
		Int("videos_created", run.VideosCreated).
		Str("summary", summaryPath).
		Msg("pipeline run complete")
	return run, nil
}

// PersistSummary writes the run summary keyed by the audio file stem.
func PersistSummary(resultsDir, audioPath string, run types.PipelineRun) (string, error) {
	stem := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	path := filepath.Join(resultsDir, "pipeline_results_"+stem+".json")
	b, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal summary: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("write summary: %w", err)
	}
	return path, nil
}
