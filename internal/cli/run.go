package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/podclip/podclip/internal/logging"
	"github.com/podclip/podclip/internal/pipeline"
)

func run(cmd *cobra.Command, audio string) error {
	podcaster, _ := cmd.Flags().GetString("podcaster")
	platforms, _ := cmd.Flags().GetStringSlice("platforms")
	outDir, _ := cmd.Flags().GetString("out")
	resultsDir, _ := cmd.Flags().GetString("results")
	configFile, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	noKeywords, _ := cmd.Flags().GetBool("no-keywords")

	logging.Init(verbose)

	absAudio, err := filepath.Abs(audio)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Hour)
	defer cancel()

	cfg := pipeline.Config{
		AudioPath:  absAudio,
		Podcaster:  podcaster,
		Platforms:  platforms,
		OutDir:     outDir,
		ResultsDir: resultsDir,
		ConfigFile: configFile,

		FFmpegPath:   getenvDefault("FFMPEG_PATH", "ffmpeg"),
		WhisperBin:   getenvDefault("WHISPER_BIN", ".cache/bin/whisper.cpp"),
		WhisperModel: getenvDefault("WHISPER_MODEL", ".cache/models/ggml-base.bin"),

		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     os.Getenv("OPENAI_MODEL"),
		OpenAIBaseURL:   os.Getenv("OPENAI_BASE_URL"),
		DisableKeywords: noKeywords,

		PexelsAPIKey:  os.Getenv("PEXELS_API_KEY"),
		PexelsBaseURL: os.Getenv("PEXELS_BASE_URL"),

		Logger: logging.Component("cli"),
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	res, err := pipeline.Run(ctx, cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "clips detected: %d, videos created: %d, success: %v\n",
		res.ClipsDetected, res.VideosCreated, res.Success)
	for _, out := range res.OutputFiles {
		fmt.Fprintf(cmd.OutOrStdout(), "  clip %d [%s] -> %s\n", out.ClipNumber, out.Platform, out.VideoPath)
	}
	return nil
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
