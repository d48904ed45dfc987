package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/podclip/podclip/internal/types"
)

// Config holds platform profiles and pipeline limits. Values are defaults
// overridable from a YAML file.
type Config struct {
	Platforms map[string]types.PlatformProfile `yaml:"platforms"`
	Limits    Limits                           `yaml:"limits"`
}

// Limits collects the tunable cost-control caps of the pipeline. The caps
// mirror the calibration of the scoring heuristic and are deliberately
// configurable rather than hard-coded.
type Limits struct {
	MaxClips          int     `yaml:"max_clips"`
	MaxFootagePerClip int     `yaml:"max_footage_per_clip"`
	MaxKeywordQueries int     `yaml:"max_keyword_queries"`
	MaxFootageResults int     `yaml:"max_footage_results"`
	RenderWorkers     int     `yaml:"render_workers"`
	WordsPerSecond    float64 `yaml:"words_per_second"`
	MinClipSec        float64 `yaml:"min_clip_sec"`
	MaxClipSec        float64 `yaml:"max_clip_sec"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Platforms: map[string]types.PlatformProfile{
			"tiktok": {
				Width:          1080,
				Height:         1920,
				MaxDurationSec: 60,
				CaptionStyle:   "trendy",
			},
			"instagram": {
				Width:          1080,
				Height:         1920,
				MaxDurationSec: 90,
				CaptionStyle:   "clean",
			},
			"youtube_shorts": {
				Width:          1080,
				Height:         1920,
				MaxDurationSec: 60,
				CaptionStyle:   "educational",
			},
		},
		Limits: Limits{
			MaxClips:          3,
			MaxFootagePerClip: 3,
			MaxKeywordQueries: 3,
			MaxFootageResults: 10,
			RenderWorkers:     4,
			WordsPerSecond:    3,
			MinClipSec:        15,
			MaxClipSec:        90,
		},
	}
}

// Load reads a YAML config file on top of the defaults. A missing path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Profile looks up the platform profile for a platform name.
func (c Config) Profile(platform string) (types.PlatformProfile, bool) {
	p, ok := c.Platforms[platform]
	return p, ok
}
