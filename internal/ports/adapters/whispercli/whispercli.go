package whispercli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/podclip/podclip/internal/types"
)

// Adapter runs a whisper.cpp binary and reads its JSON output.
type Adapter struct {
	bin      string
	model    string
	cacheDir string
}

func New(binPath, modelPath, cacheDir string) *Adapter {
	return &Adapter{bin: binPath, model: modelPath, cacheDir: cacheDir}
}

func (a *Adapter) Transcribe(ctx context.Context, audioPath string) (types.Transcription, error) {
	outPrefix := filepath.Join(a.cacheDir, "whisper")
	args := []string{
		"-m", a.model,
		"-f", audioPath,
		"-oj",
		"-of", outPrefix,
	}
	cmd := exec.CommandContext(ctx, a.bin, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return types.Transcription{}, fmt.Errorf("whisper.cpp failed: %w\n%s", err, string(b))
	}

	jb, err := os.ReadFile(outPrefix + ".json")
	if err != nil {
		return types.Transcription{}, err
	}

	var out struct {
		Transcription []struct {
			Text string `json:"text"`
		} `json:"transcription"`
	}
	if err := json.Unmarshal(jb, &out); err != nil {
		return types.Transcription{}, fmt.Errorf("parse whisper output: %w", err)
	}

	parts := make([]string, 0, len(out.Transcription))
	for _, seg := range out.Transcription {
		if t := strings.TrimSpace(seg.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return types.Transcription{Text: strings.Join(parts, " ")}, nil
}
