package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/podclip/podclip/internal/ports"
)

// Adapter invokes the ffmpeg binary to encode platform-framed clips.
type Adapter struct {
	ffmpeg string
}

func New(ffmpegPath string) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Adapter{ffmpeg: ffmpegPath}
}

// Encode produces the output described by job. The visual stream is scaled
// up and center-cropped to the target resolution; output stops at the
// shorter of the two streams.
func (a *Adapter) Encode(ctx context.Context, job ports.EncodeJob) error {
	args := []string{"-y"}
	if job.VisualPath != "" {
		args = append(args, "-i", job.VisualPath)
	}
	args = append(args,
		"-i", job.AudioPath,
		"-ss", fmtSeconds(job.StartSec),
		"-t", fmtSeconds(job.DurationSec),
	)
	if job.VisualPath != "" {
		vf := fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=increase,crop=%d:%d",
			job.Width, job.Height, job.Width, job.Height)
		if job.CaptionPath != "" {
			vf += ",subtitles=" + escapeFilterPath(job.CaptionPath)
		}
		args = append(args,
			"-vf", vf,
			"-c:v", "libx264",
			"-preset", "veryfast",
		)
	}
	args = append(args,
		"-c:a", "aac",
		"-shortest",
		job.OutPath,
	)

	cmd := exec.CommandContext(ctx, a.ffmpeg, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg encode: %w\n%s", err, string(b))
	}
	return nil
}

func fmtSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', 3, 64)
}

func escapeFilterPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "\\\\")
	p = strings.ReplaceAll(p, ":", "\\:")
	return p
}
