package captions

import (
	"fmt"
	"strings"
)

// wordsPerChunk is the fixed caption chunk size; each chunk gets an equal
// slice of the clip duration.
const wordsPerChunk = 6

// RenderSRT builds a sequential SRT subtitle track for a transcript laid
// over a clip of the given duration. Returns "" for an empty transcript.
func RenderSRT(transcript string, durationSec float64) string {
	words := strings.Fields(transcript)
	if len(words) == 0 {
		return ""
	}

	var chunks [][]string
	for i := 0; i < len(words); i += wordsPerChunk {
		end := i + wordsPerChunk
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, words[i:end])
	}

	chunkDur := durationSec / float64(len(chunks))

	var b strings.Builder
	for i, chunk := range chunks {
		start := float64(i) * chunkDur
		end := float64(i+1) * chunkDur
		fmt.Fprintf(&b, "%d\n", i+1)
		fmt.Fprintf(&b, "%s --> %s\n", Timestamp(start), Timestamp(end))
		fmt.Fprintf(&b, "%s\n\n", strings.Join(chunk, " "))
	}
	return b.String()
}

// Timestamp formats seconds as the SRT "HH:MM:SS,mmm" time format.
func Timestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	millis := int((seconds - float64(total)) * 1000)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}
