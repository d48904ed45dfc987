package keywords

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/podclip/podclip/internal/ports"
)

// Fallback is returned whenever extraction is unavailable or fails.
// Keyword extraction must never fail the pipeline.
var Fallback = []string{"conversation", "podcast", "discussion"}

const (
	maxInputChars = 500
	maxKeywords   = 5
)

// Extractor wraps the LLM collaborator with the boundary rules: input
// truncated to 500 chars, at most 5 keywords out, fallback on any failure.
type Extractor struct {
	llm ports.KeywordExtractor
	log zerolog.Logger
}

// New builds an Extractor. A nil collaborator is the explicit "disabled"
// capability: every call returns the fallback list.
func New(llm ports.KeywordExtractor, log zerolog.Logger) *Extractor {
	return &Extractor{llm: llm, log: log}
}

// Extract returns 3-5 short topical keywords for the text.
func (e *Extractor) Extract(ctx context.Context, text string) []string {
	if e.llm == nil {
		return Fallback
	}

	r := []rune(text)
	if len(r) > maxInputChars {
		text = string(r[:maxInputChars])
	}

	raw, err := e.llm.Extract(ctx, text)
	if err != nil {
		e.log.Warn().Err(err).Msg("keyword extraction failed, using fallback keywords")
		return Fallback
	}

	out := make([]string, 0, maxKeywords)
	for _, kw := range raw {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		out = append(out, kw)
		if len(out) == maxKeywords {
			break
		}
	}
	if len(out) == 0 {
		return Fallback
	}
	return out
}
