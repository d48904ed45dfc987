package keywords

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type fakeLLM struct {
	keywords []string
	err      error
	gotText  string
}

func (f *fakeLLM) Extract(_ context.Context, text string) ([]string, error) {
	f.gotText = text
	return f.keywords, f.err
}

func TestExtract_DisabledCapabilityUsesFallback(t *testing.T) {
	e := New(nil, zerolog.Nop())
	assert.Equal(t, Fallback, e.Extract(context.Background(), "any text"))
}

func TestExtract_FallbackOnError(t *testing.T) {
	e := New(&fakeLLM{err: errors.New("rate limited")}, zerolog.Nop())
	assert.Equal(t, Fallback, e.Extract(context.Background(), "some transcript"))
}

func TestExtract_FallbackOnEmptyResult(t *testing.T) {
	e := New(&fakeLLM{keywords: []string{"", "  "}}, zerolog.Nop())
	assert.Equal(t, Fallback, e.Extract(context.Background(), "some transcript"))
}

func TestExtract_TruncatesInput(t *testing.T) {
	llm := &fakeLLM{keywords: []string{"brain"}}
	e := New(llm, zerolog.Nop())
	e.Extract(context.Background(), strings.Repeat("x", 600))
	assert.Len(t, llm.gotText, 500)
}

func TestExtract_CapsAndTrimsKeywords(t *testing.T) {
	llm := &fakeLLM{keywords: []string{" neuroscience ", "brain", "", "meditation", "focus", "sleep", "health"}}
	e := New(llm, zerolog.Nop())
	got := e.Extract(context.Background(), "transcript")
	assert.Equal(t, []string{"neuroscience", "brain", "meditation", "focus", "sleep"}, got)
}
