package viral

import (
	"regexp"
	"strings"

	"github.com/podclip/podclip/internal/types"
)

// Viral language patterns, matched against lower-cased text. Three weighted
// categories: shock language, controversy language, actionable advice.
var viralPatterns = [][]*regexp.Regexp{
	{ // shocking statements
		regexp.MustCompile(`\b(shocking|unbelievable|incredible|mind-blowing|crazy|insane)\b`),
		regexp.MustCompile(`\b(never seen|first time|groundbreaking|revolutionary)\b`),
		regexp.MustCompile(`\b(secret|hidden|revealed|exposed|truth)\b`),
	},
	{ // controversial topics
		regexp.MustCompile(`\b(controversial|debate|disagree|argue|conflict)\b`),
		regexp.MustCompile(`\b(wrong|mistake|lie|fake|scam)\b`),
		regexp.MustCompile(`\b(banned|censored|forbidden|illegal)\b`),
	},
	{ // actionable advice
		regexp.MustCompile(`\b(should|must|need to|have to|tip|trick|hack)\b`),
		regexp.MustCompile(`\b(how to|steps|method|technique|strategy)\b`),
		regexp.MustCompile(`\b(avoid|prevent|fix|solve|improve)\b`),
	},
}

var reAllCaps = regexp.MustCompile(`[A-Z]{2,}`)

// Score computes the viral-potential sub-scores for a text segment.
// Every sub-score lands in [0,1]; a readability failure yields the neutral
// 0.5 rather than an error.
func Score(text string) types.ViralScore {
	lower := strings.ToLower(text)

	matches := 0
	for _, category := range viralPatterns {
		for _, p := range category {
			matches += len(p.FindAllStringIndex(lower, -1))
		}
	}

	emotional := strings.Count(text, "!") + len(reAllCaps.FindAllStringIndex(text, -1))

	length := 0.5
	if wc := len(strings.Fields(text)); wc >= 20 && wc <= 100 {
		length = 1.0
	}

	readability := 0.5
	if flesch, err := fleschReadingEase(text); err == nil {
		readability = clamp01(flesch / 100)
	}

	return types.ViralScore{
		PatternMatches:     clamp01(float64(matches) / 10),
		EmotionalIntensity: clamp01(float64(emotional) / 5),
		LengthScore:        length,
		Readability:        readability,
	}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
