package viral

import (
	"errors"
	"strings"
	"unicode"
)

// fleschReadingEase computes the Flesch reading-ease index for a text.
// Higher is easier; typical English prose lands between 0 and 100, though
// the raw formula is unbounded on both sides.
func fleschReadingEase(text string) (float64, error) {
	words := splitWords(text)
	if len(words) == 0 {
		return 0, errors.New("no words")
	}
	sentences := countSentences(text)
	if sentences == 0 {
		sentences = 1
	}

	syllables := 0
	for _, w := range words {
		syllables += countSyllables(w)
	}

	wordCount := float64(len(words))
	return 206.835 - 1.015*(wordCount/float64(sentences)) - 84.6*(float64(syllables)/wordCount), nil
}

func splitWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

func countSentences(text string) int {
	n := 0
	for _, r := range text {
		switch r {
		case '.', '!', '?':
			n++
		}
	}
	return n
}

// countSyllables approximates syllables as runs of vowels, with a silent-e
// correction. Never returns less than 1 for a non-empty word.
func countSyllables(word string) int {
	word = strings.ToLower(word)
	n := 0
	prevVowel := false
	for _, r := range word {
		v := isVowel(r)
		if v && !prevVowel {
			n++
		}
		prevVowel = v
	}
	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") && n > 1 {
		n--
	}
	if n < 1 {
		n = 1
	}
	return n
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
