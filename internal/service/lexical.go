package service

import (
	"strings"
	"unicode"
)

// minTopicWordLen excludes short filler words from the lexical signal.
const minTopicWordLen = 4

// topicWords extracts the scoring-relevant words from a topic: case-folded,
// split on non-alphanumerics, keeping only words of four or more runes.
func topicWords(topic string) []string {
	fields := strings.FieldsFunc(strings.ToLower(topic), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	words := make([]string, 0, len(fields))
	for _, w := range fields {
		if len([]rune(w)) >= minTopicWordLen {
			words = append(words, w)
		}
	}
	return words
}

// lexicalOverlap returns the fraction of topic words occurring as substrings
// of the text, case-folded. No qualifying topic words means no signal.
func lexicalOverlap(words []string, text string) float64 {
	if len(words) == 0 {
		return 0
	}

	hay := strings.ToLower(text)
	matched := 0
	for _, w := range words {
		if strings.Contains(hay, w) {
			matched++
		}
	}

	return float64(matched) / float64(len(words))
}
