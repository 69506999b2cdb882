package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopicWords(t *testing.T) {
	t.Run("keeps words longer than three runes, case folded", func(t *testing.T) {
		words := topicWords("How We Win Pricing Objections")
		assert.Equal(t, []string{"pricing", "objections"}, words)
	})

	t.Run("splits on punctuation", func(t *testing.T) {
		words := topicWords("cold-email follow_up, v2.0")
		assert.Equal(t, []string{"cold", "email", "follow"}, words)
	})

	t.Run("no qualifying words yields empty", func(t *testing.T) {
		assert.Empty(t, topicWords("a to do it"))
	})
}

func TestLexicalOverlap(t *testing.T) {
	t.Run("is the fraction of matched topic words", func(t *testing.T) {
		words := []string{"pricing", "objections"}
		assert.InDelta(t, 0.5, lexicalOverlap(words, "handling PRICING pushback"), 1e-9)
		assert.InDelta(t, 1.0, lexicalOverlap(words, "pricing objections script"), 1e-9)
		assert.InDelta(t, 0.0, lexicalOverlap(words, "onboarding checklist"), 1e-9)
	})

	t.Run("matches as substrings", func(t *testing.T) {
		assert.InDelta(t, 1.0, lexicalOverlap([]string{"price"}, "our pricing page"), 1e-9)
	})

	t.Run("no topic words means no signal", func(t *testing.T) {
		assert.Zero(t, lexicalOverlap(nil, "anything at all"))
	})
}
