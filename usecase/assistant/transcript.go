package assistant

import (
	"strings"
	"unicode"
)

// TranscriptEvent is one speech-recognition result. Partial events refine the
// in-flight phrase; final events commit it.
type TranscriptEvent struct {
	Text       string
	Confidence float64
	Final      bool
}

// TranscriptBuilder assembles a transcript from incremental speech events.
// Each final event carries one recognized phrase: finals at or above the
// confidence floor are appended to the transcript, finals below it are
// discarded, and a partial event replaces the in-flight phrase.
type TranscriptBuilder struct {
	minConfidence float64
	finals        []string
	interim       string
	lastSeen      float64
}

// NewTranscriptBuilder creates a builder with the given confidence floor.
// The floor must be in [0, 1]; out-of-range values fall back to the default.
func NewTranscriptBuilder(minConfidence float64) *TranscriptBuilder {
	if minConfidence < 0 || minConfidence > 1 {
		minConfidence = 0.6
	}
	return &TranscriptBuilder{minConfidence: minConfidence}
}

// Add consumes one recognition event.
func (b *TranscriptBuilder) Add(event TranscriptEvent) {
	if event.Confidence < 0 || event.Confidence > 1 {
		return
	}
	b.lastSeen = event.Confidence

	if !event.Final {
		b.interim = event.Text
		return
	}

	b.interim = ""
	if event.Confidence < b.minConfidence {
		return
	}
	if text := strings.TrimSpace(event.Text); text != "" {
		b.finals = append(b.finals, text)
	}
}

// Text returns the committed transcript, whitespace-normalized with the
// first letter capitalized.
func (b *TranscriptBuilder) Text() string {
	joined := whitespace.ReplaceAllString(strings.Join(b.finals, " "), " ")
	joined = strings.TrimSpace(joined)
	if joined == "" {
		return ""
	}
	runes := []rune(joined)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// Interim returns the uncommitted in-flight phrase, if any.
func (b *TranscriptBuilder) Interim() string {
	return b.interim
}

// LastConfidence reports the confidence of the most recent event, for level
// feedback in the presentation layer.
func (b *TranscriptBuilder) LastConfidence() float64 {
	return b.lastSeen
}

// Reset discards all accumulated state.
func (b *TranscriptBuilder) Reset() {
	b.finals = nil
	b.interim = ""
	b.lastSeen = 0
}
