package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studytrack/backend/domain"
)

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"strips html tags", "hello <script>alert(1)</script>world", "hello alert1world"},
		{"drops unsafe characters", "what is 2+2 = 4 @home?", "what is 22 4 home?"},
		{"collapses whitespace", "  explain \n\n photosynthesis\t please ", "explain photosynthesis please"},
		{"keeps basic punctuation", "Wait, really? Yes! End.", "Wait, really? Yes! End."},
		{"empty after cleanup", "<b></b> @@@ ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeInput(tt.input))
		})
	}
}

func TestStripMarkdown(t *testing.T) {
	input := "# Study plan\nReview **algebra** and *geometry*, then run `flashcards`."
	assert.Equal(t, "Study plan\nReview algebra and geometry, then run flashcards.", StripMarkdown(input))
}

type stubCompleter struct {
	prompt string
	reply  string
	err    error
}

func (s *stubCompleter) Complete(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.reply, s.err
}

func TestChat(t *testing.T) {
	completer := &stubCompleter{reply: "**Here** is your answer"}
	uc := New(completer, nil, nil)

	reply, err := uc.Chat(context.Background(), "  explain <i>recursion</i>  ")
	require.NoError(t, err)
	assert.Equal(t, "explain recursion", completer.prompt, "prompt must be sanitized before sending")
	assert.Equal(t, "Here is your answer", reply, "reply markdown must be stripped")
}

func TestChat_EmptyPromptRejected(t *testing.T) {
	uc := New(&stubCompleter{}, nil, nil)
	_, err := uc.Chat(context.Background(), "<p></p>")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestChat_CompletionFailureIsUnavailable(t *testing.T) {
	uc := New(&stubCompleter{err: errors.New("boom")}, nil, nil)
	_, err := uc.Chat(context.Background(), "hello")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnavailable))
}

func TestValidateDocument(t *testing.T) {
	assert.NoError(t, ValidateDocument(1024, "application/pdf"))
	assert.NoError(t, ValidateDocument(1024, "text/plain"))

	err := ValidateDocument(1024, "image/png")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	err = ValidateDocument(MaxDocumentSize+1, "application/pdf")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestTranscriptBuilder(t *testing.T) {
	b := NewTranscriptBuilder(0.6)

	b.Add(TranscriptEvent{Text: "hello wor", Confidence: 0.4, Final: false})
	assert.Equal(t, "hello wor", b.Interim())
	assert.Empty(t, b.Text())

	b.Add(TranscriptEvent{Text: "hello world", Confidence: 0.9, Final: true})
	assert.Empty(t, b.Interim(), "a final event clears the interim phrase")

	// Low-confidence finals are discarded.
	b.Add(TranscriptEvent{Text: "mumble mumble", Confidence: 0.3, Final: true})
	b.Add(TranscriptEvent{Text: "this is a test", Confidence: 0.8, Final: true})

	assert.Equal(t, "Hello world this is a test", b.Text())
	assert.InDelta(t, 0.8, b.LastConfidence(), 1e-9)
}

func TestTranscriptBuilder_IgnoresOutOfRangeConfidence(t *testing.T) {
	b := NewTranscriptBuilder(0.5)
	b.Add(TranscriptEvent{Text: "bad", Confidence: 1.5, Final: true})
	b.Add(TranscriptEvent{Text: "bad", Confidence: -0.1, Final: true})
	assert.Empty(t, b.Text())
}

func TestTranscriptBuilder_Reset(t *testing.T) {
	b := NewTranscriptBuilder(0.5)
	b.Add(TranscriptEvent{Text: "something", Confidence: 0.9, Final: true})
	b.Reset()
	assert.Empty(t, b.Text())
	assert.Zero(t, b.LastConfidence())
}
