// Package assistant implements the AI study-helper pipeline: prompt cleanup,
// document intake and reply post-processing around a pluggable completion
// service.
package assistant

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/studytrack/backend/domain"
)

// Completer produces a text completion for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// DocumentExtractor turns an uploaded document into plain text.
type DocumentExtractor interface {
	Extract(ctx context.Context, data []byte, contentType string) (string, error)
}

// MaxDocumentSize caps uploads at 10 MiB.
const MaxDocumentSize = 10 * 1024 * 1024

var allowedDocumentTypes = map[string]struct{}{
	"application/pdf": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"text/plain": {},
}

type UseCase struct {
	completer Completer
	extractor DocumentExtractor
	logger    *zap.Logger
}

func New(completer Completer, extractor DocumentExtractor, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		completer: completer,
		extractor: extractor,
		logger:    logger,
	}
}

// Chat sanitizes the user prompt, asks the completion service and returns the
// reply with markdown stripped.
func (uc *UseCase) Chat(ctx context.Context, prompt string) (string, error) {
	cleaned := SanitizeInput(prompt)
	if cleaned == "" {
		return "", domain.NewError(domain.ErrCodeInvalid, "prompt is empty")
	}
	if uc.completer == nil {
		return "", domain.NewError(domain.ErrCodeUnavailable, "assistant is not configured")
	}

	reply, err := uc.completer.Complete(ctx, cleaned)
	if err != nil {
		uc.logger.Error("completion request failed", zap.Error(err))
		return "", domain.WrapError(domain.ErrCodeUnavailable, "assistant request failed", err)
	}
	return StripMarkdown(reply), nil
}

// ValidateDocument rejects unsupported types and oversized uploads before any
// extraction work happens.
func ValidateDocument(size int, contentType string) error {
	if _, ok := allowedDocumentTypes[contentType]; !ok {
		return domain.NewError(domain.ErrCodeInvalid, "only PDF, DOCX and TXT files are supported")
	}
	if size > MaxDocumentSize {
		return domain.NewError(domain.ErrCodeInvalid, "file is larger than 10MB")
	}
	return nil
}

// SummarizeDocument extracts the document text and asks the completion
// service for a study summary.
func (uc *UseCase) SummarizeDocument(ctx context.Context, data []byte, contentType string) (string, error) {
	if err := ValidateDocument(len(data), contentType); err != nil {
		return "", err
	}
	if uc.extractor == nil || uc.completer == nil {
		return "", domain.NewError(domain.ErrCodeUnavailable, "assistant is not configured")
	}

	text, err := uc.extractor.Extract(ctx, data, contentType)
	if err != nil {
		uc.logger.Error("document extraction failed", zap.String("content_type", contentType), zap.Error(err))
		return "", domain.WrapError(domain.ErrCodeUnavailable, "could not read the document", err)
	}

	prompt := fmt.Sprintf("Summarize the following study material into key points a student can review:\n\n%s", text)
	reply, err := uc.completer.Complete(ctx, prompt)
	if err != nil {
		uc.logger.Error("completion request failed", zap.Error(err))
		return "", domain.WrapError(domain.ErrCodeUnavailable, "assistant request failed", err)
	}
	return StripMarkdown(reply), nil
}
