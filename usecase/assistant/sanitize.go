package assistant

import (
	"regexp"
	"strings"
)

var (
	htmlTags   = regexp.MustCompile(`<[^>]*>`)
	unsafe     = regexp.MustCompile(`[^\w\s.,!?-]`)
	whitespace = regexp.MustCompile(`\s+`)

	boldMark    = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicMark  = regexp.MustCompile(`\*(.*?)\*`)
	headingMark = regexp.MustCompile(`(?m)^#+ (.*)$`)
	codeMark    = regexp.MustCompile("`(.*?)`")
)

// SanitizeInput strips HTML tags and unsafe characters from user text and
// collapses runs of whitespace.
func SanitizeInput(input string) string {
	out := htmlTags.ReplaceAllString(input, "")
	out = unsafe.ReplaceAllString(out, "")
	out = whitespace.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

// StripMarkdown removes bold, italic, heading and inline-code syntax from a
// completion reply, leaving the plain text.
func StripMarkdown(input string) string {
	out := boldMark.ReplaceAllString(input, "$1")
	out = italicMark.ReplaceAllString(out, "$1")
	out = headingMark.ReplaceAllString(out, "$1")
	out = codeMark.ReplaceAllString(out, "$1")
	return strings.TrimSpace(out)
}
