package assistant

import (
	"regexp"
	"strings"
)

// Input limits applied before anything is sent to the model.
const (
	maxInstructionLen = 500
	maxDocumentLen    = 10000
)

// injectionPatterns are simple script-injection shapes that cause a
// client-side refusal. The filter is intentionally crude: it guards the
// obvious cases, nothing more.
var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<\s*script`),
	regexp.MustCompile(`(?i)javascript\s*:`),
	regexp.MustCompile(`(?i)on(load|click|error)\s*=`),
	regexp.MustCompile(`(?i)data\s*:\s*text/html`),
}

// SanitizeInstruction strips angle brackets and truncates free-text
// instructions. ErrRejectedInput is returned when the raw text matches
// an injection pattern.
func SanitizeInstruction(text string) (string, error) {
	if matchesInjection(text) {
		return "", ErrRejectedInput
	}
	cleaned := truncateRunes(stripAngleBrackets(text), maxInstructionLen)
	return strings.TrimSpace(cleaned), nil
}

// SanitizeDocument truncates the YAML payload sent alongside a rewrite
// instruction. The document is our own serialization, so bracket
// stripping is not applied; oversized payloads are cut, not rejected.
func SanitizeDocument(text string) string {
	return truncateRunes(text, maxDocumentLen)
}

// truncateRunes cuts text to at most n characters. Limits count runes,
// not bytes, so a multibyte character is never split at the boundary.
func truncateRunes(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}

func matchesInjection(text string) bool {
	for _, re := range injectionPatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func stripAngleBrackets(text string) string {
	return strings.Map(func(r rune) rune {
		if r == '<' || r == '>' {
			return -1
		}
		return r
	}, text)
}
