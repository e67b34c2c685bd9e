// Package redact provides the deterministic PII masking transform applied to
// prompt and response text on read.
package redact

import (
	"regexp"
	"strings"
)

// The four passes run in this order over the progressively rewritten string.
// SSN and phone come before the name pass so digit-adjacent capitalized tokens
// are never misread as names. The name pass matches maximal runs of
// capitalized words, then maskNameRun decides how much of the run is the name.
var (
	emailPattern   = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	ssnPattern     = regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)
	phonePattern   = regexp.MustCompile(`\b\d{3}-\d{3}-\d{4}\b`)
	nameRunPattern = regexp.MustCompile(`\b[A-Z][a-z]+(?: [A-Z][a-z]+)+\b`)
)

// Mask replaces PII substrings in text with fixed tokens. When enabled is
// false it returns text unchanged. The transform is pure: the same input and
// flag always yield the same output, and already-masked text is a fixed point.
func Mask(text string, enabled bool) string {
	if !enabled {
		return text
	}
	text = emailPattern.ReplaceAllString(text, "[EMAIL]")
	text = ssnPattern.ReplaceAllString(text, "[SSN]")
	text = phonePattern.ReplaceAllString(text, "[PHONE]")
	text = nameRunPattern.ReplaceAllStringFunc(text, maskNameRun)
	return text
}

// maskNameRun rewrites one maximal run of capitalized words as word pairs
// taken from the right. A lone leading word is sentence context and stays
// put, so "Contact Jane Doe" becomes "Contact [NAME]", not "[NAME] Doe".
// Folding the whole remainder into pairs keeps masked text a fixed point:
// no two capitalized words survive adjacent to each other.
func maskNameRun(run string) string {
	words := strings.Split(run, " ")
	out := make([]string, 0, (len(words)+1)/2)
	i := 0
	if len(words)%2 == 1 {
		out = append(out, words[0])
		i = 1
	}
	for ; i < len(words); i += 2 {
		out = append(out, "[NAME]")
	}
	return strings.Join(out, " ")
}
