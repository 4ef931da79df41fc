// Package sanitize strips markup and script content from raw item text
// before it enters the parsing pipeline.
package sanitize

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// MaxLen is the maximum rune length of sanitized item text.
const MaxLen = 50

var (
	scriptRe    = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	tagRe       = regexp.MustCompile(`<[^>]*>`)
	jsURIRe     = regexp.MustCompile(`(?i)javascript\s*:`)
	eventAttrRe = regexp.MustCompile(`(?i)\bon\w+\s*=`)
	entityRe    = regexp.MustCompile(`&#?[a-zA-Z0-9]+;`)
	bracketRe   = regexp.MustCompile(`[<>{}]`)
)

// Strip removes script blocks, markup tags, javascript: URIs, inline event
// handler attributes, brackets, and HTML entities from raw, after NFKC
// normalization. It preserves length and line structure so multi-line input
// can still be tokenized. Total and idempotent.
func Strip(raw string) string {
	if raw == "" {
		return ""
	}

	s := strings.ToValidUTF8(raw, "")
	s = norm.NFKC.String(s)

	s = scriptRe.ReplaceAllString(s, "")
	s = tagRe.ReplaceAllString(s, "")
	s = jsURIRe.ReplaceAllString(s, "")
	s = eventAttrRe.ReplaceAllString(s, "")
	s = entityRe.ReplaceAllString(s, "")
	return bracketRe.ReplaceAllString(s, "")
}

// Clean strips raw, trims whitespace, and truncates to MaxLen runes. It is a
// total function: any input yields a plain string, and
// Clean(Clean(s)) == Clean(s).
func Clean(raw string) string {
	s := strings.TrimSpace(Strip(raw))
	if r := []rune(s); len(r) > MaxLen {
		s = string(r[:MaxLen])
	}
	return strings.TrimSpace(s)
}
