// Package profanity provides a basic multilingual blocklist filter for
// user-entered item text. It is a UX guard, not a security control:
// detection is permissive substring matching, so it may over-match
// fragments inside longer words.
package profanity

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Blocklisted words per supported language. Hebrew and Russian entries are
// matched as plain substrings because Go's \b only understands ASCII word
// characters.
var blockWords = []string{
	// English
	"damn",
	"shit",
	"fuck",
	"bitch",
	"bastard",
	"asshole",
	// Hebrew
	"זין",
	"חרא",
	"כוסאמק",
	"מניאק",
	"זונה",
	// Russian
	"блять",
	"сука",
	"хер",
}

type maskEntry struct {
	word string
	re   *regexp.Regexp
}

var maskEntries = buildMaskEntries()

func buildMaskEntries() []maskEntry {
	entries := make([]maskEntry, 0, len(blockWords))
	for _, w := range blockWords {
		pattern := `(?i)` + regexp.QuoteMeta(w)
		if isASCIIWord(w) {
			// Word-boundary aware masking for scripts that support it.
			pattern = `(?i)\b` + regexp.QuoteMeta(w) + `\b`
		}
		entries = append(entries, maskEntry{word: w, re: regexp.MustCompile(pattern)})
	}
	return entries
}

func isASCIIWord(s string) bool {
	for _, r := range s {
		if r > 127 {
			return false
		}
	}
	return true
}

// Contains reports whether text contains any blocklisted word. Matching is
// case-insensitive and substring-based, with no word-boundary requirement,
// to accommodate scripts without clear word boundaries.
func Contains(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, w := range blockWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// Mask replaces each blocklisted word in text with an equal-length run of
// asterisks, preserving the surrounding text.
func Mask(text string) string {
	if text == "" {
		return ""
	}
	for _, e := range maskEntries {
		text = e.re.ReplaceAllStringFunc(text, func(m string) string {
			return strings.Repeat("*", utf8.RuneCountInString(m))
		})
	}
	return text
}
