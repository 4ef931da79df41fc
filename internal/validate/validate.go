// Package validate rejects item text that is malformed, suspicious, or
// carries markup-injection patterns. It runs after sanitization as an
// independent defense-in-depth check.
package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ErrorKind identifies why an item was rejected. The zero value means valid.
type ErrorKind string

const (
	ErrNone                 ErrorKind = ""
	ErrEmptyInput           ErrorKind = "EmptyInput"
	ErrTooShort             ErrorKind = "TooShort"
	ErrTooLong              ErrorKind = "TooLong"
	ErrSuspiciousRepetition ErrorKind = "SuspiciousRepetition"
	ErrInjectionPattern     ErrorKind = "InjectionPatternDetected"
)

const (
	// MinLen and MaxLen bound the rune length of valid item text.
	MinLen = 2
	MaxLen = 50

	maxCharRun     = 3 // a run of 4+ identical runes is rejected
	maxWordRepeats = 2 // a word appearing 3+ times (in 3+ word text) is rejected
)

var injectionRe = regexp.MustCompile(`(?i)<\s*script|javascript\s*:|\bon\w+\s*=|<\s*/?\s*[a-z][^>]*>`)

// Result reports the outcome of a single validation.
type Result struct {
	Valid bool      `json:"valid"`
	Error ErrorKind `json:"error,omitempty"`
}

func invalid(kind ErrorKind) Result { return Result{Error: kind} }

var valid = Result{Valid: true}

// Item checks text against all rules in order and reports the first failure:
// empty input, length bounds, repeated characters, repeated words, and
// injection patterns.
func Item(text string) Result {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return invalid(ErrEmptyInput)
	}

	n := utf8.RuneCountInString(trimmed)
	if n < MinLen {
		return invalid(ErrTooShort)
	}
	if n > MaxLen {
		return invalid(ErrTooLong)
	}

	if hasCharRun(trimmed) {
		return invalid(ErrSuspiciousRepetition)
	}
	if hasWordRepetition(trimmed) {
		return invalid(ErrSuspiciousRepetition)
	}

	if injectionRe.MatchString(trimmed) {
		return invalid(ErrInjectionPattern)
	}

	return valid
}

// hasCharRun reports a run of more than maxCharRun identical consecutive runes.
func hasCharRun(s string) bool {
	var prev rune
	run := 0
	for _, r := range s {
		if r == prev {
			run++
			if run > maxCharRun {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}
	return false
}

// hasWordRepetition reports any single word occurring more than maxWordRepeats
// times. Only applied to text with at least three space-separated words.
func hasWordRepetition(s string) bool {
	words := strings.Fields(strings.ToLower(s))
	if len(words) < 3 {
		return false
	}
	counts := make(map[string]int, len(words))
	for _, w := range words {
		counts[w]++
		if counts[w] > maxWordRepeats {
			return true
		}
	}
	return false
}
