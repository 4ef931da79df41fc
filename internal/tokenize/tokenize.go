// Package tokenize splits free-form text from voice transcripts and OCR
// results into shopping item candidates.
package tokenize

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxItems caps how many candidates a single input may yield.
	MaxItems = 50

	minVoiceLen = 2
	maxVoiceLen = 50
	minOCRLen   = 2
	maxOCRLen   = 100

	// lowConfidence is the OCR confidence threshold below which the
	// per-line noise filter is applied.
	lowConfidence = 70
)

// Voice separators, applied in order. Each pass re-splits every fragment
// produced by the previous pass, so " and " is fully resolved before commas,
// commas before semicolons, and the Hebrew conjunctions come last.
var voiceSeparators = []string{" and ", ",", ";", "וגם", " ו"}

// Keeps word characters, whitespace, the Hebrew block, and the comma and
// semicolon separators the split passes rely on.
var voiceStripRe = regexp.MustCompile(`[^\w\s,;\x{0590}-\x{05FF}]+`)

var spaceRe = regexp.MustCompile(`\s+`)

// Voice converts a spoken-language transcript into item candidates.
// Fragments shorter than 2 or longer than 50 runes are dropped, each
// surviving fragment is capitalized, exact duplicates are removed
// preserving first-seen order, and the result is capped at MaxItems.
func Voice(transcript string) []string {
	if strings.TrimSpace(transcript) == "" {
		return []string{}
	}

	s := strings.ToLower(transcript)
	s = voiceStripRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))

	fragments := []string{s}
	for _, sep := range voiceSeparators {
		fragments = splitAll(fragments, sep)
	}

	items := make([]string, 0, len(fragments))
	seen := make(map[string]struct{})
	for _, f := range fragments {
		f = strings.TrimSpace(f)
		n := utf8.RuneCountInString(f)
		if n < minVoiceLen || n > maxVoiceLen {
			continue
		}
		f = capitalize(f)
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		items = append(items, f)
		if len(items) == MaxItems {
			break
		}
	}
	return items
}

// splitAll re-splits every fragment on sep, flattening the results in order.
func splitAll(fragments []string, sep string) []string {
	out := make([]string, 0, len(fragments))
	for _, f := range fragments {
		out = append(out, strings.Split(f, sep)...)
	}
	return out
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

var (
	horizontalWS = regexp.MustCompile(`[ \t]+`)
	blankLines   = regexp.MustCompile(`\n\s*\n+`)
)

// Bullet and separator glyphs OCR output commonly carries over from lists.
const ocrBullets = ",;•◦·-"

// OCR converts recognized text into item candidates. Lines are the primary
// unit; confidence below 70 enables a stricter per-line noise filter. Each
// line is further split on bullet glyphs, fragments are trimmed of bullets
// and whitespace, filtered to 2-100 runes, deduplicated case-insensitively
// keeping the first-seen casing, and capped at MaxItems.
func OCR(text string, confidence float64) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	s := strings.ReplaceAll(text, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = horizontalWS.ReplaceAllString(s, " ")
	s = blankLines.ReplaceAllString(s, "\n")

	items := make([]string, 0, 8)
	seen := make(map[string]struct{})

	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if confidence < lowConfidence && !plausibleLine(line) {
			continue
		}
		for _, frag := range strings.FieldsFunc(line, isBullet) {
			frag = strings.Trim(frag, ocrBullets+" \t")
			n := utf8.RuneCountInString(frag)
			if n < minOCRLen || n > maxOCRLen {
				continue
			}
			key := strings.ToLower(frag)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			items = append(items, frag)
			if len(items) == MaxItems {
				return items
			}
		}
	}
	return items
}

func isBullet(r rune) bool {
	return strings.ContainsRune(ocrBullets, r)
}

// plausibleLine rejects low-confidence OCR noise: a line survives only if it
// has at least 3 runes and more than 60% of them are Latin or Hebrew letters.
func plausibleLine(line string) bool {
	total := 0
	letters := 0
	for _, r := range line {
		total++
		if isLetterRune(r) {
			letters++
		}
	}
	if total < 3 {
		return false
	}
	return float64(letters)/float64(total) > 0.6
}

func isLetterRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= 0x0590 && r <= 0x05FF:
		return true
	}
	return false
}
