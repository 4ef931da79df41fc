// Package pipeline composes sanitization, tokenization, validation, and
// profanity filtering into the full free-text-to-items flow.
package pipeline

import (
	"strings"

	"github.com/talmor/cartwise/internal/profanity"
	"github.com/talmor/cartwise/internal/sanitize"
	"github.com/talmor/cartwise/internal/tokenize"
	"github.com/talmor/cartwise/internal/validate"
)

// FromVoice turns a speech-recognition transcript into clean item strings.
func FromVoice(transcript string) []string {
	candidates := tokenize.Voice(sanitize.Strip(transcript))
	return finalize(candidates)
}

// FromOCR turns recognized image or handwriting text into clean item strings.
// The confidence score (0-100) comes from the OCR engine and controls the
// tokenizer's noise filtering.
func FromOCR(text string, confidence float64) []string {
	candidates := tokenize.OCR(sanitize.Strip(text), confidence)
	return finalize(candidates)
}

// FromText turns typed or pasted free text into clean item strings, using the
// voice separator rules for single-line input and line splitting otherwise.
func FromText(text string) []string {
	stripped := sanitize.Strip(text)
	if strings.ContainsRune(strings.TrimSpace(stripped), '\n') {
		// Pasted multi-line lists behave like high-confidence OCR text.
		return finalize(tokenize.OCR(stripped, 100))
	}
	return finalize(tokenize.Voice(stripped))
}

// NormalizeItem prepares a single manually entered item: sanitize, validate,
// then mask profanity. The returned text is empty when the result is invalid.
func NormalizeItem(raw string) (string, validate.Result) {
	clean := sanitize.Clean(raw)
	res := validate.Item(clean)
	if !res.Valid {
		return "", res
	}
	return profanity.Mask(clean), res
}

// finalize validates each candidate, masks profanity, and re-deduplicates
// (masking can collapse two candidates into the same string). Order is
// preserved and the tokenizer's cap still bounds the result.
func finalize(candidates []string) []string {
	items := make([]string, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		if !validate.Item(c).Valid {
			continue
		}
		c = profanity.Mask(c)
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		items = append(items, c)
	}
	return items
}
