package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/talmor/cartwise/internal/category"
	"github.com/talmor/cartwise/internal/pipeline"
)

// ParseHandler turns raw transcripts and scanned text into item candidates
// without touching any list. Clients review the candidates before adding.
type ParseHandler struct {
	logger *slog.Logger
}

func NewParseHandler(logger *slog.Logger) *ParseHandler {
	return &ParseHandler{logger: logger}
}

type parseRequest struct {
	Text string `json:"text"`
	// Confidence is the OCR engine's 0-100 score; omitted means trusted.
	Confidence *float64 `json:"confidence,omitempty"`
}

type parsedItem struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

func (h *ParseHandler) Voice(w http.ResponseWriter, r *http.Request) {
	h.parse(w, r, func(req parseRequest) []string {
		return pipeline.FromVoice(req.Text)
	})
}

func (h *ParseHandler) OCR(w http.ResponseWriter, r *http.Request) {
	h.parse(w, r, func(req parseRequest) []string {
		confidence := 100.0
		if req.Confidence != nil {
			confidence = *req.Confidence
		}
		return pipeline.FromOCR(req.Text, confidence)
	})
}

func (h *ParseHandler) Text(w http.ResponseWriter, r *http.Request) {
	h.parse(w, r, func(req parseRequest) []string {
		return pipeline.FromText(req.Text)
	})
}

func (h *ParseHandler) parse(w http.ResponseWriter, r *http.Request, fn func(parseRequest) []string) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	texts := fn(req)
	items := make([]parsedItem, 0, len(texts))
	for _, t := range texts {
		items = append(items, parsedItem{Text: t, Category: category.Detect(t)})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}
