package handler

import (
	"log/slog"
	"net/http"

	"github.com/talmor/cartwise/internal/auth"
	"github.com/talmor/cartwise/internal/insights"
	"github.com/talmor/cartwise/internal/model"
	"github.com/talmor/cartwise/internal/store"
)

type HistoryHandler struct {
	historyStore *store.HistoryStore
	logger       *slog.Logger
}

func NewHistoryHandler(hs *store.HistoryStore, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{historyStore: hs, logger: logger}
}

func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.historyStore.ListByUser(auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("list history", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list history")
		return
	}
	if records == nil {
		records = []model.ShoppingHistory{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	record := h.ownedRecord(w, r)
	if record == nil {
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *HistoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	record := h.ownedRecord(w, r)
	if record == nil {
		return
	}

	if err := h.historyStore.Delete(record.ID); err != nil {
		h.logger.Error("delete history", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete history")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Insights aggregates the user's full history into spending totals and trends.
func (h *HistoryHandler) Insights(w http.ResponseWriter, r *http.Request) {
	records, err := h.historyStore.ListByUser(auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("list history", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute insights")
		return
	}
	writeJSON(w, http.StatusOK, insights.Summarize(records))
}

func (h *HistoryHandler) ownedRecord(w http.ResponseWriter, r *http.Request) *model.ShoppingHistory {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return nil
	}

	record, err := h.historyStore.GetByID(id)
	if err != nil {
		h.logger.Error("get history", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get history")
		return nil
	}
	if record == nil || record.UserID != auth.UserID(r.Context()) {
		writeError(w, http.StatusNotFound, "history record not found")
		return nil
	}
	return record
}
