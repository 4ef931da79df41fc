package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/talmor/cartwise/internal/auth"
	"github.com/talmor/cartwise/internal/category"
	"github.com/talmor/cartwise/internal/guard"
	"github.com/talmor/cartwise/internal/model"
	"github.com/talmor/cartwise/internal/pipeline"
	"github.com/talmor/cartwise/internal/store"
	"github.com/talmor/cartwise/internal/validate"
	ws "github.com/talmor/cartwise/internal/websocket"
)

type ListHandler struct {
	listStore    *store.ListStore
	historyStore *store.HistoryStore
	addLimiter   *guard.AddLimiter
	hub          *ws.Hub
	logger       *slog.Logger
}

func NewListHandler(ls *store.ListStore, hs *store.HistoryStore, al *guard.AddLimiter, hub *ws.Hub, logger *slog.Logger) *ListHandler {
	return &ListHandler{
		listStore:    ls,
		historyStore: hs,
		addLimiter:   al,
		hub:          hub,
		logger:       logger,
	}
}

// ownedList resolves {list_id} and checks it belongs to the authenticated
// user. On failure it writes the response and returns nil.
func (h *ListHandler) ownedList(w http.ResponseWriter, r *http.Request) *model.SavedList {
	listID, err := parseIDParam(r, "list_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid list_id")
		return nil
	}

	list, err := h.listStore.GetListByID(listID)
	if err != nil {
		h.logger.Error("get list", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get list")
		return nil
	}
	if list == nil || list.UserID != auth.UserID(r.Context()) {
		writeError(w, http.StatusNotFound, "list not found")
		return nil
	}
	return list
}

// --- List operations ---

type listRequest struct {
	Name string `json:"name"`
}

func (h *ListHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	userID := auth.UserID(r.Context())
	list, err := h.listStore.CreateList(userID, req.Name)
	if err != nil {
		h.logger.Error("create list", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create list")
		return
	}

	h.hub.BroadcastTo(userID, ws.NewMessage("list", "created", itoa(list.ID), nil))
	writeJSON(w, http.StatusCreated, list)
}

func (h *ListHandler) ListLists(w http.ResponseWriter, r *http.Request) {
	lists, err := h.listStore.ListsByUser(auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("list lists", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list lists")
		return
	}
	if lists == nil {
		lists = []model.SavedList{}
	}
	writeJSON(w, http.StatusOK, lists)
}

func (h *ListHandler) GetList(w http.ResponseWriter, r *http.Request) {
	list := h.ownedList(w, r)
	if list == nil {
		return
	}

	items, err := h.listStore.ItemsByList(list.ID)
	if err != nil {
		h.logger.Error("list items", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.ShoppingItem{}
	}
	list.Items = items
	writeJSON(w, http.StatusOK, list)
}

func (h *ListHandler) RenameList(w http.ResponseWriter, r *http.Request) {
	list := h.ownedList(w, r)
	if list == nil {
		return
	}

	var req listRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	updated, err := h.listStore.RenameList(list.ID, req.Name)
	if err != nil {
		h.logger.Error("rename list", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to rename list")
		return
	}

	h.hub.BroadcastTo(list.UserID, ws.NewMessage("list", "updated", itoa(list.ID), nil))
	writeJSON(w, http.StatusOK, updated)
}

func (h *ListHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	list := h.ownedList(w, r)
	if list == nil {
		return
	}

	if err := h.listStore.DeleteList(list.ID); err != nil {
		h.logger.Error("delete list", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete list")
		return
	}

	h.hub.BroadcastTo(list.UserID, ws.NewMessage("list", "deleted", itoa(list.ID), nil))
	w.WriteHeader(http.StatusNoContent)
}

// GroupedItems returns the list's items partitioned by store category in the
// fixed category order.
func (h *ListHandler) GroupedItems(w http.ResponseWriter, r *http.Request) {
	list := h.ownedList(w, r)
	if list == nil {
		return
	}

	items, err := h.listStore.ItemsByList(list.ID)
	if err != nil {
		h.logger.Error("list items", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"list_id": list.ID,
		"groups":  category.GroupByCategory(items),
	})
}

type completeRequest struct {
	TotalAmount  float64 `json:"total_amount"`
	Store        string  `json:"store"`
	ShoppingType string  `json:"shopping_type"`
}

// CompleteShopping finalizes a shopping session: marks the list complete and
// writes a frozen history snapshot of its items.
func (h *ListHandler) CompleteShopping(w http.ResponseWriter, r *http.Request) {
	list := h.ownedList(w, r)
	if list == nil {
		return
	}
	if list.IsShoppingComplete {
		writeError(w, http.StatusConflict, "shopping already completed")
		return
	}

	var req completeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.TotalAmount < 0 {
		writeError(w, http.StatusBadRequest, "total_amount must not be negative")
		return
	}

	items, err := h.listStore.ItemsByList(list.ID)
	if err != nil {
		h.logger.Error("list items", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to complete shopping")
		return
	}

	if _, err := h.listStore.CompleteShopping(list.ID); err != nil {
		h.logger.Error("complete shopping", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to complete shopping")
		return
	}

	record, err := h.historyStore.Create(
		list.UserID, time.Now().UTC(), items,
		req.TotalAmount, strings.TrimSpace(req.Store),
		strings.TrimSpace(req.ShoppingType), list.Name,
	)
	if err != nil {
		h.logger.Error("create history", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to record history")
		return
	}

	h.hub.BroadcastTo(list.UserID, ws.NewMessage("history", "created", itoa(record.ID), nil))
	writeJSON(w, http.StatusCreated, record)
}

// --- Item operations ---

type itemRequest struct {
	Text     string   `json:"text"`
	Quantity *float64 `json:"quantity"`
	Unit     string   `json:"unit"`
	Note     string   `json:"note"`
	Pinned   *bool    `json:"pinned"`
}

func (h *ListHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	list := h.ownedList(w, r)
	if list == nil {
		return
	}

	// Rapid-fire guard, keyed by session so devices stay independent
	if res := h.addLimiter.CanAdd(auth.SessionToken(r.Context())); !res.Allowed {
		w.Header().Set("Retry-After", "1")
		writeKindError(w, http.StatusTooManyRequests, "RateLimited", "adding items too quickly")
		return
	}

	count, err := h.listStore.CountItems(list.ID)
	if err != nil {
		h.logger.Error("count items", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create item")
		return
	}
	if res := guard.CheckListSize(count); !res.Allowed {
		writeKindError(w, http.StatusBadRequest, "ListFull", "list is full")
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	text, res := pipeline.NormalizeItem(req.Text)
	if !res.Valid {
		writeKindError(w, http.StatusBadRequest, string(res.Error), validationMessage(res.Error))
		return
	}

	quantity := 1.0
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity <= 0 {
		writeError(w, http.StatusBadRequest, "quantity must be positive")
		return
	}
	unit := req.Unit
	if unit == "" {
		unit = model.UnitUnits
	}
	if !model.ValidUnit(unit) {
		writeError(w, http.StatusBadRequest, "invalid unit")
		return
	}

	item, err := h.listStore.CreateItem(list.ID, text, quantity, unit, strings.TrimSpace(req.Note), category.Detect(text))
	if err != nil {
		h.logger.Error("create item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	h.hub.BroadcastTo(list.UserID, ws.NewMessage("item", "created", item.ID, map[string]any{"list_id": list.ID}))
	writeJSON(w, http.StatusCreated, item)
}

func (h *ListHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	list := h.ownedList(w, r)
	if list == nil {
		return
	}

	existing := h.ownedItem(w, r, list)
	if existing == nil {
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	text, res := pipeline.NormalizeItem(req.Text)
	if !res.Valid {
		writeKindError(w, http.StatusBadRequest, string(res.Error), validationMessage(res.Error))
		return
	}

	quantity := existing.Quantity
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity <= 0 {
		writeError(w, http.StatusBadRequest, "quantity must be positive")
		return
	}
	unit := req.Unit
	if unit == "" {
		unit = existing.Unit
	}
	if !model.ValidUnit(unit) {
		writeError(w, http.StatusBadRequest, "invalid unit")
		return
	}
	pinned := existing.Pinned
	if req.Pinned != nil {
		pinned = *req.Pinned
	}

	item, err := h.listStore.UpdateItem(existing.ID, text, quantity, unit, strings.TrimSpace(req.Note), category.Detect(text), pinned)
	if err != nil {
		h.logger.Error("update item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	h.hub.BroadcastTo(list.UserID, ws.NewMessage("item", "updated", item.ID, map[string]any{"list_id": list.ID}))
	writeJSON(w, http.StatusOK, item)
}

func (h *ListHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	list := h.ownedList(w, r)
	if list == nil {
		return
	}

	existing := h.ownedItem(w, r, list)
	if existing == nil {
		return
	}

	if err := h.listStore.DeleteItem(existing.ID); err != nil {
		h.logger.Error("delete item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}

	h.hub.BroadcastTo(list.UserID, ws.NewMessage("item", "deleted", existing.ID, map[string]any{"list_id": list.ID}))
	w.WriteHeader(http.StatusNoContent)
}

func (h *ListHandler) ToggleChecked(w http.ResponseWriter, r *http.Request) {
	list := h.ownedList(w, r)
	if list == nil {
		return
	}

	existing := h.ownedItem(w, r, list)
	if existing == nil {
		return
	}

	item, err := h.listStore.ToggleChecked(existing.ID)
	if err != nil {
		h.logger.Error("toggle checked", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to toggle checked")
		return
	}

	h.hub.BroadcastTo(list.UserID, ws.NewMessage("item", "checked", item.ID, map[string]any{"list_id": list.ID, "checked": item.Checked}))
	writeJSON(w, http.StatusOK, item)
}

func (h *ListHandler) ClearChecked(w http.ResponseWriter, r *http.Request) {
	list := h.ownedList(w, r)
	if list == nil {
		return
	}

	count, err := h.listStore.ClearChecked(list.ID)
	if err != nil {
		h.logger.Error("clear checked", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to clear checked")
		return
	}

	h.hub.BroadcastTo(list.UserID, ws.NewMessage("list", "cleared", itoa(list.ID), map[string]any{"cleared": count}))
	writeJSON(w, http.StatusOK, map[string]int64{"cleared": count})
}

// ownedItem resolves {id} within the given list. On failure it writes the
// response and returns nil.
func (h *ListHandler) ownedItem(w http.ResponseWriter, r *http.Request, list *model.SavedList) *model.ShoppingItem {
	item, err := h.listStore.GetItemByID(r.PathValue("id"))
	if err != nil {
		h.logger.Error("get item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get item")
		return nil
	}
	if item == nil || item.ListID != list.ID {
		writeError(w, http.StatusNotFound, "item not found")
		return nil
	}
	return item
}

func validationMessage(kind validate.ErrorKind) string {
	switch kind {
	case validate.ErrEmptyInput:
		return "item text is empty"
	case validate.ErrTooShort:
		return "item text is too short"
	case validate.ErrTooLong:
		return "item text is too long"
	case validate.ErrSuspiciousRepetition:
		return "item text looks like noise"
	case validate.ErrInjectionPattern:
		return "item text contains disallowed content"
	}
	return "invalid item text"
}
