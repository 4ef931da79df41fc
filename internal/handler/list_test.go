package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/talmor/cartwise/internal/model"
)

func createTestList(t *testing.T, env *testEnv, name string) *model.SavedList {
	t.Helper()
	list, err := env.lists.CreateList(env.user.ID, name)
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	return list
}

func TestCreateItemNormalizesAndCategorizes(t *testing.T) {
	env := setupEnv(t)
	h := env.listHandler()
	list := createTestList(t, env, "Weekly")

	req := env.jsonRequest(t, "POST", "/api/lists/1/items", "tok-1",
		map[string]any{"text": "  <b>milk</b>  "},
		map[string]string{"list_id": strconv.FormatInt(list.ID, 10)})
	rec := httptest.NewRecorder()
	h.CreateItem(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	item := decodeBody[model.ShoppingItem](t, rec)
	if item.Text != "milk" {
		t.Errorf("text = %q, want %q", item.Text, "milk")
	}
	if item.Category != "dairy" {
		t.Errorf("category = %q, want %q", item.Category, "dairy")
	}
	if item.Quantity != 1 || item.Unit != model.UnitUnits {
		t.Errorf("defaults = %v %q, want 1 %q", item.Quantity, item.Unit, model.UnitUnits)
	}
}

func TestCreateItemRejectsInvalidText(t *testing.T) {
	env := setupEnv(t)
	h := env.listHandler()
	list := createTestList(t, env, "Weekly")
	pv := map[string]string{"list_id": strconv.FormatInt(list.ID, 10)}

	tests := []struct {
		name string
		text string
		kind string
	}{
		{"empty after sanitize", "<script>alert(1)</script>", "EmptyInput"},
		{"too short", "x", "TooShort"},
		{"char run", "aaaamilk", "SuspiciousRepetition"},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := fmt.Sprintf("tok-%d", i) // fresh key so the limiter stays out of the way
			req := env.jsonRequest(t, "POST", "/api/lists/1/items", token,
				map[string]any{"text": tt.text}, pv)
			rec := httptest.NewRecorder()
			h.CreateItem(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			body := decodeBody[map[string]string](t, rec)
			if body["error"] != tt.kind {
				t.Errorf("error kind = %q, want %q", body["error"], tt.kind)
			}
		})
	}
}

func TestCreateItemRateLimited(t *testing.T) {
	env := setupEnv(t)
	h := env.listHandler()
	list := createTestList(t, env, "Weekly")
	pv := map[string]string{"list_id": strconv.FormatInt(list.ID, 10)}

	req := env.jsonRequest(t, "POST", "/api/lists/1/items", "same-session",
		map[string]any{"text": "milk"}, pv)
	rec := httptest.NewRecorder()
	h.CreateItem(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first add: status = %d, want 201", rec.Code)
	}

	req = env.jsonRequest(t, "POST", "/api/lists/1/items", "same-session",
		map[string]any{"text": "bread"}, pv)
	rec = httptest.NewRecorder()
	h.CreateItem(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("rapid add: status = %d, want 429", rec.Code)
	}
	body := decodeBody[map[string]string](t, rec)
	if body["error"] != "RateLimited" {
		t.Errorf("error kind = %q, want RateLimited", body["error"])
	}

	// A different session is not throttled by the first one
	req = env.jsonRequest(t, "POST", "/api/lists/1/items", "other-session",
		map[string]any{"text": "bread"}, pv)
	rec = httptest.NewRecorder()
	h.CreateItem(rec, req)
	if rec.Code != http.StatusCreated {
		t.Errorf("other session: status = %d, want 201", rec.Code)
	}
}

func TestCreateItemListFull(t *testing.T) {
	env := setupEnv(t)
	h := env.listHandler()
	list := createTestList(t, env, "Stockpile")

	for i := 0; i < 100; i++ {
		if _, err := env.lists.CreateItem(list.ID, fmt.Sprintf("item %d", i), 1, model.UnitUnits, "", "other"); err != nil {
			t.Fatalf("seed item %d: %v", i, err)
		}
	}

	req := env.jsonRequest(t, "POST", "/api/lists/1/items", "tok",
		map[string]any{"text": "one more"},
		map[string]string{"list_id": strconv.FormatInt(list.ID, 10)})
	rec := httptest.NewRecorder()
	h.CreateItem(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := decodeBody[map[string]string](t, rec)
	if body["error"] != "ListFull" {
		t.Errorf("error kind = %q, want ListFull", body["error"])
	}
}

func TestListOwnership(t *testing.T) {
	env := setupEnv(t)
	h := env.listHandler()

	other, err := env.users.Create("other@example.com", "Other", "hash")
	if err != nil {
		t.Fatalf("create other user: %v", err)
	}
	foreign, err := env.lists.CreateList(other.ID, "Not yours")
	if err != nil {
		t.Fatalf("create foreign list: %v", err)
	}

	req := env.jsonRequest(t, "GET", "/api/lists/1", "tok", nil,
		map[string]string{"list_id": strconv.FormatInt(foreign.ID, 10)})
	rec := httptest.NewRecorder()
	h.GetList(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestToggleAndClearChecked(t *testing.T) {
	env := setupEnv(t)
	h := env.listHandler()
	list := createTestList(t, env, "Weekly")
	pv := map[string]string{"list_id": strconv.FormatInt(list.ID, 10)}

	item, err := env.lists.CreateItem(list.ID, "milk", 1, model.UnitUnits, "", "dairy")
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	ipv := map[string]string{"list_id": pv["list_id"], "id": item.ID}
	req := env.jsonRequest(t, "POST", "/api/lists/1/items/x/check", "tok", nil, ipv)
	rec := httptest.NewRecorder()
	h.ToggleChecked(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle: status = %d, want 200", rec.Code)
	}
	toggled := decodeBody[model.ShoppingItem](t, rec)
	if !toggled.Checked {
		t.Error("item should be checked after toggle")
	}

	req = env.jsonRequest(t, "POST", "/api/lists/1/clear-checked", "tok", nil, pv)
	rec = httptest.NewRecorder()
	h.ClearChecked(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("clear: status = %d, want 200", rec.Code)
	}
	cleared := decodeBody[map[string]int64](t, rec)
	if cleared["cleared"] != 1 {
		t.Errorf("cleared = %d, want 1", cleared["cleared"])
	}

	items, err := env.lists.ItemsByList(list.ID)
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("items remaining = %d, want 0", len(items))
	}
}

func TestCompleteShoppingWritesHistory(t *testing.T) {
	env := setupEnv(t)
	h := env.listHandler()
	list := createTestList(t, env, "Friday run")
	pv := map[string]string{"list_id": strconv.FormatInt(list.ID, 10)}

	item, err := env.lists.CreateItem(list.ID, "milk", 2, model.UnitUnits, "", "dairy")
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if _, err := env.lists.ToggleChecked(item.ID); err != nil {
		t.Fatalf("check item: %v", err)
	}

	req := env.jsonRequest(t, "POST", "/api/lists/1/complete", "tok",
		map[string]any{"total_amount": 42.5, "store": "Corner Market", "shopping_type": "weekly"}, pv)
	rec := httptest.NewRecorder()
	h.CompleteShopping(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	record := decodeBody[model.ShoppingHistory](t, rec)
	if record.TotalAmount != 42.5 || record.Store != "Corner Market" {
		t.Errorf("record = %+v", record)
	}
	if record.TotalItems != 1 || record.CompletedItems != 1 {
		t.Errorf("counts = %d/%d, want 1/1", record.CompletedItems, record.TotalItems)
	}
	if record.ListName != "Friday run" {
		t.Errorf("list name = %q", record.ListName)
	}

	// Completing twice conflicts
	req = env.jsonRequest(t, "POST", "/api/lists/1/complete", "tok",
		map[string]any{"total_amount": 1}, pv)
	rec = httptest.NewRecorder()
	h.CompleteShopping(rec, req)
	if rec.Code != http.StatusConflict {
		t.Errorf("repeat complete: status = %d, want 409", rec.Code)
	}
}

func TestGroupedItemsOrder(t *testing.T) {
	env := setupEnv(t)
	h := env.listHandler()
	list := createTestList(t, env, "Weekly")

	seed := []struct{ text, cat string }{
		{"bleach", "cleaning"},
		{"milk", "dairy"},
		{"apple", "produce"},
	}
	for _, s := range seed {
		if _, err := env.lists.CreateItem(list.ID, s.text, 1, model.UnitUnits, "", s.cat); err != nil {
			t.Fatalf("seed %q: %v", s.text, err)
		}
	}

	req := env.jsonRequest(t, "GET", "/api/lists/1/grouped", "tok", nil,
		map[string]string{"list_id": strconv.FormatInt(list.ID, 10)})
	rec := httptest.NewRecorder()
	h.GroupedItems(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := decodeBody[struct {
		Groups []struct {
			Category string               `json:"category"`
			Items    []model.ShoppingItem `json:"items"`
		} `json:"groups"`
	}](t, rec)

	want := []string{"produce", "dairy", "cleaning"}
	if len(body.Groups) != len(want) {
		t.Fatalf("groups = %d, want %d", len(body.Groups), len(want))
	}
	for i, cat := range want {
		if body.Groups[i].Category != cat {
			t.Errorf("group[%d] = %q, want %q", i, body.Groups[i].Category, cat)
		}
	}
}
