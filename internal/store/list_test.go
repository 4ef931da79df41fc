package store

import (
	"testing"

	"github.com/talmor/cartwise/internal/database"
)

func setupListTestDB(t *testing.T) (*ListStore, int64) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	us := NewUserStore(db)
	u, err := us.Create("test@example.com", "Test", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return NewListStore(db), u.ID
}

func TestListCRUD(t *testing.T) {
	ls, userID := setupListTestDB(t)

	list, err := ls.CreateList(userID, "Weekly shop")
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	if list.Name != "Weekly shop" {
		t.Errorf("name = %q, want %q", list.Name, "Weekly shop")
	}
	if list.IsShoppingComplete {
		t.Error("new list should not be complete")
	}

	renamed, err := ls.RenameList(list.ID, "Friday shop")
	if err != nil {
		t.Fatalf("rename list: %v", err)
	}
	if renamed.Name != "Friday shop" {
		t.Errorf("renamed = %q, want %q", renamed.Name, "Friday shop")
	}

	lists, err := ls.ListsByUser(userID)
	if err != nil {
		t.Fatalf("lists by user: %v", err)
	}
	if len(lists) != 1 {
		t.Fatalf("expected 1 list, got %d", len(lists))
	}

	if err := ls.DeleteList(list.ID); err != nil {
		t.Fatalf("delete list: %v", err)
	}
	got, err := ls.GetListByID(list.ID)
	if err != nil {
		t.Fatalf("get deleted list: %v", err)
	}
	if got != nil {
		t.Error("expected nil after delete")
	}
}

func TestItemCRUD(t *testing.T) {
	ls, userID := setupListTestDB(t)
	list, _ := ls.CreateList(userID, "Groceries")

	item, err := ls.CreateItem(list.ID, "חלב", 2, "units", "3%", "dairy")
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if item.ID == "" {
		t.Error("expected generated item id")
	}
	if item.Text != "חלב" {
		t.Errorf("text = %q, want חלב", item.Text)
	}
	if item.Quantity != 2 {
		t.Errorf("quantity = %v, want 2", item.Quantity)
	}
	if item.Category != "dairy" {
		t.Errorf("category = %q, want dairy", item.Category)
	}
	if item.Checked || item.Pinned {
		t.Error("new item should be unchecked and unpinned")
	}

	updated, err := ls.UpdateItem(item.ID, "חלב 3%", 1, "package", "", "dairy", true)
	if err != nil {
		t.Fatalf("update item: %v", err)
	}
	if updated.Text != "חלב 3%" || !updated.Pinned {
		t.Errorf("updated = %+v", updated)
	}

	if err := ls.DeleteItem(item.ID); err != nil {
		t.Fatalf("delete item: %v", err)
	}
	got, _ := ls.GetItemByID(item.ID)
	if got != nil {
		t.Error("expected nil after delete")
	}
}

func TestItemOrdering(t *testing.T) {
	ls, userID := setupListTestDB(t)
	list, _ := ls.CreateList(userID, "Groceries")

	a, _ := ls.CreateItem(list.ID, "bread", 1, "units", "", "bakery")
	b, _ := ls.CreateItem(list.ID, "milk", 1, "units", "", "dairy")
	c, _ := ls.CreateItem(list.ID, "soap", 1, "units", "", "pharma")

	// Pin c, check a
	if _, err := ls.UpdateItem(c.ID, c.Text, c.Quantity, c.Unit, c.Note, c.Category, true); err != nil {
		t.Fatalf("pin: %v", err)
	}
	if _, err := ls.ToggleChecked(a.ID); err != nil {
		t.Fatalf("check: %v", err)
	}

	items, err := ls.ItemsByList(list.ID)
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].ID != c.ID {
		t.Errorf("first = %q, want pinned item", items[0].Text)
	}
	if items[1].ID != b.ID {
		t.Errorf("second = %q, want unchecked unpinned item", items[1].Text)
	}
	if items[2].ID != a.ID {
		t.Errorf("last = %q, want checked item", items[2].Text)
	}
}

func TestToggleCheckedRoundTrip(t *testing.T) {
	ls, userID := setupListTestDB(t)
	list, _ := ls.CreateList(userID, "Groceries")
	item, _ := ls.CreateItem(list.ID, "milk", 1, "units", "", "dairy")

	checked, err := ls.ToggleChecked(item.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !checked.Checked || checked.CheckedAt == nil {
		t.Errorf("after check: %+v", checked)
	}

	unchecked, err := ls.ToggleChecked(item.ID)
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if unchecked.Checked || unchecked.CheckedAt != nil {
		t.Errorf("after uncheck: %+v", unchecked)
	}

	missing, err := ls.ToggleChecked("no-such-id")
	if err != nil {
		t.Fatalf("toggle missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown item")
	}
}

func TestClearCheckedAndCount(t *testing.T) {
	ls, userID := setupListTestDB(t)
	list, _ := ls.CreateList(userID, "Groceries")

	a, _ := ls.CreateItem(list.ID, "bread", 1, "units", "", "bakery")
	ls.CreateItem(list.ID, "milk", 1, "units", "", "dairy")
	ls.ToggleChecked(a.ID)

	count, err := ls.CountItems(list.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	cleared, err := ls.ClearChecked(list.ID)
	if err != nil {
		t.Fatalf("clear checked: %v", err)
	}
	if cleared != 1 {
		t.Errorf("cleared = %d, want 1", cleared)
	}

	count, _ = ls.CountItems(list.ID)
	if count != 1 {
		t.Errorf("count after clear = %d, want 1", count)
	}
}

func TestCompleteShopping(t *testing.T) {
	ls, userID := setupListTestDB(t)
	list, _ := ls.CreateList(userID, "Groceries")

	done, err := ls.CompleteShopping(list.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !done.IsShoppingComplete {
		t.Error("expected complete flag")
	}
	if done.ShoppingCompletedAt == nil {
		t.Error("expected completion timestamp")
	}
	if done.ShoppingDuration == nil || *done.ShoppingDuration < 0 {
		t.Errorf("duration = %v", done.ShoppingDuration)
	}

	missing, err := ls.CompleteShopping(99999)
	if err != nil {
		t.Fatalf("complete missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown list")
	}
}

func TestDeleteListCascadesItems(t *testing.T) {
	ls, userID := setupListTestDB(t)
	list, _ := ls.CreateList(userID, "Groceries")
	item, _ := ls.CreateItem(list.ID, "milk", 1, "units", "", "dairy")

	if err := ls.DeleteList(list.ID); err != nil {
		t.Fatalf("delete list: %v", err)
	}
	got, err := ls.GetItemByID(item.ID)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if got != nil {
		t.Error("items should be deleted with their list")
	}
}
