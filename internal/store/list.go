package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/talmor/cartwise/internal/model"
)

type ListStore struct {
	db *sql.DB
}

func NewListStore(db *sql.DB) *ListStore {
	return &ListStore{db: db}
}

// --- List methods ---

func scanList(scanner interface{ Scan(...any) error }) (*model.SavedList, error) {
	var l model.SavedList
	var complete int
	var completedAt sql.NullTime
	var duration sql.NullInt64

	err := scanner.Scan(&l.ID, &l.UserID, &l.Name, &complete, &completedAt, &duration, &l.CreatedAt)
	if err != nil {
		return nil, err
	}

	l.IsShoppingComplete = complete != 0
	if completedAt.Valid {
		l.ShoppingCompletedAt = &completedAt.Time
	}
	if duration.Valid {
		l.ShoppingDuration = &duration.Int64
	}
	return &l, nil
}

const listCols = `id, user_id, name, is_shopping_complete, shopping_completed_at, shopping_duration, created_at`

func (s *ListStore) CreateList(userID int64, name string) (*model.SavedList, error) {
	result, err := s.db.Exec(
		`INSERT INTO saved_lists (user_id, name) VALUES (?, ?)`,
		userID, name,
	)
	if err != nil {
		return nil, fmt.Errorf("insert list: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetListByID(id)
}

func (s *ListStore) GetListByID(id int64) (*model.SavedList, error) {
	row := s.db.QueryRow(`SELECT `+listCols+` FROM saved_lists WHERE id = ?`, id)
	l, err := scanList(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get list: %w", err)
	}
	return l, nil
}

func (s *ListStore) ListsByUser(userID int64) ([]model.SavedList, error) {
	rows, err := s.db.Query(
		`SELECT `+listCols+` FROM saved_lists WHERE user_id = ? ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}
	defer rows.Close()

	var lists []model.SavedList
	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, fmt.Errorf("scan list: %w", err)
		}
		lists = append(lists, *l)
	}
	return lists, rows.Err()
}

func (s *ListStore) RenameList(id int64, name string) (*model.SavedList, error) {
	_, err := s.db.Exec(`UPDATE saved_lists SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return nil, fmt.Errorf("rename list: %w", err)
	}
	return s.GetListByID(id)
}

// CompleteShopping marks the list finished and records when and how long the
// session took, measured from list creation.
func (s *ListStore) CompleteShopping(id int64) (*model.SavedList, error) {
	list, err := s.GetListByID(id)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, nil
	}

	now := time.Now().UTC()
	duration := int64(now.Sub(list.CreatedAt).Seconds())
	if duration < 0 {
		duration = 0
	}

	_, err = s.db.Exec(
		`UPDATE saved_lists SET is_shopping_complete = 1, shopping_completed_at = ?, shopping_duration = ? WHERE id = ?`,
		now, duration, id,
	)
	if err != nil {
		return nil, fmt.Errorf("complete shopping: %w", err)
	}
	return s.GetListByID(id)
}

func (s *ListStore) DeleteList(id int64) error {
	_, err := s.db.Exec(`DELETE FROM saved_lists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete list: %w", err)
	}
	return nil
}

// --- Item methods ---

func scanItem(scanner interface{ Scan(...any) error }) (*model.ShoppingItem, error) {
	var item model.ShoppingItem
	var checked, pinned int
	var checkedAt sql.NullTime

	err := scanner.Scan(
		&item.ID, &item.ListID, &item.Text, &checked, &item.Quantity,
		&item.Unit, &pinned, &item.Note, &item.Category, &checkedAt,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Checked = checked != 0
	item.Pinned = pinned != 0
	if checkedAt.Valid {
		item.CheckedAt = &checkedAt.Time
	}
	return &item, nil
}

const itemCols = `id, list_id, text, checked, quantity, unit, pinned, note, category, checked_at, created_at`

func (s *ListStore) GetItemByID(id string) (*model.ShoppingItem, error) {
	row := s.db.QueryRow(`SELECT `+itemCols+` FROM list_items WHERE id = ?`, id)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

func (s *ListStore) CreateItem(listID int64, text string, quantity float64, unit, note, category string) (*model.ShoppingItem, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO list_items (id, list_id, text, quantity, unit, note, category) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, listID, text, quantity, unit, note, category,
	)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	return s.GetItemByID(id)
}

// ItemsByList returns a list's items: pinned first, checked last, oldest first
// within each band.
func (s *ListStore) ItemsByList(listID int64) ([]model.ShoppingItem, error) {
	rows, err := s.db.Query(
		`SELECT `+itemCols+` FROM list_items WHERE list_id = ? ORDER BY checked ASC, pinned DESC, created_at ASC`,
		listID,
	)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []model.ShoppingItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (s *ListStore) UpdateItem(id, text string, quantity float64, unit, note, category string, pinned bool) (*model.ShoppingItem, error) {
	_, err := s.db.Exec(
		`UPDATE list_items SET text = ?, quantity = ?, unit = ?, note = ?, category = ?, pinned = ? WHERE id = ?`,
		text, quantity, unit, note, category, boolToInt(pinned), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return s.GetItemByID(id)
}

func (s *ListStore) DeleteItem(id string) error {
	_, err := s.db.Exec(`DELETE FROM list_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func (s *ListStore) ToggleChecked(id string) (*model.ShoppingItem, error) {
	item, err := s.GetItemByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	if item.Checked {
		_, err = s.db.Exec(
			`UPDATE list_items SET checked = 0, checked_at = NULL WHERE id = ?`,
			id,
		)
	} else {
		_, err = s.db.Exec(
			`UPDATE list_items SET checked = 1, checked_at = ? WHERE id = ?`,
			time.Now().UTC(), id,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("toggle checked: %w", err)
	}
	return s.GetItemByID(id)
}

func (s *ListStore) ClearChecked(listID int64) (int64, error) {
	result, err := s.db.Exec(
		`DELETE FROM list_items WHERE list_id = ? AND checked = 1`,
		listID,
	)
	if err != nil {
		return 0, fmt.Errorf("clear checked: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return count, nil
}

func (s *ListStore) CountItems(listID int64) (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM list_items WHERE list_id = ?`,
		listID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return count, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
