package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/talmor/cartwise/internal/model"
)

// HistoryStore persists completed shopping sessions. Records are frozen
// snapshots: there is deliberately no update method on this store.
type HistoryStore struct {
	db *sql.DB
}

func NewHistoryStore(db *sql.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

func scanHistory(scanner interface{ Scan(...any) error }) (*model.ShoppingHistory, error) {
	var h model.ShoppingHistory
	var itemsJSON string

	err := scanner.Scan(
		&h.ID, &h.UserID, &h.Date, &itemsJSON, &h.TotalAmount, &h.Store,
		&h.CompletedItems, &h.TotalItems, &h.ShoppingType, &h.ListName,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(itemsJSON), &h.Items); err != nil {
		return nil, fmt.Errorf("decode history items: %w", err)
	}
	return &h, nil
}

const historyCols = `id, user_id, date, items, total_amount, store, completed_items, total_items, shopping_type, list_name`

// Create writes a history snapshot. The item slice is serialized once and
// never touched again.
func (s *HistoryStore) Create(userID int64, date time.Time, items []model.ShoppingItem, totalAmount float64, store, shoppingType, listName string) (*model.ShoppingHistory, error) {
	if items == nil {
		items = []model.ShoppingItem{}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode history items: %w", err)
	}

	completed := 0
	for _, item := range items {
		if item.Checked {
			completed++
		}
	}

	result, err := s.db.Exec(
		`INSERT INTO shopping_history (user_id, date, items, total_amount, store, completed_items, total_items, shopping_type, list_name)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, date.UTC(), string(itemsJSON), totalAmount, store, completed, len(items), shoppingType, listName,
	)
	if err != nil {
		return nil, fmt.Errorf("insert history: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *HistoryStore) GetByID(id int64) (*model.ShoppingHistory, error) {
	row := s.db.QueryRow(`SELECT `+historyCols+` FROM shopping_history WHERE id = ?`, id)
	h, err := scanHistory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}
	return h, nil
}

func (s *HistoryStore) ListByUser(userID int64) ([]model.ShoppingHistory, error) {
	rows, err := s.db.Query(
		`SELECT `+historyCols+` FROM shopping_history WHERE user_id = ? ORDER BY date DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var records []model.ShoppingHistory
	for rows.Next() {
		h, err := scanHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		records = append(records, *h)
	}
	return records, rows.Err()
}

func (s *HistoryStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM shopping_history WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete history: %w", err)
	}
	return nil
}
