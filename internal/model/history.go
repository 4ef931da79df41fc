package model

import "time"

// ShoppingHistory is a frozen snapshot of a completed shopping session.
// Once written it is never updated, only deleted.
type ShoppingHistory struct {
	ID             int64          `json:"id"`
	UserID         int64          `json:"user_id"`
	Date           time.Time      `json:"date"`
	Items          []ShoppingItem `json:"items"`
	TotalAmount    float64        `json:"total_amount"`
	Store          string         `json:"store"`
	CompletedItems int            `json:"completed_items"`
	TotalItems     int            `json:"total_items"`
	ShoppingType   string         `json:"shopping_type,omitempty"`
	ListName       string         `json:"list_name,omitempty"`
}
