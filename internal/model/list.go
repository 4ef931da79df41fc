package model

import "time"

// Unit values accepted for a shopping item quantity.
const (
	UnitUnits   = "units"
	UnitGram    = "g"
	UnitKilo    = "kg"
	UnitPackage = "package"
)

// ValidUnit reports whether u is one of the accepted quantity units.
func ValidUnit(u string) bool {
	switch u {
	case UnitUnits, UnitGram, UnitKilo, UnitPackage:
		return true
	}
	return false
}

type SavedList struct {
	ID                  int64          `json:"id"`
	UserID              int64          `json:"user_id"`
	Name                string         `json:"name"`
	Items               []ShoppingItem `json:"items,omitempty"`
	IsShoppingComplete  bool           `json:"is_shopping_complete"`
	ShoppingCompletedAt *time.Time     `json:"shopping_completed_at,omitempty"`
	ShoppingDuration    *int64         `json:"shopping_duration,omitempty"` // seconds
	CreatedAt           time.Time      `json:"created_at"`
}

type ShoppingItem struct {
	ID        string     `json:"id"`
	ListID    int64      `json:"list_id"`
	Text      string     `json:"text"`
	Checked   bool       `json:"checked"`
	Quantity  float64    `json:"quantity"`
	Unit      string     `json:"unit"`
	Pinned    bool       `json:"pinned"`
	Note      string     `json:"note,omitempty"`
	Category  string     `json:"category"`
	CheckedAt *time.Time `json:"checked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
