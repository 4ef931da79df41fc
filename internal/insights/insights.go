// Package insights derives simple spending summaries from shopping history
// snapshots.
package insights

import (
	"sort"

	"github.com/talmor/cartwise/internal/model"
)

type StoreTotal struct {
	Store string  `json:"store"`
	Total float64 `json:"total"`
	Trips int     `json:"trips"`
}

type MonthTotal struct {
	Month string  `json:"month"` // YYYY-MM
	Total float64 `json:"total"`
	Trips int     `json:"trips"`
}

// Summary aggregates spend across all of a user's history records.
type Summary struct {
	TotalSpent     float64      `json:"total_spent"`
	Trips          int          `json:"trips"`
	AverageBasket  float64      `json:"average_basket"`
	CompletionRate float64      `json:"completion_rate"`
	ByStore        []StoreTotal `json:"by_store"`
	ByMonth        []MonthTotal `json:"by_month"`
}

// Summarize computes a Summary over the given history records. Stores are
// ordered by total spend descending, months chronologically.
func Summarize(records []model.ShoppingHistory) Summary {
	s := Summary{
		ByStore: []StoreTotal{},
		ByMonth: []MonthTotal{},
	}
	if len(records) == 0 {
		return s
	}

	storeIdx := make(map[string]int)
	monthIdx := make(map[string]int)
	completed := 0
	total := 0

	for _, rec := range records {
		s.TotalSpent += rec.TotalAmount
		s.Trips++
		completed += rec.CompletedItems
		total += rec.TotalItems

		store := rec.Store
		if store == "" {
			store = "unknown"
		}
		if i, ok := storeIdx[store]; ok {
			s.ByStore[i].Total += rec.TotalAmount
			s.ByStore[i].Trips++
		} else {
			storeIdx[store] = len(s.ByStore)
			s.ByStore = append(s.ByStore, StoreTotal{Store: store, Total: rec.TotalAmount, Trips: 1})
		}

		month := rec.Date.Format("2006-01")
		if i, ok := monthIdx[month]; ok {
			s.ByMonth[i].Total += rec.TotalAmount
			s.ByMonth[i].Trips++
		} else {
			monthIdx[month] = len(s.ByMonth)
			s.ByMonth = append(s.ByMonth, MonthTotal{Month: month, Total: rec.TotalAmount, Trips: 1})
		}
	}

	s.AverageBasket = s.TotalSpent / float64(s.Trips)
	if total > 0 {
		s.CompletionRate = float64(completed) / float64(total)
	}

	sort.SliceStable(s.ByStore, func(i, j int) bool {
		return s.ByStore[i].Total > s.ByStore[j].Total
	})
	sort.Slice(s.ByMonth, func(i, j int) bool {
		return s.ByMonth[i].Month < s.ByMonth[j].Month
	})
	return s
}
