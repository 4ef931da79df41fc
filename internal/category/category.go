// Package category assigns shopping items to one of eleven fixed store
// categories via keyword matching, used to group items for in-store sorting.
package category

import (
	"sort"
	"strings"

	"github.com/talmor/cartwise/internal/model"
)

// Key is one of the fixed category tags. Categories are never persisted as
// a source of truth: the same item text always yields the same key.
type Key = string

const (
	Produce  Key = "produce"
	Dairy    Key = "dairy"
	Meat     Key = "meat"
	Bakery   Key = "bakery"
	Pantry   Key = "pantry"
	Frozen   Key = "frozen"
	Snacks   Key = "snacks"
	Drinks   Key = "drinks"
	Cleaning Key = "cleaning"
	Pharma   Key = "pharma"
	Other    Key = "other"
)

type entry struct {
	key      Key
	keywords []string
}

// Matching order is fixed: the first category with any matching keyword wins
// when item text contains keywords from several categories. This is a simple
// precedence rule, not a scored classifier.
var entries = []entry{
	{Produce, []string{
		"תפוח", "בננה", "עגבני", "מלפפון", "בצל", "גזר", "חסה", "פלפל",
		"תות", "אבטיח", "מלון", "ענבים", "לימון", "תפוז", "אבוקדו",
		"פטרוזיליה", "כוסברה", "ירקות", "פירות", "תירס", "קישוא", "חציל",
		"apple", "banana", "tomato", "cucumber", "onion", "carrot",
		"lettuce", "pepper", "grape", "lemon", "orange", "avocado",
		"potato", "spinach", "broccoli", "eggplant", "fruit", "vegetable",
	}},
	{Dairy, []string{
		"חלב", "גבינה", "יוגורט", "קוטג", "שמנת", "חמאה", "ביצים", "לבן",
		"milk", "cheese", "yogurt", "butter", "cream", "egg", "cottage",
	}},
	{Meat, []string{
		"בשר", "עוף", "הודו", "נקניק", "קבב", "שניצל", "דג", "סלמון",
		"טונה", "כבד",
		"chicken", "beef", "turkey", "steak", "sausage", "fish", "salmon",
		"tuna", "meat", "bacon",
	}},
	{Bakery, []string{
		"לחם", "פיתה", "חלה", "לחמני", "בייגל", "עוגה", "קרואסון", "טורטיה",
		"bread", "pita", "bagel", "challah", "roll", "bun", "croissant",
		"tortilla", "cake", "muffin",
	}},
	{Pantry, []string{
		"אורז", "פסטה", "קמח", "סוכר", "מלח", "שמן", "קטשופ", "מיונז",
		"חרדל", "רוטב", "תבלין", "שימורים", "דבש", "דגני", "קוסקוס", "עדשים",
		"rice", "pasta", "flour", "sugar", "salt", "oil", "ketchup",
		"mustard", "mayo", "sauce", "cereal", "honey", "canned", "beans",
		"lentil", "noodle",
	}},
	{Frozen, []string{
		"קפוא", "גלידה", "שלגון", "מוקפא",
		"frozen", "ice cream", "popsicle",
	}},
	{Snacks, []string{
		"חטיף", "במבה", "ביסלי", "שוקולד", "ממתק", "עוגיות", "פיצוחים",
		"chips", "cracker", "cookie", "chocolate", "candy", "popcorn",
		"pretzel", "snack",
	}},
	{Drinks, []string{
		"מים", "מיץ", "קולה", "סודה", "בירה", "יין", "קפה", "תה", "משקה",
		"water", "juice", "cola", "soda", "beer", "wine", "coffee", "tea",
		"drink", "lemonade",
	}},
	{Cleaning, []string{
		"ניקוי", "אקונומיקה", "סבון כלים", "מטליות", "שקיות אשפה",
		"נייר טואלט", "מגבונים", "אבקת כביסה", "מרכך כביסה",
		"detergent", "bleach", "cleaner", "sponge", "trash bag", "dish soap",
		"paper towel", "toilet paper", "laundry", "napkin",
	}},
	{Pharma, []string{
		"תרופה", "אקמול", "ויטמין", "משחת שיניים", "שמפו", "דאודורנט",
		"סבון", "תחבושת", "פלסטר",
		"aspirin", "vitamin", "shampoo", "toothpaste", "deodorant", "soap",
		"lotion", "band-aid", "sunscreen", "medicine",
	}},
}

// rank maps each key to its position in the fixed order; Other sorts last.
var rank = buildRank()

func buildRank() map[Key]int {
	r := make(map[Key]int, len(entries)+1)
	for i, e := range entries {
		r[e.key] = i
	}
	r[Other] = len(entries)
	return r
}

// Keys returns all category keys in the fixed order, Other last.
func Keys() []Key {
	keys := make([]Key, 0, len(entries)+1)
	for _, e := range entries {
		keys = append(keys, e.key)
	}
	return append(keys, Other)
}

// Detect returns the category key for the given item text. Matching is
// case-insensitive substring containment against each category's keyword
// list, in fixed category order. Falls back to Other.
func Detect(text string) Key {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return Other
	}
	for _, e := range entries {
		for _, kw := range e.keywords {
			if strings.Contains(t, kw) {
				return e.key
			}
		}
	}
	return Other
}

// Group holds the items matched to a single category.
type Group struct {
	Key   Key                  `json:"key"`
	Items []model.ShoppingItem `json:"items"`
}

// GroupByCategory partitions items into groups in the fixed category order,
// omitting categories with no matched items.
func GroupByCategory(items []model.ShoppingItem) []Group {
	byKey := make(map[Key][]model.ShoppingItem)
	for _, item := range items {
		k := Detect(item.Text)
		byKey[k] = append(byKey[k], item)
	}

	groups := make([]Group, 0, len(byKey))
	for _, k := range Keys() {
		if matched, ok := byKey[k]; ok {
			groups = append(groups, Group{Key: k, Items: matched})
		}
	}
	return groups
}

// SortByCategory returns the items flat-ordered by category rank. The sort is
// stable: items within the same category keep their relative order.
func SortByCategory(items []model.ShoppingItem) []model.ShoppingItem {
	out := make([]model.ShoppingItem, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return rank[Detect(out[i].Text)] < rank[Detect(out[j].Text)]
	})
	return out
}
