package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type CategorySummary struct {
	CategoryName   string `json:"categoryName"`
	UniqueProducts int    `json:"uniqueProducts"`
	TotalQuantity  int    `json:"totalQuantity"`
}

type WarehouseSummary struct {
	TotalProducts   int               `json:"totalProducts"`
	UniqueProducts  int               `json:"uniqueProducts"`
	TotalValue      decimal.Decimal   `json:"totalValue"`
	CompletedOrders int               `json:"completedOrders"`
	CategorySummary []CategorySummary `json:"categorySummary"`
}

type WarehouseProduct struct {
	ProductID     int64           `json:"productId"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	SKU           string          `json:"sku"`
	ImageBase64   *string         `json:"imageBase64"`
	CategoryName  string          `json:"categoryName"`
	BrandName     string          `json:"brandName"`
	ModelName     string          `json:"modelName"`
	Quantity      int             `json:"quantity"`
	AvgPrice      decimal.Decimal `json:"avgPrice"`
	TotalValue    decimal.Decimal `json:"totalValue"`
	FirstPurchase string          `json:"firstPurchase"`
	LastPurchase  string          `json:"lastPurchase"`
}

type PurchaseHistoryEntry struct {
	OrderID      int64           `json:"orderId"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	PurchaseDate string          `json:"purchaseDate"`
	Status       string          `json:"status"`
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

const (
	SortByName     = "name"
	SortByQuantity = "quantity"
	SortByValue    = "value"
	SortByDate     = "date"
)

type WarehouseFilter struct {
	Search    string    `form:"search"`
	Category  string    `form:"category"`
	SortBy    string    `form:"sortBy"`
	SortOrder SortOrder `form:"sortOrder"`
}

// DefaultWarehouseFilter lists the largest holdings first.
func DefaultWarehouseFilter() WarehouseFilter {
	return WarehouseFilter{SortBy: SortByQuantity, SortOrder: SortDesc}
}

// FilterProducts applies search, category and ordering to a copy of products.
// An unknown sort key keeps the incoming order.
func FilterProducts(products []WarehouseProduct, f WarehouseFilter) []WarehouseProduct {
	term := strings.ToLower(f.Search)
	filtered := make([]WarehouseProduct, 0, len(products))
	for _, p := range products {
		if term != "" && !matchesTerm(p, term) {
			continue
		}
		if f.Category != "" && p.CategoryName != f.Category {
			continue
		}
		filtered = append(filtered, p)
	}

	compare := comparator(f.SortBy)
	if compare == nil {
		return filtered
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		c := compare(filtered[i], filtered[j])
		if f.SortOrder == SortAsc {
			return c < 0
		}
		return c > 0
	})
	return filtered
}

// Categories lists the distinct category names, sorted.
func Categories(products []WarehouseProduct) []string {
	seen := make(map[string]struct{}, len(products))
	cats := make([]string, 0)
	for _, p := range products {
		if _, ok := seen[p.CategoryName]; ok {
			continue
		}
		seen[p.CategoryName] = struct{}{}
		cats = append(cats, p.CategoryName)
	}
	sort.Strings(cats)
	return cats
}

func matchesTerm(p WarehouseProduct, term string) bool {
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.SKU), term) ||
		strings.Contains(strings.ToLower(p.BrandName), term) ||
		strings.Contains(strings.ToLower(p.ModelName), term)
}

func comparator(sortBy string) func(a, b WarehouseProduct) int {
	switch sortBy {
	case SortByName:
		col := collate.New(language.Spanish)
		return func(a, b WarehouseProduct) int {
			return col.CompareString(a.Name, b.Name)
		}
	case SortByQuantity:
		return func(a, b WarehouseProduct) int {
			return a.Quantity - b.Quantity
		}
	case SortByValue:
		return func(a, b WarehouseProduct) int {
			return a.TotalValue.Cmp(b.TotalValue)
		}
	case SortByDate:
		return func(a, b WarehouseProduct) int {
			return parseTimestamp(a.LastPurchase).Compare(parseTimestamp(b.LastPurchase))
		}
	}
	return nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTimestamp reads the API's timestamps; unparseable values sort first.
func parseTimestamp(s string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
