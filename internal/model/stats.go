package model

import "github.com/shopspring/decimal"

// Stats are the dashboard aggregates over one product list.
type Stats struct {
	Total      int             `json:"totalProducts"`
	LowStock   int             `json:"lowStockCount"`
	Value      decimal.Decimal `json:"totalValue"`
	Categories int             `json:"categories"`
}

// Summarize derives the aggregates. Products without a category count as one
// category of their own.
func Summarize(products []Product) Stats {
	stats := Stats{Total: len(products), Value: decimal.Zero}
	categories := make(map[string]struct{})
	for i := range products {
		p := &products[i]
		if p.IsLowStock() {
			stats.LowStock++
		}
		stats.Value = stats.Value.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))))
		categories[p.Category] = struct{}{}
	}
	stats.Categories = len(categories)
	return stats
}
