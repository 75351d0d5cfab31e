package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LowStockThreshold is the quantity below which a product counts as low stock.
// The server query, the in-memory store and the client filter all read it from here.
const LowStockThreshold = 10

func init() {
	// Prices travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	BaseModel
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	SKU         string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku"`
	Description string          `gorm:"type:text" json:"description,omitempty"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"price"`
	Quantity    int             `gorm:"not null;default:0" json:"quantity"`
	Category    string          `gorm:"type:varchar(100);index" json:"category,omitempty"`
	ImageURL    string          `gorm:"type:varchar(500)" json:"imageUrl,omitempty"`
}

// ProductFields is the mutable part of a product, submitted on create and update.
type ProductFields struct {
	Name        string          `json:"name" validate:"required"`
	SKU         string          `json:"sku" validate:"required"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	Quantity    int             `json:"quantity" validate:"gte=0"`
	Category    string          `json:"category,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
}

// Fields returns the mutable fields of p.
func (p *Product) Fields() ProductFields {
	return ProductFields{
		Name:        p.Name,
		SKU:         p.SKU,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
	}
}

// Apply overwrites every mutable field of p with f.
func (p *Product) Apply(f *ProductFields) {
	p.Name = f.Name
	p.SKU = f.SKU
	p.Description = f.Description
	p.Price = f.Price
	p.Quantity = f.Quantity
	p.Category = f.Category
	p.ImageURL = f.ImageURL
}

// IsLowStock reports whether the quantity is under LowStockThreshold.
func (p *Product) IsLowStock() bool {
	return p.Quantity < LowStockThreshold
}

// MatchesKeyword is a case-insensitive substring match over name or SKU.
// An empty keyword matches everything.
func (p *Product) MatchesKeyword(keyword string) bool {
	k := strings.ToLower(keyword)
	return strings.Contains(strings.ToLower(p.Name), k) ||
		strings.Contains(strings.ToLower(p.SKU), k)
}

// FilterProducts keeps the products matching keyword, preserving order.
func FilterProducts(products []Product, keyword string) []Product {
	out := make([]Product, 0, len(products))
	for i := range products {
		if products[i].MatchesKeyword(keyword) {
			out = append(out, products[i])
		}
	}
	return out
}

// FilterLowStock keeps the low-stock products, preserving order.
func FilterLowStock(products []Product) []Product {
	out := make([]Product, 0, len(products))
	for i := range products {
		if products[i].IsLowStock() {
			out = append(out, products[i])
		}
	}
	return out
}
