package view

import (
	"sync"

	"go-inventory-client/internal/model"
)

type Filter string

const (
	FilterAll      Filter = "all"
	FilterLowStock Filter = "lowStock"
)

// ProductList is the searchable product table.
//
// Every recomputation of the visible rows takes a sequence number; a result
// is dropped if a newer recomputation was issued while it was in flight, so
// the last search typed wins regardless of response order.
type ProductList struct {
	source ProductSource
	Banner *Banner

	mu       sync.RWMutex
	loading  bool
	products []model.Product
	visible  []model.Product
	term     string
	filter   Filter
	seq      uint64
}

func NewProductList(source ProductSource) *ProductList {
	return &ProductList{source: source, Banner: NewBanner(0), filter: FilterAll}
}

// Load fetches the full list and recomputes the visible rows.
func (l *ProductList) Load() error {
	l.mu.Lock()
	l.loading = true
	l.mu.Unlock()

	products, err := l.source.GetProducts()

	l.mu.Lock()
	l.loading = false
	if err == nil {
		l.products = products
	}
	l.mu.Unlock()

	if err != nil {
		l.Banner.Error("Failed to load products")
		return err
	}
	l.recompute()
	return nil
}

// SetSearch changes the search term and recomputes the visible rows.
func (l *ProductList) SetSearch(term string) {
	l.mu.Lock()
	l.term = term
	l.mu.Unlock()
	l.recompute()
}

// SetFilter changes the stock filter and recomputes the visible rows.
func (l *ProductList) SetFilter(f Filter) {
	l.mu.Lock()
	l.filter = f
	l.mu.Unlock()
	l.recompute()
}

// Delete removes a product and re-fetches the list.
func (l *ProductList) Delete(id string) error {
	if err := l.source.DeleteProduct(id); err != nil {
		l.Banner.Error("Failed to delete product")
		return err
	}
	return l.Load()
}

func (l *ProductList) Loading() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loading
}

// Products returns the last fetched full list.
func (l *ProductList) Products() []model.Product {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.products
}

// Visible returns the rows after search and filter.
func (l *ProductList) Visible() []model.Product {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.visible
}

func (l *ProductList) recompute() {
	l.mu.Lock()
	l.seq++
	seq := l.seq
	products, term, filter := l.products, l.term, l.filter
	l.mu.Unlock()

	rows := l.search(products, term)
	if filter == FilterLowStock {
		rows = model.FilterLowStock(rows)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if seq != l.seq {
		return
	}
	l.visible = rows
}

// search asks the server and falls back to filtering the fetched list locally
// when the search endpoint fails. The fallback is silent.
func (l *ProductList) search(products []model.Product, term string) []model.Product {
	if term == "" {
		return products
	}
	found, err := l.source.SearchProducts(term)
	if err != nil {
		return model.FilterProducts(products, term)
	}
	return found
}
