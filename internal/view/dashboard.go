package view

import (
	"sync"

	"go-inventory-client/internal/model"

	"golang.org/x/sync/errgroup"
)

// RecentLimit is how many products the dashboard lists.
const RecentLimit = 5

// Dashboard summarizes the stock.
type Dashboard struct {
	source ProductSource
	Banner *Banner

	mu       sync.RWMutex
	loading  bool
	stats    model.Stats
	recent   []model.Product
	lowStock []model.Product
}

func NewDashboard(source ProductSource) *Dashboard {
	return &Dashboard{source: source, Banner: NewBanner(0)}
}

// Refresh re-fetches the product list and the server's low-stock list, then
// recomputes the aggregates. On failure the previous state is kept.
func (d *Dashboard) Refresh() error {
	d.setLoading(true)
	defer d.setLoading(false)

	var all, low []model.Product
	var g errgroup.Group
	g.Go(func() (err error) {
		all, err = d.source.GetProducts()
		return err
	})
	g.Go(func() (err error) {
		low, err = d.source.GetLowStockProducts()
		return err
	})
	if err := g.Wait(); err != nil {
		d.Banner.Error("Failed to load dashboard data")
		return err
	}

	recent := all
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}

	d.mu.Lock()
	d.stats = model.Summarize(all)
	d.recent = recent
	d.lowStock = low
	d.mu.Unlock()
	d.Banner.Clear()
	return nil
}

func (d *Dashboard) Loading() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loading
}

func (d *Dashboard) Stats() model.Stats {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.stats
}

// Recent returns the first RecentLimit products of the list.
func (d *Dashboard) Recent() []model.Product {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.recent
}

// LowStock returns the low-stock list as reported by the server.
func (d *Dashboard) LowStock() []model.Product {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lowStock
}

func (d *Dashboard) setLoading(v bool) {
	d.mu.Lock()
	d.loading = v
	d.mu.Unlock()
}
