package client

import (
	"io"
	"sync"

	"go-inventory-client/internal/model"

	"github.com/gocarina/gocsv"
	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// productRow is the CSV layout for import and export. The id column is ignored
// on import.
type productRow struct {
	ID          string `csv:"id"`
	Name        string `csv:"name"`
	SKU         string `csv:"sku"`
	Description string `csv:"description"`
	Price       string `csv:"price"`
	Quantity    int    `csv:"quantity"`
	Category    string `csv:"category"`
	ImageURL    string `csv:"image_url"`
}

// ImportResult reports a bulk create. Failed maps the CSV line number (header
// is line 1) to the error for that row.
type ImportResult struct {
	Created []model.Product
	Failed  map[int]error
}

// ExportCSV writes the current product list and returns the number of rows.
func (s *ProductService) ExportCSV(w io.Writer) (int, error) {
	products, err := s.GetProducts()
	if err != nil {
		return 0, err
	}

	rows := make([]*productRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, &productRow{
			ID:          p.ID.String(),
			Name:        p.Name,
			SKU:         p.SKU,
			Description: p.Description,
			Price:       p.Price.String(),
			Quantity:    p.Quantity,
			Category:    p.Category,
			ImageURL:    p.ImageURL,
		})
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return 0, errors.Wrap(err, "write csv")
	}
	return len(rows), nil
}

// ImportCSV creates one product per row using up to workers concurrent
// requests. Row failures are collected, not fatal.
func (s *ProductService) ImportCSV(r io.Reader, workers int) (*ImportResult, error) {
	var rows []*productRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, errors.Wrap(err, "read csv")
	}
	if workers < 1 {
		workers = 1
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, errors.Wrap(err, "start import pool")
	}
	defer pool.Release()

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		result = &ImportResult{Failed: make(map[int]error)}
	)
	record := func(line int, p *model.Product, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			result.Failed[line] = err
			return
		}
		result.Created = append(result.Created, *p)
	}

	for i, row := range rows {
		line, row := i+2, row
		fields, err := row.fields()
		if err != nil {
			record(line, nil, err)
			continue
		}

		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			p, err := s.CreateProduct(fields)
			record(line, p, err)
		}); err != nil {
			wg.Done()
			record(line, nil, errors.Wrap(err, "schedule import"))
		}
	}
	wg.Wait()

	return result, nil
}

func (r *productRow) fields() (*model.ProductFields, error) {
	price := decimal.Zero
	if r.Price != "" {
		p, err := decimal.NewFromString(r.Price)
		if err != nil {
			return nil, invalid("invalid price " + r.Price)
		}
		price = p
	}
	return &model.ProductFields{
		Name:        r.Name,
		SKU:         r.SKU,
		Description: r.Description,
		Price:       price,
		Quantity:    r.Quantity,
		Category:    r.Category,
		ImageURL:    r.ImageURL,
	}, nil
}
