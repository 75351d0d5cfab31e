package service

import (
	"sync"
	"testing"

	"go-inventory-client/internal/model"
	"go-inventory-client/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fields(name, sku string, qty int) *model.ProductFields {
	return &model.ProductFields{Name: name, SKU: sku, Quantity: qty, Price: decimal.NewFromInt(4)}
}

func TestCreateProduct(t *testing.T) {
	svc := NewProductService(repository.NewMemoryProductRepo(), nil)

	p, err := svc.CreateProduct(fields("Widget", "WID-1", 3), "ana@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, "ana@example.com", p.CreatedBy)

	got, err := svc.GetProductByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Fields(), got.Fields())

	_, err = svc.CreateProduct(fields("Other", "wid-1", 1), "ana@example.com")
	assert.ErrorIs(t, err, ErrSKUExists)
}

func TestConcurrentCreateIgnoresSKUCase(t *testing.T) {
	svc := NewProductService(repository.NewMemoryProductRepo(), nil)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, sku := range []string{"abc", "ABC"} {
		i, sku := i, sku
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = svc.CreateProduct(fields("Widget", sku, 1), "ana@example.com")
		}()
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.ErrorIs(t, err, ErrSKUExists)
	}
	assert.Equal(t, 1, created)

	all, err := svc.GetAllProducts()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreateProductValidation(t *testing.T) {
	svc := NewProductService(repository.NewMemoryProductRepo(), nil)

	_, err := svc.CreateProduct(fields("", "SKU", 1), "x")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "Name")

	_, err = svc.CreateProduct(fields("A", "SKU", -1), "x")
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "Quantity")
}

func TestUpdateProduct(t *testing.T) {
	svc := NewProductService(repository.NewMemoryProductRepo(), nil)
	a, err := svc.CreateProduct(fields("A", "A-1", 1), "x")
	require.NoError(t, err)
	_, err = svc.CreateProduct(fields("B", "B-1", 1), "x")
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(a.ID, fields("A2", "A-1", 20), "y")
	require.NoError(t, err)
	assert.Equal(t, "A2", updated.Name)
	assert.Equal(t, 20, updated.Quantity)
	assert.Equal(t, "y", updated.UpdatedBy)

	_, err = svc.UpdateProduct(a.ID, fields("A2", "b-1", 20), "y")
	assert.ErrorIs(t, err, ErrSKUExists)

	_, err = svc.UpdateProduct(uuid.New(), fields("Z", "Z-1", 1), "y")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDeleteProduct(t *testing.T) {
	svc := NewProductService(repository.NewMemoryProductRepo(), nil)
	p, err := svc.CreateProduct(fields("A", "A-1", 1), "x")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(p.ID, "x"))
	_, err = svc.GetProductByID(p.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.ErrorIs(t, svc.DeleteProduct(p.ID, "x"), ErrProductNotFound)

	// The SKU is free again.
	_, err = svc.CreateProduct(fields("A", "A-1", 1), "x")
	assert.NoError(t, err)
}

func TestProductQueries(t *testing.T) {
	svc := NewProductService(repository.NewMemoryProductRepo(), nil)
	for _, f := range []*model.ProductFields{
		fields("Blue Widget", "WID-1", 2),
		fields("Hammer", "HAM-1", 50),
		fields("Green Widget", "WID-2", 10),
	} {
		_, err := svc.CreateProduct(f, "x")
		require.NoError(t, err)
	}

	all, err := svc.GetAllProducts()
	require.NoError(t, err)
	require.Len(t, all, 3)

	found, err := svc.SearchProducts("widget")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	low, err := svc.GetLowStockProducts()
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Blue Widget", low[0].Name)
}
