package view

import (
	"sync"

	"go-inventory-client/internal/model"
	"go-inventory-client/internal/session"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

func product(name, sku string, qty int, price int64, category string) model.Product {
	p := model.Product{Name: name, SKU: sku, Quantity: qty, Price: decimal.NewFromInt(price), Category: category}
	p.ID = uuid.New()
	return p
}

func catalog() []model.Product {
	return []model.Product{
		product("Blue Widget", "WID-001", 3, 2, "Parts"),
		product("Gadget", "GAD-widget", 10, 7, "Parts"),
		product("Sprocket", "SPR-9", 9, 1, ""),
		product("Hammer", "HAM-1", 100, 25, "Tools"),
		product("Drill", "DRL-1", 2, 90, "Tools"),
		product("Saw", "SAW-1", 40, 30, "Tools"),
	}
}

type fakeSource struct {
	mu        sync.Mutex
	products  []model.Product
	err       error
	lowErr    error
	deleteErr error
	search    func(keyword string) ([]model.Product, error)
	deleted   []string
}

func (f *fakeSource) GetProducts() ([]model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]model.Product(nil), f.products...), nil
}

func (f *fakeSource) GetLowStockProducts() ([]model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lowErr != nil {
		return nil, f.lowErr
	}
	return model.FilterLowStock(f.products), nil
}

func (f *fakeSource) SearchProducts(keyword string) ([]model.Product, error) {
	f.mu.Lock()
	search, products := f.search, f.products
	f.mu.Unlock()
	if search != nil {
		return search(keyword)
	}
	return model.FilterProducts(products, keyword), nil
}

func (f *fakeSource) DeleteProduct(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i := range f.products {
		if f.products[i].ID.String() == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return errors.New("Product not found")
}

type fakeEditor struct {
	stored  map[string]model.Product
	err     error
	creates int
	updates int
}

func newFakeEditor() *fakeEditor {
	return &fakeEditor{stored: make(map[string]model.Product)}
}

func (f *fakeEditor) GetProductByID(id string) (*model.Product, error) {
	p, ok := f.stored[id]
	if !ok {
		return nil, errors.New("Product not found")
	}
	return &p, nil
}

func (f *fakeEditor) CreateProduct(fields *model.ProductFields) (*model.Product, error) {
	f.creates++
	if f.err != nil {
		return nil, f.err
	}
	var p model.Product
	p.ID = uuid.New()
	p.Apply(fields)
	f.stored[p.ID.String()] = p
	return &p, nil
}

func (f *fakeEditor) UpdateProduct(id string, fields *model.ProductFields) (*model.Product, error) {
	f.updates++
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.stored[id]
	if !ok {
		return nil, errors.New("Product not found")
	}
	p.Apply(fields)
	f.stored[id] = p
	return &p, nil
}

type fakeAuth struct {
	current  *session.Session
	password string
	err      error
	calls    int
}

func (f *fakeAuth) Login(email, password string) (*session.Session, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if password != f.password {
		return nil, errors.New("Invalid email or password")
	}
	f.current = &session.Session{Token: "tok", Email: email, FullName: "Ana"}
	return f.current, nil
}

func (f *fakeAuth) Register(email, password, fullName string) error {
	f.calls++
	return f.err
}

func (f *fakeAuth) Logout() error {
	f.current = nil
	return nil
}

func (f *fakeAuth) CurrentUser() *session.Session {
	return f.current
}
