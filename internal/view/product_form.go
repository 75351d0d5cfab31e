package view

import (
	"sync"

	"go-inventory-client/internal/model"
	"go-inventory-client/pkg/validator"

	"github.com/pkg/errors"
)

// ErrInvalidFields is returned by Submit when the form fails its constraints.
// Nothing is sent to the server in that case.
var ErrInvalidFields = errors.New("invalid product fields")

// ProductForm creates a product, or edits one when an id is loaded.
type ProductForm struct {
	editor ProductEditor
	Banner *Banner

	mu      sync.RWMutex
	loading bool
	id      string
	fields  model.ProductFields
}

func NewProductForm(editor ProductEditor) *ProductForm {
	return &ProductForm{editor: editor, Banner: NewBanner(0)}
}

// Load switches the form to editing the product with id.
func (f *ProductForm) Load(id string) error {
	f.setLoading(true)
	defer f.setLoading(false)

	product, err := f.editor.GetProductByID(id)
	if err != nil {
		f.Banner.Error("Failed to load product")
		return err
	}

	f.mu.Lock()
	f.id = id
	f.fields = product.Fields()
	f.mu.Unlock()
	return nil
}

// Editing reports the id being edited, or "" for a new product.
func (f *ProductForm) Editing() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.id
}

func (f *ProductForm) Fields() model.ProductFields {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.fields
}

func (f *ProductForm) Loading() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.loading
}

// Submit validates fields, then creates or updates. The server's message is
// shown on failure.
func (f *ProductForm) Submit(fields model.ProductFields) (*model.Product, error) {
	f.Banner.Clear()
	if msg := validator.Message(&fields); msg != "" {
		f.Banner.Error(msg)
		return nil, errors.Wrap(ErrInvalidFields, msg)
	}

	f.setLoading(true)
	defer f.setLoading(false)

	f.mu.Lock()
	f.fields = fields
	id := f.id
	f.mu.Unlock()

	var (
		product *model.Product
		err     error
	)
	if id != "" {
		product, err = f.editor.UpdateProduct(id, &fields)
	} else {
		product, err = f.editor.CreateProduct(&fields)
	}
	if err != nil {
		f.Banner.Error(messageOr(err, "Failed to save product"))
		return nil, err
	}
	return product, nil
}

func (f *ProductForm) setLoading(v bool) {
	f.mu.Lock()
	f.loading = v
	f.mu.Unlock()
}
