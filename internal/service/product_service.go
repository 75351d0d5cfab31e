package service

import (
	"fmt"
	"strings"

	"go-inventory-client/internal/model"
	"go-inventory-client/internal/repository"
	"go-inventory-client/internal/ws"
	"go-inventory-client/pkg/validator"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrSKUExists       = errors.New("SKU already exists")
)

// ValidationError carries the first failed field constraint.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

type ProductService interface {
	GetAllProducts() ([]model.Product, error)
	GetProductByID(id uuid.UUID) (*model.Product, error)
	CreateProduct(req *model.ProductFields, actor string) (*model.Product, error)
	UpdateProduct(id uuid.UUID, req *model.ProductFields, actor string) (*model.Product, error)
	DeleteProduct(id uuid.UUID, actor string) error
	SearchProducts(keyword string) ([]model.Product, error)
	GetLowStockProducts() ([]model.Product, error)
	GetProductsByCategory(category string) ([]model.Product, error)
}

type productService struct {
	productRepo repository.ProductRepository
	wsHub       *ws.Hub
}

func NewProductService(pRepo repository.ProductRepository, hub *ws.Hub) ProductService {
	return &productService{
		productRepo: pRepo,
		wsHub:       hub,
	}
}

func (s *productService) GetAllProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *productService) GetProductByID(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	return product, err
}

func (s *productService) CreateProduct(req *model.ProductFields, actor string) (*model.Product, error) {
	// 1. Validate fields
	if msg := validator.Message(req); msg != "" {
		return nil, &ValidationError{Message: msg}
	}

	// 2. SKU must be unique (case-insensitive)
	if _, err := s.productRepo.FindBySKU(req.SKU); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrSKUExists, req.SKU)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	product := &model.Product{}
	product.Apply(req)
	product.CreatedBy = actor
	product.UpdatedBy = actor

	if err := s.productRepo.Create(product); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrSKUExists, req.SKU)
		}
		return nil, err
	}

	s.wsHub.Publish(ws.Event{
		Type:    ws.TypeStockUpdate,
		Action:  ws.ActionProductCreated,
		Product: product,
		User:    actor,
		Message: fmt.Sprintf("%s created product '%s'", actor, product.Name),
	})

	return product, nil
}

func (s *productService) UpdateProduct(id uuid.UUID, req *model.ProductFields, actor string) (*model.Product, error) {
	if msg := validator.Message(req); msg != "" {
		return nil, &ValidationError{Message: msg}
	}

	existing, err := s.GetProductByID(id)
	if err != nil {
		return nil, err
	}

	// A changed SKU must not collide with another product
	if !strings.EqualFold(existing.SKU, req.SKU) {
		other, err := s.productRepo.FindBySKU(req.SKU)
		if err == nil && other.ID != existing.ID {
			return nil, fmt.Errorf("%w: %s", ErrSKUExists, req.SKU)
		} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	oldQuantity := existing.Quantity
	existing.Apply(req)
	existing.UpdatedBy = actor

	if err := s.productRepo.Update(existing); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrProductNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, fmt.Errorf("%w: %s", ErrSKUExists, req.SKU)
		}
		return nil, err
	}

	s.wsHub.Publish(ws.Event{
		Type:    ws.TypeStockUpdate,
		Action:  ws.ActionProductUpdated,
		Product: existing,
		User:    actor,
		Message: fmt.Sprintf("%s updated product '%s' (quantity %d -> %d)", actor, existing.Name, oldQuantity, existing.Quantity),
	})

	return existing, nil
}

func (s *productService) DeleteProduct(id uuid.UUID, actor string) error {
	existing, err := s.GetProductByID(id)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	s.wsHub.Publish(ws.Event{
		Type:    ws.TypeStockUpdate,
		Action:  ws.ActionProductDeleted,
		Product: existing,
		User:    actor,
		Message: fmt.Sprintf("%s deleted product '%s'", actor, existing.Name),
	})

	return nil
}

func (s *productService) SearchProducts(keyword string) ([]model.Product, error) {
	return s.productRepo.Search(keyword)
}

func (s *productService) GetLowStockProducts() ([]model.Product, error) {
	return s.productRepo.FindLowStock()
}

func (s *productService) GetProductsByCategory(category string) ([]model.Product, error) {
	return s.productRepo.FindByCategory(category)
}
