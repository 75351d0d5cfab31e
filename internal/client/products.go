package client

import (
	"net/url"

	"go-inventory-client/internal/model"

	"github.com/gofiber/fiber/v2"
)

// ProductService is the client of the /products resource. Each method is one
// round trip; nothing is cached.
type ProductService struct {
	client *Client
}

func (s *ProductService) GetProducts() ([]model.Product, error) {
	return call[[]model.Product](s.client, fiber.MethodGet, "/products", nil, nil)
}

// GetProductByID fails with ErrNotFound for an unknown id.
func (s *ProductService) GetProductByID(id string) (*model.Product, error) {
	if id == "" {
		return nil, &Error{StatusCode: fiber.StatusNotFound, Message: "Product not found", kind: ErrNotFound}
	}
	product, err := call[*model.Product](s.client, fiber.MethodGet, productPath(id), nil, nil)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, connectivity(nil)
	}
	return product, nil
}

// CreateProduct returns the stored record with its server-assigned id.
func (s *ProductService) CreateProduct(fields *model.ProductFields) (*model.Product, error) {
	product, err := call[*model.Product](s.client, fiber.MethodPost, "/products", nil, fields)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, connectivity(nil)
	}
	return product, nil
}

// UpdateProduct replaces every mutable field of the product.
func (s *ProductService) UpdateProduct(id string, fields *model.ProductFields) (*model.Product, error) {
	if id == "" {
		return nil, &Error{StatusCode: fiber.StatusNotFound, Message: "Product not found", kind: ErrNotFound}
	}
	product, err := call[*model.Product](s.client, fiber.MethodPut, productPath(id), nil, fields)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, connectivity(nil)
	}
	return product, nil
}

// DeleteProduct fails with ErrNotFound when the product is already gone.
func (s *ProductService) DeleteProduct(id string) error {
	if id == "" {
		return &Error{StatusCode: fiber.StatusNotFound, Message: "Product not found", kind: ErrNotFound}
	}
	return s.client.do(fiber.MethodDelete, productPath(id), nil, nil, nil)
}

// SearchProducts matches keyword against name or SKU on the server.
// model.FilterProducts gives the same result over a fetched list.
func (s *ProductService) SearchProducts(keyword string) ([]model.Product, error) {
	return call[[]model.Product](s.client, fiber.MethodGet, "/products/search", url.Values{"keyword": {keyword}}, nil)
}

// GetLowStockProducts agrees with model.FilterLowStock.
func (s *ProductService) GetLowStockProducts() ([]model.Product, error) {
	return call[[]model.Product](s.client, fiber.MethodGet, "/products/low-stock", nil, nil)
}

func (s *ProductService) GetProductsByCategory(category string) ([]model.Product, error) {
	return call[[]model.Product](s.client, fiber.MethodGet, "/products/category/"+url.PathEscape(category), nil, nil)
}

// GetStats returns the aggregates the server computes over the whole catalogue.
// They match model.Summarize over GetProducts.
func (s *ProductService) GetStats() (*model.Stats, error) {
	stats, err := call[*model.Stats](s.client, fiber.MethodGet, "/dashboard/stats", nil, nil)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		return nil, connectivity(nil)
	}
	return stats, nil
}

func productPath(id string) string {
	return "/products/" + url.PathEscape(id)
}
