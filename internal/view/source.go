// Package view holds per-screen state: what is loading, what went wrong and
// what to show. Screens only talk to the services through the interfaces below.
package view

import (
	"go-inventory-client/internal/model"
	"go-inventory-client/internal/session"
)

// ProductSource is what the listing screens read.
type ProductSource interface {
	GetProducts() ([]model.Product, error)
	GetLowStockProducts() ([]model.Product, error)
	SearchProducts(keyword string) ([]model.Product, error)
	DeleteProduct(id string) error
}

// ProductEditor is what the product form needs.
type ProductEditor interface {
	GetProductByID(id string) (*model.Product, error)
	CreateProduct(fields *model.ProductFields) (*model.Product, error)
	UpdateProduct(id string, fields *model.ProductFields) (*model.Product, error)
}

// Authenticator is what the login screen needs.
type Authenticator interface {
	Login(email, password string) (*session.Session, error)
	Register(email, password, fullName string) error
	Logout() error
	CurrentUser() *session.Session
}
