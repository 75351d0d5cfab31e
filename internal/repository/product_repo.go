package repository

import (
	"strings"

	"go-inventory-client/internal/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no row matches the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique column already holds the value.
	ErrDuplicate = errors.New("duplicate key")
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindBySKU(sku string) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id uuid.UUID) error
	Search(keyword string) ([]model.Product, error)
	FindLowStock() ([]model.Product, error)
	FindByCategory(category string) ([]model.Product, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return duplicate(r.db.Create(product).Error, "create product")
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Order("created_at DESC").Find(&products).Error
	return products, errors.Wrap(err, "list products")
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "find product")
	}
	return &product, nil
}

// FindBySKU matches case-insensitively.
func (r *productRepo) FindBySKU(sku string) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "LOWER(sku) = ?", strings.ToLower(sku)).Error; err != nil {
		return nil, notFound(err, "find product by sku")
	}
	return &product, nil
}

func (r *productRepo) Update(product *model.Product) error {
	return duplicate(r.db.Save(product).Error, "update product")
}

func (r *productRepo) Delete(id uuid.UUID) error {
	res := r.db.Delete(&model.Product{}, "id = ?", id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete product")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Search must agree with model.Product.MatchesKeyword.
func (r *productRepo) Search(keyword string) ([]model.Product, error) {
	var products []model.Product
	pattern := "%" + escapeLike(strings.ToLower(keyword)) + "%"
	err := r.db.
		Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", pattern, pattern).
		Order("created_at DESC").
		Find(&products).Error
	return products, errors.Wrap(err, "search products")
}

func (r *productRepo) FindLowStock() ([]model.Product, error) {
	var products []model.Product
	err := r.db.
		Where("quantity < ?", model.LowStockThreshold).
		Order("created_at DESC").
		Find(&products).Error
	return products, errors.Wrap(err, "list low stock products")
}

func (r *productRepo) FindByCategory(category string) ([]model.Product, error) {
	var products []model.Product
	err := r.db.
		Where("category = ?", category).
		Order("price DESC").
		Find(&products).Error
	return products, errors.Wrap(err, "list products by category")
}

func notFound(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return errors.Wrap(err, op)
}

// duplicate maps unique violations, translated by gorm, to ErrDuplicate.
func duplicate(err error, op string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.Wrap(ErrDuplicate, op)
	}
	return errors.Wrap(err, op)
}

// escapeLike escapes LIKE wildcards so the keyword matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
