package repository

import (
	"go-inventory-client/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// skuIndex makes SKUs unique regardless of case, matching FindBySKU.
const skuIndex = "CREATE UNIQUE INDEX IF NOT EXISTS idx_products_sku_lower ON products (LOWER(sku))"

// Migrate creates or updates the tables and indexes of the gorm store.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Product{}, &model.User{}); err != nil {
		return errors.Wrap(err, "migrate tables")
	}
	return errors.Wrap(createSKUIndex(db).Error, "create sku index")
}

func createSKUIndex(db *gorm.DB) *gorm.DB {
	return db.Exec(skuIndex)
}
