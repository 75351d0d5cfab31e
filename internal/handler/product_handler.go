package handler

import (
	"net/url"

	"go-inventory-client/internal/model"
	"go-inventory-client/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(s service.ProductService) *ProductHandler {
	return &ProductHandler{service: s}
}

// getUserEmail returns the caller recorded by the auth middleware.
func getUserEmail(c *fiber.Ctx) string {
	userEmail := c.Locals("user_email")
	if userEmail == nil {
		return "system"
	}
	return userEmail.(string)
}

// parseProductID treats a malformed id like an unknown one.
func parseProductID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	return id, err == nil
}

// GetProducts
// GET /api/products
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Error retrieving products: "+err.Error())
	}
	return ok(c, fiber.StatusOK, "Products retrieved successfully", products)
}

// GetProduct
// GET /api/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, valid := parseProductID(c)
	if !valid {
		return fail(c, fiber.StatusNotFound, "Product not found")
	}

	product, err := h.service.GetProductByID(id)
	if err != nil {
		return h.productError(c, err)
	}
	return ok(c, fiber.StatusOK, "Product retrieved successfully", product)
}

// CreateProduct
// POST /api/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req model.ProductFields
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid JSON")
	}

	product, err := h.service.CreateProduct(&req, getUserEmail(c))
	if err != nil {
		return h.productError(c, err)
	}
	return ok(c, fiber.StatusCreated, "Product created successfully", product)
}

// UpdateProduct
// PUT /api/products/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, valid := parseProductID(c)
	if !valid {
		return fail(c, fiber.StatusNotFound, "Product not found")
	}

	var req model.ProductFields
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid JSON")
	}

	product, err := h.service.UpdateProduct(id, &req, getUserEmail(c))
	if err != nil {
		return h.productError(c, err)
	}
	return ok(c, fiber.StatusOK, "Product updated successfully", product)
}

// DeleteProduct
// DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, valid := parseProductID(c)
	if !valid {
		return fail(c, fiber.StatusNotFound, "Product not found")
	}

	if err := h.service.DeleteProduct(id, getUserEmail(c)); err != nil {
		return h.productError(c, err)
	}
	return ok(c, fiber.StatusOK, "Product deleted successfully", nil)
}

// SearchProducts
// GET /api/products/search?keyword=
func (h *ProductHandler) SearchProducts(c *fiber.Ctx) error {
	products, err := h.service.SearchProducts(c.Query("keyword"))
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Error searching products: "+err.Error())
	}
	return ok(c, fiber.StatusOK, "Search results", products)
}

// GetLowStockProducts
// GET /api/products/low-stock
func (h *ProductHandler) GetLowStockProducts(c *fiber.Ctx) error {
	products, err := h.service.GetLowStockProducts()
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Error retrieving low stock products: "+err.Error())
	}
	return ok(c, fiber.StatusOK, "Low stock products retrieved", products)
}

// GetProductsByCategory
// GET /api/products/category/:category
func (h *ProductHandler) GetProductsByCategory(c *fiber.Ctx) error {
	category, err := url.PathUnescape(c.Params("category"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid category")
	}
	products, err := h.service.GetProductsByCategory(category)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Error retrieving products: "+err.Error())
	}
	return ok(c, fiber.StatusOK, "Products by category retrieved", products)
}

func (h *ProductHandler) productError(c *fiber.Ctx, err error) error {
	var validation *service.ValidationError
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		return fail(c, fiber.StatusNotFound, "Product not found")
	case errors.Is(err, service.ErrSKUExists):
		return fail(c, fiber.StatusConflict, err.Error())
	case errors.As(err, &validation):
		return fail(c, fiber.StatusBadRequest, validation.Message)
	default:
		return fail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
}
