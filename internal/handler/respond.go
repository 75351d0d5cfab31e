package handler

import (
	"go-inventory-client/internal/model"

	"github.com/gofiber/fiber/v2"
)

func ok(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(model.Success(status, message, data))
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(model.Failure(status, message))
}
