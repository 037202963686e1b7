package helper

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Success body is always {data: ...}, error body is always {error: ...}.
// Clients depend on this envelope; keep it stable.

func JsonOK(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": data})
}

func JsonCreated(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": data})
}

func JsonError(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(fiber.Map{"error": message})
}

// ValidationError renders a validator.v10 error as a 400 with the first
// offending field named, without leaking struct internals.
func ValidationError(c *fiber.Ctx, err error) error {
	if ve, ok := err.(validator.ValidationErrors); ok && len(ve) > 0 {
		return JsonError(c, fiber.StatusBadRequest,
			"Missing or invalid field: "+ve[0].Field())
	}
	return JsonError(c, fiber.StatusBadRequest, "Invalid input")
}

// FromFiberError converts any error bubbling out of a handler into the
// {error} envelope. Used as the app-level error handler.
func FromFiberError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if fe, ok := err.(*fiber.Error); ok {
		code = fe.Code
	}
	return JsonError(c, code, err.Error())
}
