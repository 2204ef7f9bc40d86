package handlers

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	"technest/internal/cart"
	"technest/internal/services"
)

// Every response uses the {success, data, error} envelope the frontend
// expects.

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": data})
}

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "error": msg})
}

// failErr maps service errors onto envelope responses so no raw error
// ever reaches a client unhandled.
func failErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, sql.ErrNoRows):
		return fail(c, fiber.StatusNotFound, "not found")
	case errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrInvalidProduct),
		errors.Is(err, services.ErrAmountTooSmall),
		errors.Is(err, services.ErrCartEmpty),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrVoucherNotEligible):
		return fail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrBadCreds), errors.Is(err, services.ErrWrongPassword):
		return fail(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		return fail(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInsufficientBalance):
		return fail(c, fiber.StatusPaymentRequired, err.Error())
	default:
		return fail(c, fiber.StatusInternalServerError, "something went wrong, please try again")
	}
}
