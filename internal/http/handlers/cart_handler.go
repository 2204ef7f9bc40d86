package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	applog "technest/internal/log"
	"technest/internal/services"
	"technest/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

func (h *CartHandler) ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{Name: "sid", Value: sid, Path: "/", HTTPOnly: true})
	}
	return sid
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	sid := h.ensureSID(c)
	cv, err := h.Cart.View(sid)
	if err != nil {
		applog.Error(c, "cart.view", err, nil)
		return failErr(c, err)
	}
	return ok(c, cv)
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := h.ensureSID(c)
	var req struct {
		ProductID int `json:"product_id"`
		Quantity  int `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.ProductID <= 0 {
		return fail(c, fiber.StatusBadRequest, "missing product_id")
	}
	if err := h.Cart.Add(sid, req.ProductID, validate.Qty(req.Quantity)); err != nil {
		return failErr(c, err)
	}
	cv, err := h.Cart.View(sid)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, cv)
}

func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	sid := h.ensureSID(c)
	productID, err := strconv.Atoi(c.Params("productId"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid product id")
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.Cart.UpdateQuantity(sid, productID, req.Quantity); err != nil {
		return failErr(c, err)
	}
	cv, err := h.Cart.View(sid)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, cv)
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := h.ensureSID(c)
	productID, err := strconv.Atoi(c.Params("productId"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid product id")
	}
	if err := h.Cart.Remove(sid, productID); err != nil {
		return failErr(c, err)
	}
	cv, err := h.Cart.View(sid)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, cv)
}
