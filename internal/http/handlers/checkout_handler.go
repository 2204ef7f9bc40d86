package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	applog "technest/internal/log"
	"technest/internal/services"
)

type CheckoutHandler struct {
	Checkout *services.CheckoutService
}

func (h *CheckoutHandler) Place(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{Name: "sid", Value: sid, Path: "/", HTTPOnly: true})
	}
	var req struct {
		UserID      int    `json:"user_id"`
		VoucherCode string `json:"voucher_code"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.UserID <= 0 {
		return fail(c, fiber.StatusBadRequest, "missing user_id")
	}
	c.Locals("userID", req.UserID)
	order, err := h.Checkout.Place(sid, req.UserID, req.VoucherCode)
	if err != nil {
		applog.Error(c, "checkout.place", err, nil)
		return failErr(c, err)
	}
	applog.Audit(c, "checkout.placed", map[string]any{"order_id": order.ID, "total": order.Total})
	return created(c, order)
}
