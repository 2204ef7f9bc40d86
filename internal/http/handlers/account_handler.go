package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	applog "technest/internal/log"
	"technest/internal/repos"
	"technest/internal/services"
)

type AccountHandler struct {
	Account  *services.AccountService
	Vouchers *services.VoucherService
	Orders   *repos.OrderRepo
}

func userID(c *fiber.Ctx) (int, error) {
	id, err := strconv.Atoi(c.Params("id"))
	if err == nil {
		c.Locals("userID", id)
	}
	return id, err
}

func (h *AccountHandler) Balance(c *fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid user id")
	}
	b, err := h.Account.Balance(id)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.Map{"balance": b})
}

func (h *AccountHandler) TopUp(c *fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid user id")
	}
	var req struct {
		Amount int `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	b, err := h.Account.TopUp(id, req.Amount)
	if err != nil {
		return failErr(c, err)
	}
	applog.Audit(c, "account.topup", map[string]any{"amount": req.Amount})
	return ok(c, fiber.Map{"balance": b})
}

func (h *AccountHandler) UpdateProfile(c *fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid user id")
	}
	var req services.ProfileInput
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	u, err := h.Account.UpdateProfile(id, req)
	if err != nil {
		return failErr(c, err)
	}
	applog.Audit(c, "account.profile.update", nil)
	return ok(c, fiber.Map{"user": u})
}

func (h *AccountHandler) Membership(c *fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid user id")
	}
	st, err := h.Account.Membership(id)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, st)
}

func (h *AccountHandler) OrderHistory(c *fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid user id")
	}
	orders, err := h.Orders.ListByUser(id)
	if err != nil {
		applog.Error(c, "account.orders", err, nil)
		return failErr(c, err)
	}
	return ok(c, orders)
}

func (h *AccountHandler) VoucherList(c *fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid user id")
	}
	vs, err := h.Vouchers.ListByUser(id)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, vs)
}

// VoucherCheck is the checkout-page dry run: would this code apply to
// the given subtotal, and for how much.
func (h *AccountHandler) VoucherCheck(c *fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid user id")
	}
	var req struct {
		Code     string `json:"code"`
		Subtotal int    `json:"subtotal"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Code == "" {
		return fail(c, fiber.StatusBadRequest, "missing voucher code")
	}
	pv, err := h.Vouchers.Check(id, req.Code, req.Subtotal)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, pv)
}
