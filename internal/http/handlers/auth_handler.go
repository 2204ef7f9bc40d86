package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "technest/internal/log"
	"technest/internal/services"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	u, err := h.Auth.Register(services.RegisterInput{
		FullName: req.FullName, Email: req.Email, Phone: req.Phone, Password: req.Password,
	})
	if err != nil {
		return failErr(c, err)
	}
	c.Locals("userID", u.ID)
	applog.Audit(c, "auth.register", nil)
	return created(c, fiber.Map{"user": u})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	u, err := h.Auth.Login(req.Email, req.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": req.Email})
		return failErr(c, err)
	}
	c.Locals("userID", u.ID)
	applog.Audit(c, "auth.login", nil)
	return ok(c, fiber.Map{"user": u})
}
