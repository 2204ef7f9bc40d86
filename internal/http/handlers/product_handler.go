package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"technest/internal/catalog"
	"technest/internal/domain"
	applog "technest/internal/log"
	"technest/internal/services"
	"technest/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// List serves GET /api/products with q / category / min_price /
// max_price / sort query params run through the filter pipeline.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	crit := catalog.Criteria{
		Category: c.Query("category"),
		MinPrice: catalog.ParseBound(c.Query("min_price")),
		MaxPrice: catalog.ParseBound(c.Query("max_price")),
	}
	if raw := c.Query("q"); raw != "" {
		q, okQ := validate.Q(raw)
		if !okQ {
			applog.Security(c, "products.search.bad_query", map[string]any{"q": raw})
			return fail(c, fiber.StatusBadRequest, "invalid search query")
		}
		crit.Search = q
	}
	if c.Query("sort") == catalog.SortDesc {
		crit.Sort = catalog.SortDesc
	}
	prods, err := h.Catalog.List(crit)
	if err != nil {
		applog.Error(c, "products.list", err, nil)
		return failErr(c, err)
	}
	return ok(c, prods)
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid product id")
	}
	p, err := h.Catalog.Get(id)
	if err != nil {
		return fail(c, fiber.StatusNotFound, "product not found")
	}
	return ok(c, p)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req services.CreateInput
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	p, err := h.Catalog.Create(req)
	if err != nil {
		return failErr(c, err)
	}
	applog.Audit(c, "products.create", map[string]any{"product_id": p.ID})
	return created(c, p)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid product id")
	}
	var req domain.Product
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.ID = id
	p, err := h.Catalog.Update(req)
	if err != nil {
		return failErr(c, err)
	}
	applog.Audit(c, "products.update", map[string]any{"product_id": id})
	return ok(c, p)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid product id")
	}
	if err := h.Catalog.Delete(id); err != nil {
		return failErr(c, err)
	}
	applog.Audit(c, "products.delete", map[string]any{"product_id": id})
	return ok(c, nil)
}
