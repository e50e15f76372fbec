package handlers

import (
	"strings"

	applog "wardrobe/internal/log"
	"wardrobe/internal/services"
	"wardrobe/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// List accepts ?q= (keyword) and ?category= (category id).
func (h *ProductHandler) List(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	category := strings.TrimSpace(c.Query("category"))
	products, err := h.Catalog.ListProducts(q, category)
	if err != nil {
		return fail(c, "product.list.fail", err)
	}
	return success(c, products)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, valid := validate.ID(c.Params("id"))
	if !valid {
		return notFoundParam(c, "product")
	}
	p, err := h.Catalog.GetProduct(c.UserContext(), id)
	if err != nil {
		return fail(c, "product.get.fail", err)
	}
	return success(c, p)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "product.create", err)
	}
	p, err := h.Catalog.CreateProduct(c.UserContext(), in)
	if err != nil {
		return fail(c, "product.create.fail", err)
	}
	applog.Audit(c, "product.create", map[string]any{"product": p.ID})
	return respond(c, fiber.StatusCreated, "Created", p)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, valid := validate.ID(c.Params("id"))
	if !valid {
		return notFoundParam(c, "product")
	}
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "product.update", err)
	}
	p, err := h.Catalog.UpdateProduct(c.UserContext(), id, in)
	if err != nil {
		return fail(c, "product.update.fail", err)
	}
	applog.Audit(c, "product.update", map[string]any{"product": id})
	return success(c, p)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, valid := validate.ID(c.Params("id"))
	if !valid {
		return notFoundParam(c, "product")
	}
	if err := h.Catalog.DeleteProduct(c.UserContext(), id); err != nil {
		return fail(c, "product.delete.fail", err)
	}
	applog.Audit(c, "product.delete", map[string]any{"product": id})
	return respond(c, fiber.StatusOK, "Deleted", nil)
}

func (h *ProductHandler) ListDetails(c *fiber.Ctx) error {
	id, valid := validate.ID(c.Params("id"))
	if !valid {
		return notFoundParam(c, "product")
	}
	ds, err := h.Catalog.ListDetails(id)
	if err != nil {
		return fail(c, "product_detail.list.fail", err)
	}
	return success(c, ds)
}

func (h *ProductHandler) CreateDetail(c *fiber.Ctx) error {
	id, valid := validate.ID(c.Params("id"))
	if !valid {
		return notFoundParam(c, "product")
	}
	var in services.DetailInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "product_detail.create", err)
	}
	d, err := h.Catalog.CreateDetail(c.UserContext(), id, in)
	if err != nil {
		return fail(c, "product_detail.create.fail", err)
	}
	applog.Audit(c, "product_detail.create", map[string]any{"product": id, "product_detail": d.ID, "quantity": d.Quantity})
	return respond(c, fiber.StatusCreated, "Created", d)
}

func (h *ProductHandler) UpdateDetail(c *fiber.Ctx) error {
	id, valid := validate.ID(c.Params("id"))
	if !valid {
		return notFoundParam(c, "product")
	}
	detailID, valid := validate.ID(c.Params("detail"))
	if !valid {
		return notFoundParam(c, "product_detail")
	}
	var in services.DetailInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "product_detail.update", err)
	}
	d, err := h.Catalog.UpdateDetail(c.UserContext(), id, detailID, in)
	if err != nil {
		return fail(c, "product_detail.update.fail", err)
	}
	applog.Audit(c, "product_detail.update", map[string]any{"product": id, "product_detail": detailID, "quantity": d.Quantity, "price": d.Price})
	return success(c, d)
}

func (h *ProductHandler) DeleteDetail(c *fiber.Ctx) error {
	id, valid := validate.ID(c.Params("id"))
	if !valid {
		return notFoundParam(c, "product")
	}
	detailID, valid := validate.ID(c.Params("detail"))
	if !valid {
		return notFoundParam(c, "product_detail")
	}
	if err := h.Catalog.DeleteDetail(c.UserContext(), id, detailID); err != nil {
		return fail(c, "product_detail.delete.fail", err)
	}
	applog.Audit(c, "product_detail.delete", map[string]any{"product": id, "product_detail": detailID})
	return respond(c, fiber.StatusOK, "Deleted", nil)
}
