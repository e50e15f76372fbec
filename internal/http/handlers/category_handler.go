package handlers

import (
	applog "wardrobe/internal/log"
	"wardrobe/internal/services"
	"wardrobe/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		return fail(c, "category.list.fail", err)
	}
	return success(c, cats)
}

func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	id, valid := validate.ID(c.Params("id"))
	if !valid {
		return notFoundParam(c, "category")
	}
	cat, err := h.Catalog.GetCategory(id)
	if err != nil {
		return fail(c, "category.get.fail", err)
	}
	return success(c, cat)
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in services.CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "category.create", err)
	}
	cat, err := h.Catalog.CreateCategory(in)
	if err != nil {
		return fail(c, "category.create.fail", err)
	}
	applog.Audit(c, "category.create", map[string]any{"category": cat.ID})
	return respond(c, fiber.StatusCreated, "Created", cat)
}

// Replace handles PUT; every field must be present.
func (h *CategoryHandler) Replace(c *fiber.Ctx) error { return h.update(c, true) }

func (h *CategoryHandler) Update(c *fiber.Ctx) error { return h.update(c, false) }

func (h *CategoryHandler) update(c *fiber.Ctx, replace bool) error {
	id, valid := validate.ID(c.Params("id"))
	if !valid {
		return notFoundParam(c, "category")
	}
	var in services.CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "category.update", err)
	}
	cat, err := h.Catalog.UpdateCategory(c.UserContext(), id, in, replace)
	if err != nil {
		return fail(c, "category.update.fail", err)
	}
	applog.Audit(c, "category.update", map[string]any{"category": id})
	return success(c, cat)
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, valid := validate.ID(c.Params("id"))
	if !valid {
		return notFoundParam(c, "category")
	}
	if err := h.Catalog.DeleteCategory(c.UserContext(), id); err != nil {
		return fail(c, "category.delete.fail", err)
	}
	applog.Audit(c, "category.delete", map[string]any{"category": id})
	return respond(c, fiber.StatusOK, "Deleted", nil)
}
