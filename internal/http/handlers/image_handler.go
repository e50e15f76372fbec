package handlers

import (
	applog "wardrobe/internal/log"
	"wardrobe/internal/services"
	"wardrobe/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ImageHandler struct {
	Catalog *services.CatalogService
}

// List accepts ?product= to narrow to one product.
func (h *ImageHandler) List(c *fiber.Ctx) error {
	product := c.Query("product")
	if product != "" {
		var valid bool
		if product, valid = validate.ID(product); !valid {
			return respond(c, fiber.StatusBadRequest, "invalid product id", nil)
		}
	}
	imgs, err := h.Catalog.ListImages(product)
	if err != nil {
		return fail(c, "image.list.fail", err)
	}
	return success(c, imgs)
}

func (h *ImageHandler) Get(c *fiber.Ctx) error {
	id, valid := validate.ID(c.Params("id"))
	if !valid {
		return notFoundParam(c, "image")
	}
	img, err := h.Catalog.GetImage(id)
	if err != nil {
		return fail(c, "image.get.fail", err)
	}
	return success(c, img)
}

func (h *ImageHandler) Create(c *fiber.Ctx) error {
	var in services.ImageInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "image.create", err)
	}
	img, err := h.Catalog.CreateImage(c.UserContext(), in)
	if err != nil {
		return fail(c, "image.create.fail", err)
	}
	applog.Audit(c, "image.create", map[string]any{"image": img.ID, "product": img.Product})
	return respond(c, fiber.StatusCreated, "Created", img)
}

func (h *ImageHandler) Update(c *fiber.Ctx) error {
	id, valid := validate.ID(c.Params("id"))
	if !valid {
		return notFoundParam(c, "image")
	}
	var in services.ImageInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "image.update", err)
	}
	img, err := h.Catalog.UpdateImage(c.UserContext(), id, in)
	if err != nil {
		return fail(c, "image.update.fail", err)
	}
	applog.Audit(c, "image.update", map[string]any{"image": id})
	return success(c, img)
}

func (h *ImageHandler) Delete(c *fiber.Ctx) error {
	id, valid := validate.ID(c.Params("id"))
	if !valid {
		return notFoundParam(c, "image")
	}
	if err := h.Catalog.DeleteImage(c.UserContext(), id); err != nil {
		return fail(c, "image.delete.fail", err)
	}
	applog.Audit(c, "image.delete", map[string]any{"image": id})
	return respond(c, fiber.StatusOK, "Deleted", nil)
}
