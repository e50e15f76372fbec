package handlers

import (
	"wardrobe/internal/services"
	"wardrobe/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	Inv *services.InventoryService
}

// Check answers GET /product/:id/availability?size=M.
func (h *InventoryHandler) Check(c *fiber.Ctx) error {
	productID, valid := validate.ID(c.Params("id"))
	if !valid {
		return notFoundParam(c, "product")
	}
	size, valid := validate.Size(c.Query("size"))
	if !valid {
		return respond(c, fiber.StatusBadRequest, "size must be one of S, M, L, XL, XXL, XXXL", nil)
	}

	avail, err := h.Inv.CheckAvailability(productID, size)
	if err != nil {
		return fail(c, "availability.check.fail", err)
	}
	return success(c, avail)
}
