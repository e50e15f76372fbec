package handlers

import (
	applog "wardrobe/internal/log"
	"wardrobe/internal/services"
	"wardrobe/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type WishlistHandler struct {
	Wish *services.WishlistService
}

func (h *WishlistHandler) List(c *fiber.Ctx) error {
	items, err := h.Wish.List(userID(c))
	if err != nil {
		return fail(c, "wishlist.list.fail", err)
	}
	return success(c, items)
}

func (h *WishlistHandler) Save(c *fiber.Ctx) error {
	var req services.WishlistRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, "wishlist.save", err)
	}
	if err := h.Wish.Save(userID(c), req); err != nil {
		return fail(c, "wishlist.save.fail", err)
	}
	applog.Audit(c, "wishlist.save", map[string]any{"product": req.Product, "product_detail": req.ProductDetail})
	items, err := h.Wish.List(userID(c))
	if err != nil {
		return fail(c, "wishlist.list.fail", err)
	}
	return respond(c, fiber.StatusCreated, "Saved to wishlist", items)
}

func (h *WishlistHandler) Unsave(c *fiber.Ctx) error {
	pid, valid := validate.ID(c.Params("product"))
	if !valid {
		return notFoundParam(c, "product")
	}
	if err := h.Wish.Unsave(userID(c), pid); err != nil {
		return fail(c, "wishlist.unsave.fail", err)
	}
	applog.Audit(c, "wishlist.unsave", map[string]any{"product": pid})
	return respond(c, fiber.StatusOK, "Removed from wishlist", nil)
}
