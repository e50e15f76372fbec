package handlers

import (
	applog "wardrobe/internal/log"
	"wardrobe/internal/services"
	"wardrobe/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart *services.CartService
}

func (h *CartHandler) List(c *fiber.Ctx) error {
	carts, err := h.Cart.List(userID(c))
	if err != nil {
		return fail(c, "cart.list.fail", err)
	}
	return success(c, carts)
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	id, valid := validate.ID(c.Params("id"))
	if !valid {
		return notFoundParam(c, "cart")
	}
	cv, err := h.Cart.Get(userID(c), id)
	if err != nil {
		return fail(c, "cart.view.fail", err)
	}
	return success(c, cv)
}

// Mutate applies one add / remove / delete / add_quantity action to the cart.
func (h *CartHandler) Mutate(c *fiber.Ctx) error {
	id, valid := validate.ID(c.Params("id"))
	if !valid {
		return notFoundParam(c, "cart")
	}
	var req services.MutationRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, "cart.mutate", err)
	}
	res, err := h.Cart.Mutate(userID(c), id, req)
	if err != nil {
		return fail(c, "cart.mutate.fail", err)
	}
	fields := map[string]any{"cart": id, "action": req.Action, "product": req.Product, "product_detail": req.ProductDetail}
	if res.Status == fiber.StatusOK {
		applog.Audit(c, "cart.mutate", fields)
	} else {
		applog.Info(c, "cart.stock_limit", fields)
	}
	return respond(c, res.Status, res.Message, res.Data)
}
