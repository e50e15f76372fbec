package handlers

import (
	applog "wardrobe/internal/log"
	"wardrobe/internal/services"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	Users *services.UserService
}

// Create registers a user and the user's cart.
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in services.UserInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "user.create", err)
	}
	u, err := h.Users.Create(in)
	if err != nil {
		return fail(c, "user.create.fail", err)
	}
	applog.Audit(c, "user.create", map[string]any{"user": u.ID})
	return respond(c, fiber.StatusCreated, "Created", u)
}
