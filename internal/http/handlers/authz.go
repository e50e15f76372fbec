package handlers

import (
	applog "wardrobe/internal/log"
	"wardrobe/internal/services"
	"wardrobe/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// UserHeader carries the caller's user id; authenticating it is left to the gateway in front.
const UserHeader = "X-User-ID"

// RequireUser rejects requests whose X-User-ID does not name a registered user.
func RequireUser(users *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, valid := validate.ID(c.Get(UserHeader))
		if !valid {
			applog.Security(c, "access.denied.anonymous", nil)
			return respond(c, fiber.StatusUnauthorized, "Authentication required", nil)
		}
		exists, err := users.Exists(uid)
		if err != nil {
			return fail(c, "user.lookup.fail", err)
		}
		if !exists {
			applog.Security(c, "access.denied.unknown_user", map[string]any{"user": uid})
			return respond(c, fiber.StatusUnauthorized, "Authentication required", nil)
		}
		c.Locals("user_id", uid)
		return c.Next()
	}
}

func userID(c *fiber.Ctx) string {
	uid, _ := c.Locals("user_id").(string)
	return uid
}
