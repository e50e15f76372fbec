package handlers

import (
	"strings"
	"time"

	"wardrobe/internal/config"
	"wardrobe/internal/http/web"
	applog "wardrobe/internal/log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

const APIPrefix = "/api/v1"

// NewApp builds the fiber app with middleware and every route mounted.
func NewApp(cfg config.Config, d *Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "wardrobe",
		Views:        web.Engine(),
		ErrorHandler: ErrorHandler,
		BodyLimit:    cfg.BodyLimit,
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(applog.Access())
	app.Use(fiberrecover.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.Origins, ","),
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, " + UserHeader,
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return respond(c, fiber.StatusTooManyRequests, "Too many requests", nil)
		},
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error { return success(c, fiber.Map{"ok": true}) })
	app.Get("/docs", Docs)

	api := app.Group(APIPrefix)
	auth := RequireUser(d.Users)

	// Cart & wishlist
	api.Get("/cart", auth, d.CartHandler.List)
	api.Get("/cart/:id", auth, d.CartHandler.View)
	api.Patch("/cart/:id", auth, d.CartHandler.Mutate)
	api.Get("/wishlist", auth, d.WishlistHandler.List)
	api.Post("/wishlist", auth, d.WishlistHandler.Save)
	api.Delete("/wishlist/:product", auth, d.WishlistHandler.Unsave)

	// Catalog
	api.Get("/category", d.CategoryHandler.List)
	api.Post("/category", d.CategoryHandler.Create)
	api.Get("/category/:id", d.CategoryHandler.Get)
	api.Put("/category/:id", d.CategoryHandler.Replace)
	api.Patch("/category/:id", d.CategoryHandler.Update)
	api.Delete("/category/:id", d.CategoryHandler.Delete)

	api.Get("/product", d.ProductHandler.List)
	api.Post("/product", d.ProductHandler.Create)
	api.Get("/product/:id", d.ProductHandler.Get)
	api.Patch("/product/:id", d.ProductHandler.Update)
	api.Delete("/product/:id", d.ProductHandler.Delete)
	api.Get("/product/:id/details", d.ProductHandler.ListDetails)
	api.Post("/product/:id/details", d.ProductHandler.CreateDetail)
	api.Patch("/product/:id/details/:detail", d.ProductHandler.UpdateDetail)
	api.Delete("/product/:id/details/:detail", d.ProductHandler.DeleteDetail)

	availLimiter := limiter.New(limiter.Config{
		Max:        15,
		Expiration: 30 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|avail"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.availability.hit", nil)
			return respond(c, fiber.StatusTooManyRequests, "rate limit exceeded, retry soon", nil)
		},
	})
	api.Get("/product/:id/availability", availLimiter, d.InventoryHandler.Check)

	api.Get("/image", d.ImageHandler.List)
	api.Post("/image", d.ImageHandler.Create)
	api.Get("/image/:id", d.ImageHandler.Get)
	api.Patch("/image/:id", d.ImageHandler.Update)
	api.Delete("/image/:id", d.ImageHandler.Delete)

	api.Post("/user", d.UserHandler.Create)

	app.Use(func(c *fiber.Ctx) error {
		return respond(c, fiber.StatusNotFound, "Not found", nil)
	})
	return app
}
