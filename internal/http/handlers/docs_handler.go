package handlers

import (
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type route struct {
	Method string
	Path   string
}

// Docs lists the registered API routes as an HTML page.
func Docs(c *fiber.Ctx) error {
	var routes []route
	seen := map[string]bool{}
	for _, r := range c.App().GetRoutes(true) {
		if r.Method == fiber.MethodHead || !(strings.HasPrefix(r.Path, APIPrefix) || r.Path == "/healthz") {
			continue
		}
		key := r.Method + " " + r.Path
		if seen[key] {
			continue
		}
		seen[key] = true
		routes = append(routes, route{Method: r.Method, Path: r.Path})
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path != routes[j].Path {
			return routes[i].Path < routes[j].Path
		}
		return routes[i].Method < routes[j].Method
	})
	return c.Render("docs", fiber.Map{
		"Title":      "wardrobe API",
		"Prefix":     APIPrefix,
		"UserHeader": UserHeader,
		"Routes":     routes,
	})
}
