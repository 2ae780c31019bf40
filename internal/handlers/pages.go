package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// PageHandler renders the server-side page shells. Pages carry no
// server-side data; each shell fetches its data from the JSON API.
type PageHandler struct{}

func (h *PageHandler) render(name, title string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Render(name, fiber.Map{"Title": title}, "layouts/base")
	}
}

// Register mounts the page routes on the app. Protected pages sit behind the
// auth middleware chain supplied by the caller.
func (h *PageHandler) Register(app *fiber.App, protected fiber.Handler) {
	app.Get("/", h.render("landing", "CarbonLedger"))
	app.Get("/login", h.render("login", "Sign in"))
	app.Get("/register", h.render("register", "Create account"))
	app.Get("/logout", h.render("logout", "Signed out"))

	app.Get("/dashboard", protected, h.render("dashboard", "Dashboard"))
	app.Get("/facilities", protected, h.render("facilities", "Facilities"))
	app.Get("/activities/new", protected, h.render("activities_new", "Log activity"))
	app.Get("/factors", protected, h.render("factors", "Emission factors"))
	app.Get("/factors/import", protected, h.render("factors_import", "Import factors"))
	app.Get("/reports", protected, h.render("reports", "Reports"))
	app.Get("/forecast", protected, h.render("forecast", "Forecast"))
	app.Get("/planner", protected, h.render("planner", "Action planner"))
	app.Get("/targets", protected, h.render("targets", "Targets"))
	app.Get("/profile", protected, h.render("profile", "Profile"))
	app.Get("/files", protected, h.render("files", "Files"))
}
