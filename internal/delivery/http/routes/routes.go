package routes

import (
	"io/fs"

	"jobalert-web/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/static"
)

// Registry owns every handler the server exposes.
type Registry struct {
	Health    *handler.HealthHandler
	Panels    *handler.PanelsHandler
	Jobs      *handler.JobsHandler
	Search    *handler.SearchHandler
	Auth      *handler.AuthHandler
	Dashboard *handler.DashboardHandler
	Admin     *handler.AdminHandler

	JobsWS fiber.Handler
	Static fs.FS
}

// Register mounts the health check, static assets and websocket before the
// session middleware, and the pages after it.
func (r *Registry) Register(app *fiber.App, session fiber.Handler) {
	if r == nil || app == nil {
		return
	}

	r.registerInfra(app)

	pages := app.Group("")
	if session != nil {
		pages.Use(session)
	}
	r.registerPages(pages)
}

func (r *Registry) registerInfra(app *fiber.App) {
	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}
	if r.Static != nil {
		app.Get("/static*", static.New("", static.Config{FS: r.Static}))
	}
	if r.JobsWS != nil {
		app.Get("/ws/jobs", r.JobsWS)
	}
}

func (r *Registry) registerPages(router fiber.Router) {
	if r.Panels != nil {
		r.Panels.RegisterRoutes(router)
	}
	if r.Jobs != nil {
		r.Jobs.RegisterRoutes(router)
	}
	if r.Search != nil {
		r.Search.RegisterRoutes(router)
	}
	if r.Auth != nil {
		r.Auth.RegisterRoutes(router)
	}
	if r.Dashboard != nil {
		r.Dashboard.RegisterRoutes(router)
	}
	if r.Admin != nil {
		r.Admin.RegisterRoutes(router)
	}
}
