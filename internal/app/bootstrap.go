package app

import (
	"fmt"
	"strings"

	"jobalert-web/internal/config"
	"jobalert-web/internal/delivery/http/handler"
	"jobalert-web/internal/delivery/http/middleware"
	"jobalert-web/internal/delivery/http/routes"
	"jobalert-web/internal/view"
	"jobalert-web/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	cfg := c.Config
	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	pages := handler.NewPages(c.Renderer, handler.PagesConfig{
		AppName:     cfg.App.AppName,
		AdminRole:   cfg.App.AdminRole,
		LiveUpdates: true,
	}, c.Logger)

	registerGlobalMiddleware(f, c, pages)
	registerRoutes(f, c, pages)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}
	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container, pages *handler.Pages) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(c.Logger, pages.ErrorPage).Middleware())
}

func registerRoutes(app *fiber.App, c *Container, pages *handler.Pages) {
	if app == nil {
		return
	}

	session := middleware.NewSessionMiddleware(c.Sessions, middleware.SessionCookie{
		Name:   c.Config.Session.CookieName,
		Secure: c.Config.Session.CookieSecure,
		MaxAge: int(c.Config.Session.TokenTTL.Seconds()),
	})

	reg := &routes.Registry{
		Health:    handler.NewHealthHandler(c.Redis, c.Sessions, c.Hub),
		Panels:    handler.NewPanelsHandler(pages),
		Jobs:      handler.NewJobsHandler(c.API, pages),
		Search:    handler.NewSearchHandler(pages),
		Auth:      handler.NewAuthHandler(pages),
		Dashboard: handler.NewDashboardHandler(pages),
		Admin:     handler.NewAdminHandler(c.Admin, pages),
		JobsWS:    ws.NewHandler(c.Hub, c.Logger).HandleJobsWS,
		Static:    view.StaticFS(),
	}
	reg.Register(app, session.Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
