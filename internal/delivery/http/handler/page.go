package handler

import (
	"bytes"
	"log"
	"strings"

	"jobalert-web/internal/delivery/http/middleware"
	"jobalert-web/internal/pkg/response"
	"jobalert-web/internal/usecase"
	"jobalert-web/internal/view"

	"github.com/gofiber/fiber/v3"
)

// Pages renders full HTML pages with the layout derived from the request's
// session.
type Pages struct {
	renderer    *view.Renderer
	appName     string
	adminRole   string
	liveUpdates bool
	logger      *log.Logger
}

type PagesConfig struct {
	AppName     string
	AdminRole   string
	LiveUpdates bool
}

func NewPages(renderer *view.Renderer, cfg PagesConfig, logger *log.Logger) *Pages {
	if cfg.AdminRole == "" {
		cfg.AdminRole = "admin"
	}
	return &Pages{
		renderer:    renderer,
		appName:     cfg.AppName,
		adminRole:   cfg.AdminRole,
		liveUpdates: cfg.LiveUpdates,
		logger:      logger,
	}
}

func (p *Pages) AdminRole() string {
	if p == nil {
		return "admin"
	}
	return p.adminRole
}

func (p *Pages) layout(c fiber.Ctx, title string) view.Layout {
	l := view.Layout{
		AppName:     p.appName,
		Title:       title,
		CurrentPath: c.Path(),
		Nav:         view.NavMenu,
		LiveUpdates: p.liveUpdates,
	}

	s := middleware.SessionFrom(c)
	if s == nil {
		return l
	}
	if u, ok := s.User(); ok {
		l.User = &u
		l.IsAdmin = u.HasRole(p.adminRole)
	}
	for _, n := range s.TakeNotices() {
		l.Notices = append(l.Notices, view.Notice{Level: string(n.Level), Message: n.Message})
	}
	return l
}

// Render writes the named page with the given status.
func (p *Pages) Render(c fiber.Ctx, status int, name, title string, data any) error {
	if p == nil || p.renderer == nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, nil)
	}

	page := view.Page{
		Layout: p.layout(c, title),
		Panels: view.DefaultPanels(),
		Data:   data,
	}

	var buf bytes.Buffer
	if err := p.renderer.Render(&buf, name, page); err != nil {
		if p.logger != nil {
			p.logger.Printf("[HTTP] render %s failed: %v", name, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	c.Status(status)
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// ErrorPage is the HTML fallback used by the error middleware.
func (p *Pages) ErrorPage(c fiber.Ctx, status int, message string) error {
	if p == nil || p.renderer == nil || !p.renderer.Has("error") {
		return c.Status(status).SendString(message)
	}
	if message == "" {
		message = response.DefaultMessage(status)
	}
	return p.Render(c, status, "error", "Error", view.ErrorData{Status: status, Message: message})
}

func sessionOf(c fiber.Ctx) (*usecase.Session, error) {
	s := middleware.SessionFrom(c)
	if s == nil {
		return nil, middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, usecase.ErrNoSession)
	}
	return s, nil
}

func seeOther(c fiber.Ctx, to string) error {
	return c.Redirect().Status(fiber.StatusSeeOther).To(to)
}

// safeNext keeps post-login redirects on this site.
func safeNext(next, fallback string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return fallback
	}
	return next
}

func queryLookup(c fiber.Ctx) func(string) string {
	return func(key string) string { return c.Query(key) }
}
