package handler_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"jobalert-web/internal/delivery/http/handler"
	"jobalert-web/internal/delivery/http/middleware"
	"jobalert-web/internal/delivery/http/routes"
	"jobalert-web/internal/infrastructure/cache"
	"jobalert-web/internal/infrastructure/portalapi"
	"jobalert-web/internal/infrastructure/portalapi/portalapitest"
	"jobalert-web/internal/pkg/jwt"
	"jobalert-web/internal/usecase"
	"jobalert-web/internal/view"

	"github.com/PuerkitoBio/goquery"
	"github.com/gofiber/fiber/v3"
)

type harness struct {
	t        *testing.T
	api      *portalapitest.Server
	app      *fiber.App
	sessions *usecase.SessionManager
	notified []string
}

func (h *harness) NotifyJobsUpdated(reason, _ string) {
	h.notified = append(h.notified, reason)
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	api := portalapitest.NewServer()
	t.Cleanup(api.Close)

	client := portalapi.NewClient(api.URL, 5*time.Second, nil)
	renderer, err := view.NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}

	h := &harness{t: t, api: api}
	h.sessions = usecase.NewSessionManager(client, cache.NewMemory(time.Hour), jwt.NewUnverifiedInspector(0), time.Hour, nil)
	adminUC := usecase.NewAdminUsecase(client, h, nil)

	pages := handler.NewPages(renderer, handler.PagesConfig{AppName: "JobAlert", AdminRole: "admin"}, nil)

	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil, pages.ErrorPage).Middleware())

	reg := &routes.Registry{
		Health:    handler.NewHealthHandler(nil, h.sessions, nil),
		Panels:    handler.NewPanelsHandler(pages),
		Jobs:      handler.NewJobsHandler(client, pages),
		Search:    handler.NewSearchHandler(pages),
		Auth:      handler.NewAuthHandler(pages),
		Dashboard: handler.NewDashboardHandler(pages),
		Admin:     handler.NewAdminHandler(adminUC, pages),
		Static:    view.StaticFS(),
	}
	reg.Register(app, middleware.NewSessionMiddleware(h.sessions, middleware.SessionCookie{Name: "sid"}).Middleware())

	h.app = app
	return h
}

// browser replays the session cookie across requests.
type browser struct {
	h      *harness
	cookie *http.Cookie
}

func (h *harness) browser() *browser {
	return &browser{h: h}
}

func (b *browser) do(req *http.Request) *http.Response {
	b.h.t.Helper()
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}
	resp, err := b.h.app.Test(req, fiber.TestConfig{Timeout: 5 * time.Second})
	if err != nil {
		b.h.t.Fatalf("%s %s: %v", req.Method, req.URL, err)
	}
	for _, c := range resp.Cookies() {
		if c.Name == "sid" {
			b.cookie = &http.Cookie{Name: c.Name, Value: c.Value}
		}
	}
	return resp
}

func (b *browser) get(path string) *http.Response {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) getJSON(path string) *http.Response {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Accept", "application/json")
	return b.do(req)
}

func (b *browser) post(path string, form url.Values) *http.Response {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func (b *browser) postJSON(path string, form url.Values) *http.Response {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	return b.do(req)
}

func (b *browser) login(email, password string) {
	b.h.t.Helper()
	resp := b.post("/login", url.Values{"email": {email}, "password": {password}})
	if resp.StatusCode != http.StatusSeeOther {
		b.h.t.Fatalf("login: expected 303, got %d", resp.StatusCode)
	}
}

func document(t *testing.T, resp *http.Response) *goquery.Document {
	t.Helper()
	defer resp.Body.Close()
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}
