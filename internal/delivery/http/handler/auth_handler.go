package handler

import (
	"jobalert-web/internal/delivery/http/dto"
	"jobalert-web/internal/delivery/http/middleware"
	"jobalert-web/internal/pkg/response"
	"jobalert-web/internal/usecase"
	"jobalert-web/internal/view"

	"github.com/gofiber/fiber/v3"
)

const (
	busySigningIn       = "Signing in…"
	busyCreatingAccount = "Creating account…"
	afterLoginPath      = "/dashboard"
)

type AuthHandler struct {
	pages *Pages
}

func NewAuthHandler(pages *Pages) *AuthHandler {
	return &AuthHandler{pages: pages}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/login", h.LoginPage)
	r.Post("/login", h.Login)
	r.Get("/register", h.RegisterPage)
	r.Post("/register", h.Register)
	r.Post("/logout", h.Logout)
}

func (h *AuthHandler) LoginPage(c fiber.Ctx) error {
	if _, ok := middleware.CurrentUser(c); ok {
		return seeOther(c, safeNext(c.Query("next"), afterLoginPath))
	}
	return h.renderLogin(c, fiber.StatusOK, "", map[string]string{"next": c.Query("next")})
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	s, err := sessionOf(c)
	if err != nil {
		return err
	}

	var req dto.LoginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	req = req.Normalize()
	next := c.FormValue("next")

	values := req.Values()
	values["next"] = next

	if err := req.Validate(); err != nil {
		return h.loginFailed(c, fiber.StatusUnprocessableEntity, err.Error(), values)
	}

	res := s.Login(c.Context(), req.Email, req.Password)
	if !res.Success {
		return h.loginFailed(c, fiber.StatusUnauthorized, res.Error, values)
	}

	if middleware.WantsJSON(c) {
		return response.Outcome(c, true, fiber.StatusUnauthorized, response.MessageOK, res)
	}
	return seeOther(c, safeNext(next, afterLoginPath))
}

func (h *AuthHandler) loginFailed(c fiber.Ctx, status int, msg string, values map[string]string) error {
	if middleware.WantsJSON(c) {
		return response.Outcome(c, false, status, msg, usecase.Result{Success: false, Error: msg})
	}
	return h.renderLogin(c, status, msg, values)
}

func (h *AuthHandler) renderLogin(c fiber.Ctx, status int, msg string, values map[string]string) error {
	return h.pages.Render(c, status, "login", "Login", view.FormData{
		Error:     msg,
		Values:    values,
		BusyLabel: busySigningIn,
	})
}

func (h *AuthHandler) RegisterPage(c fiber.Ctx) error {
	if _, ok := middleware.CurrentUser(c); ok {
		return seeOther(c, afterLoginPath)
	}
	return h.renderRegister(c, fiber.StatusOK, "", nil)
}

// Register creates the account and signs the session in with the same
// credentials.
func (h *AuthHandler) Register(c fiber.Ctx) error {
	s, err := sessionOf(c)
	if err != nil {
		return err
	}

	var req dto.RegisterRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	req = req.Normalize()

	if err := req.Validate(); err != nil {
		return h.registerFailed(c, fiber.StatusUnprocessableEntity, err.Error(), req.Values())
	}

	res := s.Register(c.Context(), req.ToInput())
	if !res.Success {
		return h.registerFailed(c, fiber.StatusBadRequest, res.Error, req.Values())
	}

	if middleware.WantsJSON(c) {
		return response.Outcome(c, true, fiber.StatusBadRequest, response.MessageOK, res)
	}
	return seeOther(c, afterLoginPath)
}

func (h *AuthHandler) registerFailed(c fiber.Ctx, status int, msg string, values map[string]string) error {
	if middleware.WantsJSON(c) {
		return response.Outcome(c, false, status, msg, usecase.Result{Success: false, Error: msg})
	}
	return h.renderRegister(c, status, msg, values)
}

func (h *AuthHandler) renderRegister(c fiber.Ctx, status int, msg string, values map[string]string) error {
	return h.pages.Render(c, status, "register", "Register", view.FormData{
		Error:     msg,
		Values:    values,
		BusyLabel: busyCreatingAccount,
	})
}

// Logout only clears local session state; the API has no logout endpoint.
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	s, err := sessionOf(c)
	if err != nil {
		return err
	}
	s.Logout(c.Context())

	if middleware.WantsJSON(c) {
		return response.Success(c, fiber.StatusOK, response.MessageOK, usecase.Result{Success: true})
	}
	return seeOther(c, "/")
}
