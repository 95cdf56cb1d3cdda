package middleware

import (
	"context"
	"net/url"
	"strings"

	"jobalert-web/internal/domain/user"
	"jobalert-web/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const CtxSessionKey = "session"

// SessionSource hands out the Session for a browser's session id.
type SessionSource interface {
	Get(ctx context.Context, sid string) *usecase.Session
}

type SessionCookie struct {
	Name   string
	Secure bool
	MaxAge int
}

type SessionMiddleware struct {
	sessions SessionSource
	cookie   SessionCookie
}

func NewSessionMiddleware(sessions SessionSource, cookie SessionCookie) *SessionMiddleware {
	if cookie.Name == "" {
		cookie.Name = "jobalert_sid"
	}
	return &SessionMiddleware{sessions: sessions, cookie: cookie}
}

// Middleware resolves the browser's session from its cookie, issuing a new id
// when the cookie is absent or malformed.
func (m *SessionMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		sid := strings.TrimSpace(c.Cookies(m.cookie.Name))
		if _, err := uuid.Parse(sid); err != nil {
			sid = uuid.NewString()
		}
		c.Cookie(&fiber.Cookie{
			Name:     m.cookie.Name,
			Value:    sid,
			Path:     "/",
			MaxAge:   m.cookie.MaxAge,
			HTTPOnly: true,
			Secure:   m.cookie.Secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})

		c.Locals(CtxSessionKey, m.sessions.Get(c.Context(), sid))
		return c.Next()
	}
}

func SessionFrom(c fiber.Ctx) *usecase.Session {
	s, _ := c.Locals(CtxSessionKey).(*usecase.Session)
	return s
}

// RequireUser lets signed-in sessions through. Browsers are sent to the login
// page; JSON callers get 401.
func RequireUser() fiber.Handler {
	return func(c fiber.Ctx) error {
		s := SessionFrom(c)
		if s == nil {
			return NewAppError(fiber.StatusUnauthorized, "Please login to continue", nil, nil)
		}
		if _, ok := s.User(); !ok {
			if WantsJSON(c) {
				return NewAppError(fiber.StatusUnauthorized, "Please login to continue", nil, nil)
			}
			return c.Redirect().Status(fiber.StatusSeeOther).To("/login?next=" + url.QueryEscape(c.OriginalURL()))
		}
		return c.Next()
	}
}

// RequireRole must run after RequireUser.
func RequireRole(role string) fiber.Handler {
	return func(c fiber.Ctx) error {
		s := SessionFrom(c)
		if s == nil {
			return NewAppError(fiber.StatusUnauthorized, "Please login to continue", nil, nil)
		}
		u, ok := s.User()
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Please login to continue", nil, nil)
		}
		if !u.HasRole(role) {
			return NewAppError(fiber.StatusForbidden, "Admin access required", nil, nil)
		}
		return c.Next()
	}
}

// CurrentUser returns the signed-in user, if any.
func CurrentUser(c fiber.Ctx) (user.User, bool) {
	s := SessionFrom(c)
	if s == nil {
		return user.User{}, false
	}
	return s.User()
}
