package middleware

import (
	"errors"
	"log"
	"strings"

	"jobalert-web/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type AppError struct {
	StatusCode int
	Message    string
	Data       interface{}
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, data interface{}, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Data: data, Cause: cause}
}

// ErrorPageFunc renders an HTML error page for browser requests.
type ErrorPageFunc func(c fiber.Ctx, status int, message string) error

type ErrorMiddleware struct {
	logger *log.Logger
	page   ErrorPageFunc
}

func NewErrorMiddleware(logger *log.Logger, page ErrorPageFunc) *ErrorMiddleware {
	return &ErrorMiddleware{logger: logger, page: page}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.logf("panic recovered path=%s: %v", c.Path(), r)
				err = m.write(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		status, msg, data := normalizeError(err)
		if status >= 500 {
			m.logf("request failed path=%s: %v", c.Path(), err)
		}
		return m.write(c, status, msg, data)
	}
}

func (m *ErrorMiddleware) logf(format string, args ...any) {
	if m.logger != nil {
		m.logger.Printf("[HTTP] "+format, args...)
		return
	}
	log.Printf("[HTTP] "+format, args...)
}

func (m *ErrorMiddleware) write(c fiber.Ctx, status int, msg string, data interface{}) error {
	if WantsJSON(c) || m.page == nil {
		return response.Error(c, status, msg, data)
	}
	if err := m.page(c, status, msg); err != nil {
		m.logf("error page failed: %v", err)
		return c.Status(status).SendString(msg)
	}
	return nil
}

// WantsJSON reports whether the client asked for the JSON envelope instead
// of HTML.
func WantsJSON(c fiber.Ctx) bool {
	return strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMEApplicationJSON)
}

func normalizeError(err error) (int, string, interface{}) {
	if err == nil {
		return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.StatusCode <= 0 {
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		}

		status := appErr.StatusCode
		msg := appErr.Message
		if msg == "" {
			msg = response.DefaultMessage(status)
		}

		if status >= 500 {
			return status, response.MessageInternalServerError, nil
		}
		return status, msg, appErr.Data
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status := fiberErr.Code
		if status <= 0 {
			status = fiber.StatusInternalServerError
		}

		if status >= 500 {
			return status, response.MessageInternalServerError, nil
		}

		msg := fiberErr.Message
		if msg == "" {
			msg = response.DefaultMessage(status)
		}
		return status, msg, nil
	}

	return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
}
