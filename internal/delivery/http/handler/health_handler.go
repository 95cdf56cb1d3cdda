package handler

import (
	"context"
	"time"

	"jobalert-web/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
	Available() bool
}

type Counter interface {
	Len() int
}

type ClientCounter interface {
	ClientCount() int
}

type HealthHandler struct {
	redis    Pinger
	sessions Counter
	clients  ClientCounter
}

func NewHealthHandler(redis Pinger, sessions Counter, clients ClientCounter) *HealthHandler {
	return &HealthHandler{redis: redis, sessions: sessions, clients: clients}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

// Health always answers 200; a degraded token store is reported, not fatal.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	data := map[string]any{
		"status": "ok",
		"redis":  h.redisStatus(c.Context()),
	}
	if h.sessions != nil {
		data["sessions"] = h.sessions.Len()
	}
	if h.clients != nil {
		data["ws_clients"] = h.clients.ClientCount()
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *HealthHandler) redisStatus(ctx context.Context) string {
	if h.redis == nil || !h.redis.Available() {
		return "disabled"
	}
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	if err := h.redis.Ping(ctx); err != nil {
		return "down"
	}
	return "up"
}
