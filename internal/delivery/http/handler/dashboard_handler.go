package handler

import (
	"context"
	"net/url"

	"jobalert-web/internal/delivery/http/middleware"
	"jobalert-web/internal/domain/notification"
	"jobalert-web/internal/pkg/response"
	"jobalert-web/internal/usecase"
	"jobalert-web/internal/view"

	"github.com/gofiber/fiber/v3"
)

const msgNotificationsFailed = "Could not load notifications."

type DashboardHandler struct {
	pages *Pages
}

func NewDashboardHandler(pages *Pages) *DashboardHandler {
	return &DashboardHandler{pages: pages}
}

func (h *DashboardHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/dashboard", middleware.RequireUser(), h.Dashboard)
}

func (h *DashboardHandler) Dashboard(c fiber.Ctx) error {
	s, err := sessionOf(c)
	if err != nil {
		return err
	}

	deps := view.Load(c.Context(), view.Dep("notifications", func(ctx context.Context) (any, error) {
		return s.Notifications(ctx)
	}))

	st := s.Snapshot()
	if !st.Authenticated {
		// a rejected token logs the session out mid-request
		return seeOther(c, "/login?next="+url.QueryEscape(c.OriginalURL()))
	}

	notes, _ := view.ValueAs[[]notification.Notification](deps, "notifications")
	d := usecase.BuildUserDashboard(st, notes)

	if middleware.WantsJSON(c) {
		return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{
			"user":          d.User,
			"notifications": d.Notifications,
			"unread":        d.Unread,
			"recent_jobs":   d.RecentJobs,
			"total_jobs":    d.TotalJobs,
		})
	}

	data := view.DashboardData{
		User:          d.User,
		Notifications: d.Notifications,
		Unread:        d.Unread,
		RecentJobs:    view.NewJobCards(d.RecentJobs),
		TotalJobs:     d.TotalJobs,
	}
	if deps.Err("notifications") != nil {
		data.NotificationsError = msgNotificationsFailed
	}
	return h.pages.Render(c, fiber.StatusOK, "dashboard", "Dashboard", data)
}
