package handler

import (
	"context"
	"strings"

	"jobalert-web/internal/delivery/http/dto"
	"jobalert-web/internal/delivery/http/middleware"
	"jobalert-web/internal/domain/admin"
	"jobalert-web/internal/domain/job"
	"jobalert-web/internal/infrastructure/portalapi"
	"jobalert-web/internal/pkg/response"
	"jobalert-web/internal/usecase"
	"jobalert-web/internal/view"

	"github.com/gofiber/fiber/v3"
)

const (
	busyPostingJob      = "Posting job…"
	msgAdminStatsFailed = "Could not load dashboard statistics."
	msgAdminJobsFailed  = "Could not load jobs."
)

// AdminService is the admin panel's use case.
type AdminService interface {
	Dashboard(ctx context.Context, token string) (admin.Snapshot, error)
	ListJobs(ctx context.Context) ([]job.Job, error)
	CreateJob(ctx context.Context, token string, in job.CreateInput) usecase.AdminOutcome
	DeleteJob(ctx context.Context, token, id string) usecase.AdminOutcome
	Seed(ctx context.Context, token string) usecase.AdminOutcome
}

type AdminHandler struct {
	uc    AdminService
	pages *Pages
}

func NewAdminHandler(uc AdminService, pages *Pages) *AdminHandler {
	return &AdminHandler{uc: uc, pages: pages}
}

func (h *AdminHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	g := r.Group("/admin", middleware.RequireUser(), middleware.RequireRole(h.pages.AdminRole()))
	g.Get("/", h.Panel)
	g.Post("/jobs", h.CreateJob)
	g.Post("/jobs/:id/delete", h.DeleteJob)
	g.Post("/seed", h.Seed)
}

func (h *AdminHandler) dashboardDep(token string) view.Dependency {
	return view.Dep("dashboard", func(ctx context.Context) (any, error) {
		return h.uc.Dashboard(ctx, token)
	})
}

func (h *AdminHandler) jobsDep() view.Dependency {
	return view.Dep("jobs", func(ctx context.Context) (any, error) {
		return h.uc.ListJobs(ctx)
	})
}

func (h *AdminHandler) Panel(c fiber.Ctx) error {
	s, err := sessionOf(c)
	if err != nil {
		return err
	}

	deps := view.Load(c.Context(), h.dashboardDep(s.Token()), h.jobsDep())
	data := h.baseData(deps)
	if deps.Err("jobs") == nil {
		jobs, _ := view.ValueAs[[]job.Job](deps, "jobs")
		data.Jobs = view.NewJobCards(jobs)
	}
	return h.pages.Render(c, fiber.StatusOK, "admin", "Admin Panel", data)
}

func (h *AdminHandler) CreateJob(c fiber.Ctx) error {
	s, err := sessionOf(c)
	if err != nil {
		return err
	}

	var req dto.JobCreateRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	in, err := req.ToInput()
	if err != nil {
		form := view.FormData{Error: err.Error(), Values: req.Values(), BusyLabel: busyPostingJob}
		return h.respond(c, s, usecase.AdminOutcome{Result: usecase.Result{Error: err.Error()}}, fiber.StatusUnprocessableEntity, form)
	}

	out := h.uc.CreateJob(c.Context(), s.Token(), in)
	form := view.FormData{BusyLabel: busyPostingJob}
	if !out.Success {
		form.Error = out.Error
		form.Values = req.Values()
	}
	return h.respond(c, s, out, fiber.StatusBadRequest, form)
}

func (h *AdminHandler) DeleteJob(c fiber.Ctx) error {
	s, err := sessionOf(c)
	if err != nil {
		return err
	}

	id := strings.TrimSpace(c.Params("id"))
	out := h.uc.DeleteJob(c.Context(), s.Token(), id)
	return h.respond(c, s, out, fiber.StatusBadRequest, view.FormData{BusyLabel: busyPostingJob})
}

func (h *AdminHandler) Seed(c fiber.Ctx) error {
	s, err := sessionOf(c)
	if err != nil {
		return err
	}

	out := h.uc.Seed(c.Context(), s.Token())
	return h.respond(c, s, out, fiber.StatusBadRequest, view.FormData{BusyLabel: busyPostingJob})
}

// respond renders the panel after a mutation. On success the job table
// shows the list the use case re-fetched; only the statistics are loaded
// here. A failed mutation loads the list as a plain page view would.
func (h *AdminHandler) respond(c fiber.Ctx, s *usecase.Session, out usecase.AdminOutcome, failStatus int, form view.FormData) error {
	if middleware.WantsJSON(c) {
		msg := out.Message
		if !out.Success {
			msg = out.Error
		}
		return response.Outcome(c, out.Success, failStatus, msg, map[string]any{
			"success": out.Success,
			"error":   out.Error,
			"message": out.Message,
			"job":     out.Job,
		})
	}

	deps := []view.Dependency{h.dashboardDep(s.Token())}
	if !out.Success {
		deps = append(deps, h.jobsDep())
	}
	loaded := view.Load(c.Context(), deps...)

	data := h.baseData(loaded)
	data.Form = form
	status := fiber.StatusOK
	if out.Success {
		data.Message = out.Message
		data.Jobs = view.NewJobCards(out.Jobs)
		if out.Jobs == nil {
			data.JobsError = msgAdminJobsFailed
		}
	} else {
		status = failStatus
		if form.Error == "" {
			data.Error = out.Error
		}
		if loaded.Err("jobs") == nil {
			jobs, _ := view.ValueAs[[]job.Job](loaded, "jobs")
			data.Jobs = view.NewJobCards(jobs)
		}
	}
	return h.pages.Render(c, status, "admin", "Admin Panel", data)
}

func (h *AdminHandler) baseData(deps view.Data) view.AdminData {
	data := view.AdminData{
		Categories: job.Categories,
		Levels:     job.EducationLevels,
		Form:       view.FormData{BusyLabel: busyPostingJob},
	}
	if err := deps.Err("dashboard"); err != nil {
		data.SnapshotError = portalapi.MessageOr(err, msgAdminStatsFailed)
	} else if snap, ok := view.ValueAs[admin.Snapshot](deps, "dashboard"); ok {
		data.Snapshot = snap
	}
	if deps.Err("jobs") != nil {
		data.JobsError = msgAdminJobsFailed
	}
	return data
}
