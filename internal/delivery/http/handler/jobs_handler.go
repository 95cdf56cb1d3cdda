package handler

import (
	"context"
	"strings"

	"jobalert-web/internal/delivery/http/middleware"
	"jobalert-web/internal/domain/job"
	"jobalert-web/internal/infrastructure/portalapi"
	"jobalert-web/internal/pkg/response"
	"jobalert-web/internal/usecase"
	"jobalert-web/internal/view"

	"github.com/gofiber/fiber/v3"
)

const msgJobLoadFailed = "Could not load this job right now."

// JobReader fetches a single posting for the detail page.
type JobReader interface {
	GetJob(ctx context.Context, id string) (job.Job, error)
}

type JobsHandler struct {
	jobs  JobReader
	pages *Pages
}

func NewJobsHandler(jobs JobReader, pages *Pages) *JobsHandler {
	return &JobsHandler{jobs: jobs, pages: pages}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/jobs", h.List)
	r.Get("/jobs/:id", h.Detail)
	r.Post("/jobs/:id/apply", h.Apply)
}

// List reloads the session's job list with the filters from the query string.
func (h *JobsHandler) List(c fiber.Ctx) error {
	s, err := sessionOf(c)
	if err != nil {
		return err
	}

	f := job.FiltersFromQuery(queryLookup(c))
	s.LoadJobs(c.Context(), f)
	st := s.Snapshot()

	if middleware.WantsJSON(c) {
		return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{
			"jobs":    st.Jobs,
			"filters": f,
			"failed":  st.JobsFailed,
		})
	}

	return h.pages.Render(c, fiber.StatusOK, "jobs", "Government Jobs", view.JobsData{
		Jobs:       view.NewJobCards(st.Jobs),
		Filters:    f,
		Failed:     st.JobsFailed,
		Categories: job.Categories,
		Levels:     job.EducationLevels,
		States:     view.States,
	})
}

func (h *JobsHandler) Detail(c fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, nil)
	}

	deps := view.Load(c.Context(), view.Dep("job", func(ctx context.Context) (any, error) {
		return h.jobs.GetJob(ctx, id)
	}))

	status := fiber.StatusOK
	data := view.JobDetailData{}
	if err := deps.Err("job"); err != nil {
		if portalapi.IsNotFound(err) {
			status = fiber.StatusNotFound
			data.NotFound = true
		} else {
			status = fiber.StatusBadGateway
			data.Error = portalapi.MessageOr(err, msgJobLoadFailed)
		}
	} else if j, ok := view.ValueAs[job.Job](deps, "job"); ok {
		card := view.NewJobCard(j)
		data.Job = &card
	}

	title := "Job Details"
	if data.Job != nil {
		title = data.Job.Title
	}
	return h.pages.Render(c, status, "job_detail", title, data)
}

// Apply submits an application for the signed-in user and returns to the
// detail page, where the outcome shows as a notice.
func (h *JobsHandler) Apply(c fiber.Ctx) error {
	s, err := sessionOf(c)
	if err != nil {
		return err
	}
	id := strings.TrimSpace(c.Params("id"))

	res := s.ApplyForJob(c.Context(), id)

	if middleware.WantsJSON(c) {
		// the notice is delivered in the envelope instead
		s.TakeNotices()
		failStatus := fiber.StatusBadRequest
		msg := usecase.MsgApplicationSuccess
		if !res.Success {
			msg = res.Error
			if res.Error == usecase.MsgLoginToApply {
				failStatus = fiber.StatusUnauthorized
			}
		}
		return response.Outcome(c, res.Success, failStatus, msg, res)
	}

	return seeOther(c, "/jobs/"+id)
}
