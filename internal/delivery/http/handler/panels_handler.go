package handler

import (
	"strings"

	"jobalert-web/internal/view"

	"github.com/gofiber/fiber/v3"
)

// PanelsHandler serves the home page, the static informational panel pages
// and the category shortcut redirects.
type PanelsHandler struct {
	pages *Pages
}

func NewPanelsHandler(pages *Pages) *PanelsHandler {
	return &PanelsHandler{pages: pages}
}

func (h *PanelsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.Home)
	r.Get("/admit-cards", h.AdmitCards)
	r.Get("/results", h.Results)
	r.Get("/latest-jobs", h.LatestJobs)
	r.Get("/state-jobs", h.StateJobs)

	for _, cr := range view.CategoryRoutes {
		target := cr.Target()
		r.Get(cr.Path, func(c fiber.Ctx) error {
			return c.Redirect().Status(fiber.StatusFound).To(target)
		})
	}
}

func (h *PanelsHandler) Home(c fiber.Ctx) error {
	s, err := sessionOf(c)
	if err != nil {
		return err
	}
	st := s.Snapshot()
	return h.pages.Render(c, fiber.StatusOK, "home", "Home", view.HomeData{
		Jobs:       view.NewJobCards(st.Jobs),
		JobsFailed: st.JobsFailed,
	})
}

func (h *PanelsHandler) LatestJobs(c fiber.Ctx) error {
	s, err := sessionOf(c)
	if err != nil {
		return err
	}
	st := s.Snapshot()
	return h.pages.Render(c, fiber.StatusOK, "latest_jobs", "Latest Jobs", view.HomeData{
		Jobs:       view.NewJobCards(st.Jobs),
		JobsFailed: st.JobsFailed,
	})
}

func (h *PanelsHandler) AdmitCards(c fiber.Ctx) error {
	return h.pages.Render(c, fiber.StatusOK, "panel_list", "Admit Cards", view.PanelPageData{
		Heading: "Admit Card",
		Items:   view.AdmitCards,
	})
}

func (h *PanelsHandler) Results(c fiber.Ctx) error {
	return h.pages.Render(c, fiber.StatusOK, "panel_list", "Results", view.PanelPageData{
		Heading: "Result",
		Items:   view.Results,
	})
}

func (h *PanelsHandler) StateJobs(c fiber.Ctx) error {
	state := strings.TrimSpace(c.Query("state"))
	data := view.StateJobsData{States: view.States}
	if view.KnownState(state) {
		data.Selected = state
		data.Postings = view.StateJobs(state)
	}
	return h.pages.Render(c, fiber.StatusOK, "state_jobs", "State Govt Jobs", data)
}
