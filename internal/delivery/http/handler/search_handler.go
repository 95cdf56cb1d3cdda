package handler

import (
	"strings"

	"jobalert-web/internal/delivery/http/middleware"
	"jobalert-web/internal/domain/job"
	"jobalert-web/internal/pkg/response"
	"jobalert-web/internal/view"

	"github.com/gofiber/fiber/v3"
)

type SearchHandler struct {
	pages *Pages
}

func NewSearchHandler(pages *Pages) *SearchHandler {
	return &SearchHandler{pages: pages}
}

func (h *SearchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/search", h.Search)
}

// Search dispatches a keyword search through the session. A blank query
// renders the empty search page without calling the API.
func (h *SearchHandler) Search(c fiber.Ctx) error {
	s, err := sessionOf(c)
	if err != nil {
		return err
	}

	q := strings.TrimSpace(c.Query("q"))
	f := job.FiltersFromQuery(queryLookup(c), job.FilterCategory, job.FilterLocation)
	data := view.SearchData{Query: q, Filters: f}

	if q != "" {
		res := s.SearchJobs(c.Context(), q, f)
		st := s.Snapshot()
		if res.Success {
			data.Results = view.NewJobCards(st.SearchResults)
		} else {
			data.Error = res.Error
		}

		if middleware.WantsJSON(c) {
			if data.Error != "" {
				return response.Error(c, fiber.StatusBadGateway, data.Error, nil)
			}
			return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{
				"query":   q,
				"results": st.SearchResults,
			})
		}
	}

	return h.pages.Render(c, fiber.StatusOK, "search", "Search Jobs", data)
}
