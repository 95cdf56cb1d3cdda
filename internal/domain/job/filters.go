package job

import (
	"net/url"
	"strings"
)

// Filter keys understood by GET /api/jobs and GET /api/search/jobs.
const (
	FilterCategory       = "category"
	FilterState          = "state"
	FilterEducationLevel = "education_level"
	FilterLocation       = "location"
	FilterSearchQuery    = "search_query"
	FilterPage           = "page"
	FilterLimit          = "limit"
)

// Filters narrows a job listing. Empty values mean "no filter".
type Filters map[string]string

// Values encodes only the non-empty pairs, trimmed.
func (f Filters) Values() url.Values {
	out := url.Values{}
	for k, v := range f {
		k = strings.TrimSpace(k)
		v = strings.TrimSpace(v)
		if k == "" || v == "" {
			continue
		}
		out.Set(k, v)
	}
	return out
}

func (f Filters) IsEmpty() bool {
	return len(f.Values()) == 0
}

// Get returns the trimmed value for key.
func (f Filters) Get(key string) string {
	if f == nil {
		return ""
	}
	return strings.TrimSpace(f[key])
}

// FiltersFromQuery picks the known filter keys out of a query lookup.
func FiltersFromQuery(get func(key string) string, keys ...string) Filters {
	if len(keys) == 0 {
		keys = []string{FilterCategory, FilterState, FilterEducationLevel, FilterLocation}
	}
	f := Filters{}
	for _, k := range keys {
		if v := strings.TrimSpace(get(k)); v != "" {
			f[k] = v
		}
	}
	return f
}
