package dto

import (
	"fmt"
	"strconv"
	"strings"

	"jobalert-web/internal/domain/job"
	"jobalert-web/internal/pkg/apitime"
)

// JobCreateRequest is the raw job-creation form. Every field arrives as text
// and is coerced by ToInput.
type JobCreateRequest struct {
	Title                   string `json:"title" form:"title"`
	Organization            string `json:"organization" form:"organization"`
	Description             string `json:"description" form:"description"`
	Category                string `json:"category" form:"category"`
	Location                string `json:"location" form:"location"`
	State                   string `json:"state" form:"state"`
	MinEducation            string `json:"min_education" form:"min_education"`
	MinAge                  string `json:"min_age" form:"min_age"`
	MaxAge                  string `json:"max_age" form:"max_age"`
	ApplicationFee          string `json:"application_fee" form:"application_fee"`
	TotalPosts              string `json:"total_posts" form:"total_posts"`
	SalaryMin               string `json:"salary_min" form:"salary_min"`
	SalaryMax               string `json:"salary_max" form:"salary_max"`
	ApplicationStartDate    string `json:"application_start_date" form:"application_start_date"`
	ApplicationEndDate      string `json:"application_end_date" form:"application_end_date"`
	ExamDate                string `json:"exam_date" form:"exam_date"`
	OfficialNotificationURL string `json:"official_notification_url" form:"official_notification_url"`
	ApplyOnlineURL          string `json:"apply_online_url" form:"apply_online_url"`
}

func (r JobCreateRequest) Values() map[string]string {
	return map[string]string{
		"title":                     r.Title,
		"organization":              r.Organization,
		"description":               r.Description,
		"category":                  r.Category,
		"location":                  r.Location,
		"state":                     r.State,
		"min_education":             r.MinEducation,
		"min_age":                   r.MinAge,
		"max_age":                   r.MaxAge,
		"application_fee":           r.ApplicationFee,
		"total_posts":               r.TotalPosts,
		"salary_min":                r.SalaryMin,
		"salary_max":                r.SalaryMax,
		"application_start_date":    r.ApplicationStartDate,
		"application_end_date":      r.ApplicationEndDate,
		"exam_date":                 r.ExamDate,
		"official_notification_url": r.OfficialNotificationURL,
		"apply_online_url":          r.ApplyOnlineURL,
	}
}

// ToInput validates required fields and coerces numbers and dates into the
// representation POST /api/jobs expects. Optional numeric fields left empty
// stay absent.
func (r JobCreateRequest) ToInput() (job.CreateInput, error) {
	values := r.Values()
	if err := requireFields(values,
		"title", "organization", "description", "category", "location", "state",
		"min_education", "total_posts", "application_start_date", "application_end_date",
	); err != nil {
		return job.CreateInput{}, err
	}

	in := job.CreateInput{
		Title:                   strings.TrimSpace(r.Title),
		Organization:            strings.TrimSpace(r.Organization),
		Description:             strings.TrimSpace(r.Description),
		Category:                job.Category(strings.TrimSpace(r.Category)),
		Location:                strings.TrimSpace(r.Location),
		State:                   strings.TrimSpace(r.State),
		MinEducation:            job.EducationLevel(strings.TrimSpace(r.MinEducation)),
		OfficialNotificationURL: strings.TrimSpace(r.OfficialNotificationURL),
		ApplyOnlineURL:          strings.TrimSpace(r.ApplyOnlineURL),
	}
	if !in.Category.Valid() {
		return job.CreateInput{}, &FieldError{Field: "category", Message: fmt.Sprintf("Unknown category %q", in.Category)}
	}
	if !in.MinEducation.Valid() {
		return job.CreateInput{}, &FieldError{Field: "min_education", Message: fmt.Sprintf("Unknown education level %q", in.MinEducation)}
	}

	var err error
	if in.TotalPosts, err = parseInt("total_posts", r.TotalPosts); err != nil {
		return job.CreateInput{}, err
	}
	if in.MinAge, err = optionalInt("min_age", r.MinAge); err != nil {
		return job.CreateInput{}, err
	}
	if in.MaxAge, err = optionalInt("max_age", r.MaxAge); err != nil {
		return job.CreateInput{}, err
	}
	if in.SalaryMin, err = optionalFloat("salary_min", r.SalaryMin); err != nil {
		return job.CreateInput{}, err
	}
	if in.SalaryMax, err = optionalFloat("salary_max", r.SalaryMax); err != nil {
		return job.CreateInput{}, err
	}
	if in.ApplicationFee, err = optionalFloat("application_fee", r.ApplicationFee); err != nil {
		return job.CreateInput{}, err
	}
	if in.ApplicationStartDate, err = parseDate("application_start_date", r.ApplicationStartDate); err != nil {
		return job.CreateInput{}, err
	}
	if in.ApplicationEndDate, err = parseDate("application_end_date", r.ApplicationEndDate); err != nil {
		return job.CreateInput{}, err
	}
	if s := strings.TrimSpace(r.ExamDate); s != "" {
		d, err := parseDate("exam_date", s)
		if err != nil {
			return job.CreateInput{}, err
		}
		in.ExamDate = &d
	}
	return in, nil
}

func parseInt(field, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &FieldError{Field: field, Message: label(field) + " must be a whole number"}
	}
	return n, nil
}

func optionalInt(field, s string) (*int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	n, err := parseInt(field, s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func optionalFloat(field, s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, &FieldError{Field: field, Message: label(field) + " must be a number"}
	}
	return &f, nil
}

func parseDate(field, s string) (apitime.Time, error) {
	t, err := apitime.Parse(strings.TrimSpace(s))
	if err != nil {
		return apitime.Time{}, &FieldError{Field: field, Message: label(field) + " must be a date (YYYY-MM-DD)"}
	}
	return t, nil
}
