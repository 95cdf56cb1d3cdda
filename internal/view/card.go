package view

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"jobalert-web/internal/domain/job"
	"jobalert-web/internal/pkg/apitime"
)

// JobCard is a Job with its display fields derived.
type JobCard struct {
	ID             string
	Title          string
	Organization   string
	Description    string
	Category       job.Category
	CategoryLabel  string
	Location       string
	State          string
	Education      string
	TotalPosts     int
	Salary         string
	AgeLimit       string
	ApplicationFee string
	StartDate      string
	EndDate        string
	ExamDate       string
	PostedDate     string
	Views          int
	Applications   int
	Status         string
	Active         bool
	OfficialURL    string
	ApplyURL       string
	DetailURL      string
}

func NewJobCard(j job.Job) JobCard {
	status := j.Status
	if status == "" {
		status = job.StatusActive
	}
	return JobCard{
		ID:             j.ID,
		Title:          j.Title,
		Organization:   j.Organization,
		Description:    j.Description,
		Category:       j.Category,
		CategoryLabel:  j.Category.Label(),
		Location:       j.Location,
		State:          j.State,
		Education:      j.MinEducation.Label(),
		TotalPosts:     j.TotalPosts,
		Salary:         salaryRange(j.SalaryMin, j.SalaryMax),
		AgeLimit:       ageRange(j.MinAge, j.MaxAge),
		ApplicationFee: fee(j.ApplicationFee),
		StartDate:      displayDate(j.ApplicationStartDate),
		EndDate:        displayDate(j.ApplicationEndDate),
		ExamDate:       displayDate(j.ExamDate),
		PostedDate:     displayDate(j.CreatedAt),
		Views:          j.Views,
		Applications:   j.ApplicationsCount,
		Status:         strings.ToUpper(string(status[:1])) + string(status[1:]),
		Active:         status == job.StatusActive,
		OfficialURL:    j.OfficialNotificationURL,
		ApplyURL:       j.ApplyOnlineURL,
		DetailURL:      "/jobs/" + url.PathEscape(j.ID),
	}
}

func NewJobCards(jobs []job.Job) []JobCard {
	out := make([]JobCard, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, NewJobCard(j))
	}
	return out
}

func displayDate(t apitime.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Display()
}

func salaryRange(min, max *float64) string {
	switch {
	case min != nil && max != nil:
		return "₹" + FormatAmount(*min) + " - ₹" + FormatAmount(*max)
	case min != nil:
		return "From ₹" + FormatAmount(*min)
	case max != nil:
		return "Up to ₹" + FormatAmount(*max)
	}
	return ""
}

func ageRange(min, max *int) string {
	switch {
	case min != nil && max != nil:
		return fmt.Sprintf("%d - %d years", *min, *max)
	case min != nil:
		return fmt.Sprintf("%d+ years", *min)
	case max != nil:
		return fmt.Sprintf("Up to %d years", *max)
	}
	return ""
}

func fee(f *float64) string {
	if f == nil {
		return ""
	}
	if *f == 0 {
		return "No fee"
	}
	return "₹" + FormatAmount(*f)
}

// FormatAmount renders a rupee amount with thousands separators, keeping two
// decimals only when the value is fractional.
func FormatAmount(v float64) string {
	neg := v < 0
	cents := int64(math.Round(math.Abs(v) * 100))
	digits := strconv.FormatInt(cents/100, 10)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if c := cents % 100; c != 0 {
		fmt.Fprintf(&b, ".%02d", c)
	}
	return b.String()
}
