package job

import (
	"jobalert-web/internal/pkg/apitime"
)

type Category string

const (
	CategoryBanking       Category = "banking"
	CategoryRailway       Category = "railway"
	CategoryTeaching      Category = "teaching"
	CategoryEngineering   Category = "engineering"
	CategoryPoliceDefence Category = "police_defence"
	CategorySSC           Category = "ssc"
	CategoryUPSC          Category = "upsc"
	CategoryStateGovt     Category = "state_govt"
	CategoryCentralGovt   Category = "central_govt"
	CategoryPSU           Category = "psu"
)

var Categories = []Category{
	CategoryBanking,
	CategoryRailway,
	CategoryTeaching,
	CategoryEngineering,
	CategoryPoliceDefence,
	CategorySSC,
	CategoryUPSC,
	CategoryStateGovt,
	CategoryCentralGovt,
	CategoryPSU,
}

var categoryLabels = map[Category]string{
	CategoryBanking:       "Banking",
	CategoryRailway:       "Railway",
	CategoryTeaching:      "Teaching",
	CategoryEngineering:   "Engineering",
	CategoryPoliceDefence: "Police/Defence",
	CategorySSC:           "SSC",
	CategoryUPSC:          "UPSC",
	CategoryStateGovt:     "State Govt",
	CategoryCentralGovt:   "Central Govt",
	CategoryPSU:           "PSU",
}

// Label returns the display name; unknown categories fall back to the raw value.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

type EducationLevel string

const (
	Education10th         EducationLevel = "10th"
	Education12th         EducationLevel = "12th"
	EducationDiploma      EducationLevel = "diploma"
	EducationITI          EducationLevel = "iti"
	EducationGraduate     EducationLevel = "graduate"
	EducationPostGraduate EducationLevel = "post_graduate"
	EducationBTech        EducationLevel = "btech"
	EducationBCom         EducationLevel = "bcom"
	EducationBSc          EducationLevel = "bsc"
)

var EducationLevels = []EducationLevel{
	Education10th,
	Education12th,
	EducationDiploma,
	EducationITI,
	EducationGraduate,
	EducationPostGraduate,
	EducationBTech,
	EducationBCom,
	EducationBSc,
}

var educationLabels = map[EducationLevel]string{
	Education10th:         "10th",
	Education12th:         "12th",
	EducationDiploma:      "Diploma",
	EducationITI:          "ITI",
	EducationGraduate:     "Any Graduate",
	EducationPostGraduate: "Any Post Graduate",
	EducationBTech:        "B.Tech/B.E",
	EducationBCom:         "B.Com",
	EducationBSc:          "B.Sc",
}

func (e EducationLevel) Label() string {
	if l, ok := educationLabels[e]; ok {
		return l
	}
	return string(e)
}

func (e EducationLevel) Valid() bool {
	_, ok := educationLabels[e]
	return ok
}

type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
	StatusDraft  Status = "draft"
)

type Job struct {
	ID                      string         `json:"id"`
	Title                   string         `json:"title"`
	Organization            string         `json:"organization"`
	Description             string         `json:"description"`
	Category                Category       `json:"category"`
	Location                string         `json:"location"`
	State                   string         `json:"state"`
	MinEducation            EducationLevel `json:"min_education"`
	MinAge                  *int           `json:"min_age,omitempty"`
	MaxAge                  *int           `json:"max_age,omitempty"`
	ApplicationFee          *float64       `json:"application_fee,omitempty"`
	TotalPosts              int            `json:"total_posts"`
	SalaryMin               *float64       `json:"salary_min,omitempty"`
	SalaryMax               *float64       `json:"salary_max,omitempty"`
	ApplicationStartDate    apitime.Time   `json:"application_start_date"`
	ApplicationEndDate      apitime.Time   `json:"application_end_date"`
	ExamDate                apitime.Time   `json:"exam_date"`
	OfficialNotificationURL string         `json:"official_notification_url,omitempty"`
	ApplyOnlineURL          string         `json:"apply_online_url,omitempty"`
	Status                  Status         `json:"status,omitempty"`
	Views                   int            `json:"views"`
	ApplicationsCount       int            `json:"applications_count"`
	CreatedAt               apitime.Time   `json:"created_at"`
	UpdatedAt               apitime.Time   `json:"updated_at"`
}

// CreateInput is the payload of POST /api/jobs, already coerced to the
// representation the API validates against.
type CreateInput struct {
	Title                   string         `json:"title"`
	Organization            string         `json:"organization"`
	Description             string         `json:"description"`
	Category                Category       `json:"category"`
	Location                string         `json:"location"`
	State                   string         `json:"state"`
	MinEducation            EducationLevel `json:"min_education"`
	MinAge                  *int           `json:"min_age,omitempty"`
	MaxAge                  *int           `json:"max_age,omitempty"`
	ApplicationFee          *float64       `json:"application_fee,omitempty"`
	TotalPosts              int            `json:"total_posts"`
	SalaryMin               *float64       `json:"salary_min,omitempty"`
	SalaryMax               *float64       `json:"salary_max,omitempty"`
	ApplicationStartDate    apitime.Time   `json:"application_start_date"`
	ApplicationEndDate      apitime.Time   `json:"application_end_date"`
	ExamDate                *apitime.Time  `json:"exam_date,omitempty"`
	OfficialNotificationURL string         `json:"official_notification_url,omitempty"`
	ApplyOnlineURL          string         `json:"apply_online_url,omitempty"`
}
