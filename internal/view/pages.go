package view

import (
	"jobalert-web/internal/domain/admin"
	"jobalert-web/internal/domain/job"
	"jobalert-web/internal/domain/notification"
	"jobalert-web/internal/domain/user"
)

type HomeData struct {
	Jobs       []JobCard
	JobsFailed bool
	Query      string
}

type JobsData struct {
	Jobs       []JobCard
	Filters    job.Filters
	Failed     bool
	Categories []job.Category
	Levels     []job.EducationLevel
	States     []string
}

type JobDetailData struct {
	Job      *JobCard
	Error    string
	NotFound bool
}

type SearchData struct {
	Query   string
	Filters job.Filters
	Results []JobCard
	Error   string
}

// FormData backs the login, register and job-creation forms. Values keeps
// what the user typed so a failed submit re-renders populated.
type FormData struct {
	Error     string
	Values    map[string]string
	BusyLabel string
	Success   string
}

func (f FormData) Value(key string) string {
	if f.Values == nil {
		return ""
	}
	return f.Values[key]
}

type DashboardData struct {
	User               user.User
	Notifications      []notification.Notification
	NotificationsError string
	Unread             int
	RecentJobs         []JobCard
	TotalJobs          int
}

type AdminData struct {
	Snapshot      admin.Snapshot
	SnapshotError string
	Jobs          []JobCard
	JobsError     string
	Form          FormData
	Message       string
	Error         string
	Categories    []job.Category
	Levels        []job.EducationLevel
}

type PanelPageData struct {
	Heading string
	Items   []string
}

type StateJobsData struct {
	Selected string
	Postings []string
	States   []string
}

type ErrorData struct {
	Status  int
	Message string
}
