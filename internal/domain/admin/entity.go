package admin

import (
	"jobalert-web/internal/domain/job"
	"jobalert-web/internal/domain/user"
)

// Snapshot is the read-only aggregate served by GET /api/admin/dashboard.
type Snapshot struct {
	TotalJobs         int         `json:"total_jobs"`
	ActiveJobs        int         `json:"active_jobs"`
	TotalUsers        int         `json:"total_users"`
	TotalApplications int         `json:"total_applications"`
	RecentJobs        []job.Job   `json:"recent_jobs"`
	RecentUsers       []user.User `json:"recent_users"`
}
