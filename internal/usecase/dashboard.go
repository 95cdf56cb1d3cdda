package usecase

import (
	"jobalert-web/internal/domain/job"
	"jobalert-web/internal/domain/notification"
	"jobalert-web/internal/domain/user"
)

const dashboardRecentJobs = 5

type UserDashboard struct {
	User          user.User
	Notifications []notification.Notification
	Unread        int
	RecentJobs    []job.Job
	TotalJobs     int
}

// BuildUserDashboard derives the dashboard from session state and the
// notifications fetched for the user.
func BuildUserDashboard(st State, notes []notification.Notification) UserDashboard {
	d := UserDashboard{
		Notifications: notes,
		Unread:        notification.CountUnread(notes),
		TotalJobs:     len(st.Jobs),
	}
	if st.User != nil {
		d.User = *st.User
	}
	n := len(st.Jobs)
	if n > dashboardRecentJobs {
		n = dashboardRecentJobs
	}
	d.RecentJobs = append([]job.Job(nil), st.Jobs[:n]...)
	return d
}
