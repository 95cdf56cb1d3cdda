package notification

import (
	"jobalert-web/internal/pkg/apitime"
)

type Type string

const (
	TypeJobAlert           Type = "job_alert"
	TypeApplicationUpdate  Type = "application_update"
	TypeResultAnnouncement Type = "result_announcement"
	TypeAdmitCard          Type = "admit_card"
)

type Notification struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Message   string       `json:"message"`
	Type      Type         `json:"type"`
	JobID     string       `json:"job_id,omitempty"`
	IsRead    bool         `json:"is_read"`
	CreatedAt apitime.Time `json:"created_at"`
}

func CountUnread(items []Notification) int {
	n := 0
	for _, it := range items {
		if !it.IsRead {
			n++
		}
	}
	return n
}
