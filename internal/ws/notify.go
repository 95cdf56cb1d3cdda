package ws

import (
	"encoding/json"
	"strings"
	"time"
)

const EventJobsUpdated = "jobs_updated"

type JobsUpdatedEvent struct {
	Type      string `json:"type"`
	Reason    string `json:"reason"`
	JobID     string `json:"job_id,omitempty"`
	Timestamp string `json:"timestamp"`
}

func newJobsUpdatedEvent(reason, jobID string, now time.Time) JobsUpdatedEvent {
	return JobsUpdatedEvent{
		Type:      EventJobsUpdated,
		Reason:    strings.ToLower(strings.TrimSpace(reason)),
		JobID:     strings.TrimSpace(jobID),
		Timestamp: now.UTC().Format(time.RFC3339),
	}
}

// NotifyJobsUpdated broadcasts a jobs_updated event. A nil hub ignores it.
func (h *Hub) NotifyJobsUpdated(reason, jobID string) {
	if h == nil {
		return
	}
	b, err := json.Marshal(newJobsUpdatedEvent(reason, jobID, time.Now()))
	if err != nil {
		return
	}
	h.Broadcast(b)
}
