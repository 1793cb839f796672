package models

import "time"

// DefaultCreatedBy is the attribution stamped on every deadline record.
// Single-operator deployments have no author tracking yet.
const DefaultCreatedBy = "teacher"

// Urgency tiers for a deadline that has not passed yet.
const (
	UrgencyCritical = "critical" // less than an hour left
	UrgencyUrgent   = "urgent"   // less than a day left
	UrgencySoon     = "soon"     // rounds to exactly one day left
	UrgencyNormal   = "normal"
)

// DeadlineRecord is the stored submission cutoff for a homework/group pair.
// Records live as a JSON array under the "homework-deadlines" storage key;
// at most one record exists per (homework_id, group_id).
type DeadlineRecord struct {
	HomeworkID string    `json:"homework_id"`
	GroupID    string    `json:"group_id"`
	Deadline   time.Time `json:"deadline"`
	CreatedAt  time.Time `json:"created_at"`
	CreatedBy  string    `json:"created_by"`
}

// Matches reports whether the record belongs to the given homework/group pair.
func (d DeadlineRecord) Matches(homeworkID, groupID string) bool {
	return d.HomeworkID == homeworkID && d.GroupID == groupID
}

// DeadlineStatus is the projection of a DeadlineRecord against the current
// time. It is recomputed on every query and never persisted.
//
// Shape by case:
//   - no deadline set: HasDeadline=false, nothing else
//   - past deadline:   HasDeadline=true, IsPastDeadline=true, CanSubmit=false, no urgency
//   - still open:      HasDeadline=true, CanSubmit=true, remaining time, message, urgency
type DeadlineStatus struct {
	HasDeadline    bool   `json:"has_deadline"`
	IsPastDeadline bool   `json:"is_past_deadline,omitempty"`
	CanSubmit      bool   `json:"can_submit,omitempty"`
	RemainingMs    int64  `json:"remaining_ms,omitempty"`
	Message        string `json:"message,omitempty"`
	Urgency        string `json:"urgency,omitempty"`
	Deadline       string `json:"deadline,omitempty"`
}

// HomeworkDeadlineStatus pairs a homework id with its computed deadline
// status, used by the bulk-status endpoint.
type HomeworkDeadlineStatus struct {
	HomeworkID   string         `json:"homework_id"`
	DeadlineInfo DeadlineStatus `json:"deadline_info"`
}

// UpcomingDeadline is a deadline record whose computed urgency is urgent or
// critical, together with that status.
type UpcomingDeadline struct {
	DeadlineRecord
	Status DeadlineStatus `json:"status"`
}
