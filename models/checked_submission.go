package models

import "time"

// StatusChecking is the pending marker forced onto a submission's status
// when it is reopened for another review pass.
const StatusChecking = "checking"

// Submission is the raw record handed over by the pending-submission queue.
// The queue owns these fields; this service only reads them.
type Submission struct {
	ID          string     `json:"id"`
	StudentID   string     `json:"student_id"`
	GroupID     string     `json:"group_id"`
	HomeworkID  string     `json:"homework_id,omitempty"`
	Status      string     `json:"status"`
	Answer      string     `json:"answer,omitempty"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

// CheckedSubmission is a submission that has completed teacher review.
// The ledger is stored most-recently-checked-first under the
// "checked-submissions" storage key.
type CheckedSubmission struct {
	Submission
	CheckedAt  time.Time `json:"checked_at"`
	CanRecheck bool      `json:"can_recheck"`
}

// RecheckedSubmission is the reopened copy returned by a recheck. The caller
// re-inserts it into the pending queue; the ledger never does.
type RecheckedSubmission struct {
	Submission
	RecheckedAt time.Time `json:"rechecked_at"`
}
