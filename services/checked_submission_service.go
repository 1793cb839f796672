package services

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"homework-tracker-api/models"
)

// DefaultRetentionMonths is how long checked submissions are kept before
// the purge removes them.
const DefaultRetentionMonths = 6

// CheckedSubmissionService owns the ledger of submissions that completed
// teacher review, persisted most-recently-checked-first as a JSON array
// under the "checked-submissions" storage key. Like the deadline registry,
// the ledger is re-read from storage on every call.
type CheckedSubmissionService struct {
	mu       sync.Mutex
	store    Store
	notifier *Notifier
	now      func() time.Time
}

func NewCheckedSubmissionService(store Store, notifier *Notifier) *CheckedSubmissionService {
	return &CheckedSubmissionService{
		store:    store,
		notifier: notifier,
		now:      time.Now,
	}
}

// MoveToChecked stamps the submission as reviewed and prepends it to the
// ledger. Returns nil if persistence failed. Fires
// checked-submissions-updated on success.
func (s *CheckedSubmissionService) MoveToChecked(sub models.Submission) *models.CheckedSubmission {
	s.mu.Lock()

	checked := models.CheckedSubmission{
		Submission: sub,
		CheckedAt:  s.now(),
		CanRecheck: true,
	}
	entries := append([]models.CheckedSubmission{checked}, s.readAll()...)

	if err := s.writeAll(entries); err != nil {
		s.mu.Unlock()
		log.Printf("Failed to save checked submission %s: %v", sub.ID, err)
		return nil
	}
	s.mu.Unlock()

	s.notifier.Emit(EventCheckedUpdated)
	return &checked
}

// GetAllChecked returns the ledger, most recently checked first. Absent or
// corrupt storage reads as an empty ledger.
func (s *CheckedSubmissionService) GetAllChecked() []models.CheckedSubmission {
	return s.readAll()
}

// GetByStudent filters the ledger to one student's submissions.
func (s *CheckedSubmissionService) GetByStudent(studentID string) []models.CheckedSubmission {
	filtered := make([]models.CheckedSubmission, 0)
	for _, entry := range s.readAll() {
		if entry.StudentID == studentID {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// GetByGroup filters the ledger to one group's submissions.
func (s *CheckedSubmissionService) GetByGroup(groupID string) []models.CheckedSubmission {
	filtered := make([]models.CheckedSubmission, 0)
	for _, entry := range s.readAll() {
		if entry.GroupID == groupID {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// Recheck removes a ledger entry and returns a reopened copy of the
// original submission with its status forced back to the pending marker.
// The caller is responsible for re-inserting the copy into the pending
// queue. Returns nil, with the ledger untouched, when the id is unknown.
func (s *CheckedSubmissionService) Recheck(submissionID string) *models.RecheckedSubmission {
	s.mu.Lock()

	entries := s.readAll()
	idx := -1
	for i := range entries {
		if entries[i].ID == submissionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}

	found := entries[idx]
	entries = append(entries[:idx], entries[idx+1:]...)

	if err := s.writeAll(entries); err != nil {
		s.mu.Unlock()
		log.Printf("Failed to remove checked submission %s: %v", submissionID, err)
		return nil
	}
	s.mu.Unlock()

	s.notifier.Emit(EventCheckedUpdated)

	reopened := models.RecheckedSubmission{
		Submission:  found.Submission,
		RecheckedAt: s.now(),
	}
	reopened.Status = models.StatusChecking
	return &reopened
}

// PurgeOlderThan drops entries checked before now minus the given number of
// calendar months and returns how many were removed. The only bulk,
// irreversible deletion in the service.
func (s *CheckedSubmissionService) PurgeOlderThan(months int) int {
	s.mu.Lock()

	entries := s.readAll()
	cutoff := s.now().AddDate(0, -months, 0)

	retained := make([]models.CheckedSubmission, 0, len(entries))
	for _, entry := range entries {
		if entry.CheckedAt.After(cutoff) {
			retained = append(retained, entry)
		}
	}

	removed := len(entries) - len(retained)
	if removed == 0 {
		s.mu.Unlock()
		return 0
	}

	if err := s.writeAll(retained); err != nil {
		s.mu.Unlock()
		log.Printf("Failed to purge checked submissions: %v", err)
		return 0
	}
	s.mu.Unlock()

	s.notifier.Emit(EventCheckedUpdated)
	return removed
}

func (s *CheckedSubmissionService) readAll() []models.CheckedSubmission {
	raw, err := s.store.Read(StorageKeyChecked)
	if err != nil {
		log.Printf("Failed to read checked submissions, treating as empty: %v", err)
		return []models.CheckedSubmission{}
	}
	if len(raw) == 0 {
		return []models.CheckedSubmission{}
	}

	var entries []models.CheckedSubmission
	if err := json.Unmarshal(raw, &entries); err != nil {
		log.Printf("Corrupt checked-submission storage, treating as empty: %v", err)
		return []models.CheckedSubmission{}
	}
	return entries
}

func (s *CheckedSubmissionService) writeAll(entries []models.CheckedSubmission) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return s.store.Write(StorageKeyChecked, raw)
}
