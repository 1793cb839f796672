package services

import (
	"encoding/json"
	"log"
	"math"
	"sync"
	"time"

	"homework-tracker-api/models"
	"homework-tracker-api/utils"
)

// DeadlineService owns the homework-deadline registry: at most one deadline
// per (homework_id, group_id) pair, persisted as a JSON array under the
// "homework-deadlines" storage key. The collection is re-read from storage
// on every query; no in-memory copy is kept between calls.
//
// Mutations never return an error: a storage failure is logged and
// surfaced as a nil record, per the store's silent-failure contract.
type DeadlineService struct {
	mu       sync.Mutex
	store    Store
	notifier *Notifier
	now      func() time.Time
}

func NewDeadlineService(store Store, notifier *Notifier) *DeadlineService {
	return &DeadlineService{
		store:    store,
		notifier: notifier,
		now:      time.Now,
	}
}

// SetDeadline upserts the cutoff for a homework/group pair and returns the
// stored record, or nil if persistence failed. Fires
// homework-deadlines-updated on success.
func (s *DeadlineService) SetDeadline(homeworkID, groupID string, deadline time.Time) *models.DeadlineRecord {
	s.mu.Lock()

	records := s.readAll()
	record := models.DeadlineRecord{
		HomeworkID: homeworkID,
		GroupID:    groupID,
		Deadline:   deadline,
		CreatedAt:  s.now(),
		CreatedBy:  models.DefaultCreatedBy,
	}

	replaced := false
	for i := range records {
		if records[i].Matches(homeworkID, groupID) {
			records[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, record)
	}

	if err := s.writeAll(records); err != nil {
		s.mu.Unlock()
		log.Printf("Failed to save deadline for %s/%s: %v", homeworkID, groupID, err)
		return nil
	}
	s.mu.Unlock()

	s.notifier.Emit(EventDeadlinesUpdated)
	return &record
}

// GetAllDeadlines returns every stored record. Absent or corrupt storage
// reads as an empty collection.
func (s *DeadlineService) GetAllDeadlines() []models.DeadlineRecord {
	return s.readAll()
}

// GetDeadline returns the record for a homework/group pair, or nil.
func (s *DeadlineService) GetDeadline(homeworkID, groupID string) *models.DeadlineRecord {
	for _, record := range s.readAll() {
		if record.Matches(homeworkID, groupID) {
			return &record
		}
	}
	return nil
}

// IsPastDeadline reports whether the cutoff has passed. No deadline means
// the homework is always open.
func (s *DeadlineService) IsPastDeadline(homeworkID, groupID string) bool {
	record := s.GetDeadline(homeworkID, groupID)
	if record == nil {
		return false
	}
	return s.now().After(record.Deadline)
}

// GetRemainingTime computes the deadline status projection for a
// homework/group pair against the current time.
func (s *DeadlineService) GetRemainingTime(homeworkID, groupID string) models.DeadlineStatus {
	record := s.GetDeadline(homeworkID, groupID)
	if record == nil {
		return models.DeadlineStatus{}
	}
	return s.statusFor(*record)
}

// GetBulkStatus maps GetRemainingTime over the given homework ids,
// preserving input order.
func (s *DeadlineService) GetBulkStatus(homeworkIDs []string, groupID string) []models.HomeworkDeadlineStatus {
	statuses := make([]models.HomeworkDeadlineStatus, 0, len(homeworkIDs))
	for _, homeworkID := range homeworkIDs {
		statuses = append(statuses, models.HomeworkDeadlineStatus{
			HomeworkID:   homeworkID,
			DeadlineInfo: s.GetRemainingTime(homeworkID, groupID),
		})
	}
	return statuses
}

// GetUpcomingDeadlines returns the group's deadlines whose urgency is
// urgent or critical.
func (s *DeadlineService) GetUpcomingDeadlines(groupID string) []models.UpcomingDeadline {
	upcoming := make([]models.UpcomingDeadline, 0)
	for _, record := range s.readAll() {
		if record.GroupID != groupID {
			continue
		}
		status := s.statusFor(record)
		if status.Urgency == models.UrgencyUrgent || status.Urgency == models.UrgencyCritical {
			upcoming = append(upcoming, models.UpcomingDeadline{
				DeadlineRecord: record,
				Status:         status,
			})
		}
	}
	return upcoming
}

func (s *DeadlineService) statusFor(record models.DeadlineRecord) models.DeadlineStatus {
	now := s.now()
	if now.After(record.Deadline) {
		return models.DeadlineStatus{
			HasDeadline:    true,
			IsPastDeadline: true,
			CanSubmit:      false,
			Message:        "Deadline passed",
			Deadline:       utils.FormatDeadline(record.Deadline),
		}
	}

	remaining := record.Deadline.Sub(now)
	return models.DeadlineStatus{
		HasDeadline: true,
		CanSubmit:   true,
		RemainingMs: remaining.Milliseconds(),
		Message:     utils.FormatRemaining(remaining),
		Urgency:     urgencyFor(remaining),
		Deadline:    utils.FormatDeadline(record.Deadline),
	}
}

func urgencyFor(remaining time.Duration) string {
	switch {
	case remaining < time.Hour:
		return models.UrgencyCritical
	case remaining < 24*time.Hour:
		return models.UrgencyUrgent
	case int(math.Round(remaining.Hours()/24)) == 1:
		return models.UrgencySoon
	default:
		return models.UrgencyNormal
	}
}

func (s *DeadlineService) readAll() []models.DeadlineRecord {
	raw, err := s.store.Read(StorageKeyDeadlines)
	if err != nil {
		log.Printf("Failed to read stored deadlines, treating as empty: %v", err)
		return []models.DeadlineRecord{}
	}
	if len(raw) == 0 {
		return []models.DeadlineRecord{}
	}

	var records []models.DeadlineRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		log.Printf("Corrupt deadline storage, treating as empty: %v", err)
		return []models.DeadlineRecord{}
	}
	return records
}

func (s *DeadlineService) writeAll(records []models.DeadlineRecord) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return s.store.Write(StorageKeyDeadlines, raw)
}
